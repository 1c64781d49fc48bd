package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/classroom-service/internal/api/http"
	"github.com/spec-kit/classroom-service/internal/api/http/handlers"
	"github.com/spec-kit/classroom-service/internal/auth"
	"github.com/spec-kit/classroom-service/internal/config"
	"github.com/spec-kit/classroom-service/internal/domain"
	"github.com/spec-kit/classroom-service/internal/observability"
	"github.com/spec-kit/classroom-service/internal/repository"
	"github.com/spec-kit/classroom-service/internal/service"
)

// memProfileRepo is an in-memory ProfileRepository for endpoint tests.
type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *memProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *memProfileRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (r *memProfileRepo) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memProfileRepo) List(_ context.Context) ([]domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memProfileRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.PasswordHash = passwordHash
	p.UpdatedAt = time.Now()
	return nil
}

// memContactRepo is an in-memory ContactRepository for endpoint tests.
type memContactRepo struct {
	mu       sync.Mutex
	profiles *memProfileRepo
	messages []*domain.ContactMessage
}

func newMemContactRepo(profiles *memProfileRepo) *memContactRepo {
	return &memContactRepo{profiles: profiles}
}

func (r *memContactRepo) Create(_ context.Context, msg *domain.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	now := time.Now()
	msg.CreatedAt = now
	msg.UpdatedAt = now
	cp := *msg
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *memContactRepo) GetByID(_ context.Context, id string) (*domain.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range r.messages {
		if msg.ID == id {
			cp := *msg
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memContactRepo) ListAll(_ context.Context) ([]domain.ContactWithStudent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.ContactWithStudent, 0, len(r.messages))
	for _, msg := range r.messages {
		item := domain.ContactWithStudent{ContactMessage: *msg}
		if p, err := r.profiles.GetByID(context.Background(), msg.StudentID); err == nil {
			item.StudentName = p.Name
			item.StudentNumber = p.StudentNumber
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memContactRepo) ListByStudent(_ context.Context, studentID string) ([]domain.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ContactMessage
	for _, msg := range r.messages {
		if msg.StudentID == studentID {
			result = append(result, *msg)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memContactRepo) UpdateStatusNotes(_ context.Context, id string, update repository.ContactUpdate) (*domain.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range r.messages {
		if msg.ID != id {
			continue
		}
		if update.Status != nil {
			msg.Status = *update.Status
		}
		if update.Notes != nil {
			msg.Notes = *update.Notes
		}
		msg.UpdatedAt = time.Now()
		cp := *msg
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

// memDenylist backs logout: it is both the middleware denylist and the auth
// service revoker.
type memDenylist struct {
	mu      sync.Mutex
	revoked map[string]struct{}
}

func newMemDenylist() *memDenylist {
	return &memDenylist{revoked: make(map[string]struct{})}
}

func (d *memDenylist) Revoke(_ context.Context, token string, _ time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[token] = struct{}{}
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, token string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[token]
	return ok, nil
}

// testEnv bundles the app under test with its backing fakes.
type testEnv struct {
	app      *fiber.App
	profiles *memProfileRepo
	contacts *memContactRepo
	auth     *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	profiles := newMemProfileRepo()
	contacts := newMemContactRepo(profiles)
	denylist := newMemDenylist()
	logger := zap.NewNop()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "endpoint-test-secret",
			AccessTokenTTLMinutes: 30,
			BcryptCost:            4,
		},
	}

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		ProfileRepo: profiles,
		Revoker:     denylist,
	})
	contactService := service.NewContactService(service.ContactDependencies{
		ContactRepo: contacts,
		ProfileRepo: profiles,
		Logger:      logger,
	})
	adminService := service.NewAdminService(service.AdminDependencies{
		ProfileRepo: profiles,
		BcryptCost:  4,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Contacts:       handlers.NewContactsHandler(contactService),
		AdminUsers:     handlers.NewAdminUsersHandler(adminService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager(), denylist, logger),
	})

	return &testEnv{app: app, profiles: profiles, contacts: contacts, auth: authService}
}

// seedUser provisions an account and returns its id and a valid token.
func (e *testEnv) seedUser(t *testing.T, role domain.Role, name, email string) (string, string) {
	t.Helper()
	p := &domain.Profile{
		Name:          name,
		Email:         email,
		Role:          role,
		StudentNumber: "STU-" + name,
	}
	require.NoError(t, e.profiles.Create(context.Background(), p))
	token, _, err := e.auth.TokenManager().GenerateToken(p.ID, p.Email, string(p.Role))
	require.NoError(t, err)
	return p.ID, token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
