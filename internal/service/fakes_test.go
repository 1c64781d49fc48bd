package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/classroom-service/internal/domain"
	"github.com/spec-kit/classroom-service/internal/repository"
)

// fakeProfileRepo is an in-memory ProfileRepository used across service tests.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *fakeProfileRepo) seed(role domain.Role, name, email string) string {
	p := &domain.Profile{
		Name:          name,
		Email:         email,
		Role:          role,
		StudentNumber: "STU-" + name,
	}
	_ = r.Create(context.Background(), p)
	return p.ID
}

func (r *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) error {
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

func (r *fakeProfileRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
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

func (r *fakeProfileRepo) List(_ context.Context) ([]domain.Profile, error) {
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

func (r *fakeProfileRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
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

// fakeContactRepo is an in-memory ContactRepository. The staff list view
// joins student display fields from the linked profile repo.
type fakeContactRepo struct {
	mu       sync.Mutex
	profiles *fakeProfileRepo
	messages []*domain.ContactMessage
}

func newFakeContactRepo(profiles *fakeProfileRepo) *fakeContactRepo {
	return &fakeContactRepo{profiles: profiles}
}

func (r *fakeContactRepo) Create(_ context.Context, msg *domain.ContactMessage) error {
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

func (r *fakeContactRepo) GetByID(_ context.Context, id string) (*domain.ContactMessage, error) {
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

func (r *fakeContactRepo) ListAll(_ context.Context) ([]domain.ContactWithStudent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.ContactWithStudent, 0, len(r.messages))
	for _, msg := range r.messages {
		item := domain.ContactWithStudent{ContactMessage: *msg}
		if r.profiles != nil {
			if p, err := r.profiles.GetByID(context.Background(), msg.StudentID); err == nil {
				item.StudentName = p.Name
				item.StudentNumber = p.StudentNumber
			}
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeContactRepo) ListByStudent(_ context.Context, studentID string) ([]domain.ContactMessage, error) {
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

func (r *fakeContactRepo) UpdateStatusNotes(_ context.Context, id string, update repository.ContactUpdate) (*domain.ContactMessage, error) {
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

// setCreatedAt rewrites a stored message's creation time, for ordering tests.
func (r *fakeContactRepo) setCreatedAt(id string, t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range r.messages {
		if msg.ID == id {
			msg.CreatedAt = t
		}
	}
}
