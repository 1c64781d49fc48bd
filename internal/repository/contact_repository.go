package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/classroom-service/internal/domain"
)

// ContactUpdate carries the optional fields of a status/notes update. A nil
// field leaves the stored value untouched.
type ContactUpdate struct {
	Status *domain.ContactStatus
	Notes  *string
}

// ContactRepository encapsulates contact message persistence.
type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	GetByID(ctx context.Context, id string) (*domain.ContactMessage, error)
	ListAll(ctx context.Context) ([]domain.ContactWithStudent, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.ContactMessage, error)
	UpdateStatusNotes(ctx context.Context, id string, update ContactUpdate) (*domain.ContactMessage, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates the repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	const query = `
        INSERT INTO student_contacts (student_id, teacher_id, subject, message, status, notes)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		msg.StudentID,
		msg.TeacherID,
		msg.Subject,
		msg.Message,
		msg.Status,
		msg.Notes,
	).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	const query = `
        SELECT id, student_id, teacher_id, subject, message, status, notes, created_at, updated_at
        FROM student_contacts WHERE id=$1`
	var msg domain.ContactMessage
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID,
		&msg.StudentID,
		&msg.TeacherID,
		&msg.Subject,
		&msg.Message,
		&msg.Status,
		&msg.Notes,
		&msg.CreatedAt,
		&msg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *contactRepository) ListAll(ctx context.Context) ([]domain.ContactWithStudent, error) {
	const query = `
        SELECT c.id, c.student_id, c.teacher_id, c.subject, c.message, c.status, c.notes,
               c.created_at, c.updated_at, p.name, p.student_number
        FROM student_contacts c
        JOIN profiles p ON p.id = c.student_id
        ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ContactWithStudent
	for rows.Next() {
		var item domain.ContactWithStudent
		if err := rows.Scan(
			&item.ID,
			&item.StudentID,
			&item.TeacherID,
			&item.Subject,
			&item.Message,
			&item.Status,
			&item.Notes,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.StudentName,
			&item.StudentNumber,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *contactRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.ContactMessage, error) {
	const query = `
        SELECT id, student_id, teacher_id, subject, message, status, notes, created_at, updated_at
        FROM student_contacts WHERE student_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ContactMessage
	for rows.Next() {
		var msg domain.ContactMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.StudentID,
			&msg.TeacherID,
			&msg.Subject,
			&msg.Message,
			&msg.Status,
			&msg.Notes,
			&msg.CreatedAt,
			&msg.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

// UpdateStatusNotes applies a partial update in a single statement.
// updated_at is refreshed even when both fields are nil.
func (r *contactRepository) UpdateStatusNotes(ctx context.Context, id string, update ContactUpdate) (*domain.ContactMessage, error) {
	const query = `
        UPDATE student_contacts
        SET status = COALESCE($2, status), notes = COALESCE($3, notes), updated_at = NOW()
        WHERE id=$1
        RETURNING id, student_id, teacher_id, subject, message, status, notes, created_at, updated_at`

	var msg domain.ContactMessage
	if err := r.pool.QueryRow(ctx, query, id, update.Status, update.Notes).Scan(
		&msg.ID,
		&msg.StudentID,
		&msg.TeacherID,
		&msg.Subject,
		&msg.Message,
		&msg.Status,
		&msg.Notes,
		&msg.CreatedAt,
		&msg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}
