package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Submission, int, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
	Ping(ctx context.Context) error
}

type submissionRepository struct {
	*PostgresRepository
}

func NewSubmissionRepository(db *sql.DB, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *submissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	query := `
		INSERT INTO submissions (
			id, session_id, device_id, activity_type, language, name,
			student_id, degree, city, status, error, document_id,
			checksum, size_bytes, duration_ms, requested_at, completed_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		sub.ID,
		sub.SessionID,
		sub.DeviceID,
		sub.ActivityType,
		sub.Language,
		sub.Name,
		sub.StudentID,
		sub.Degree,
		sub.City,
		sub.Status,
		sub.Error,
		sub.DocumentID,
		sub.Checksum,
		sub.SizeBytes,
		sub.DurationMs,
		sub.RequestedAt,
		sub.CompletedAt,
	)

	return err
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	query := `
		SELECT
			id, session_id, device_id, activity_type, language, name,
			student_id, degree, city, status, error, document_id,
			checksum, size_bytes, duration_ms, requested_at, completed_at
		FROM submissions
		WHERE id = $1
	`

	sub, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (r *submissionRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Submission, int, error) {
	countQuery := `SELECT COUNT(*) FROM submissions`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			id, session_id, device_id, activity_type, language, name,
			student_id, degree, city, status, error, document_id,
			checksum, size_bytes, duration_ms, requested_at, completed_at
		FROM submissions
		ORDER BY requested_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, err
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

func (r *submissionRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM submissions GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	sub := &models.Submission{}
	var errMsg, documentID, checksum sql.NullString
	var sizeBytes sql.NullInt64

	err := row.Scan(
		&sub.ID,
		&sub.SessionID,
		&sub.DeviceID,
		&sub.ActivityType,
		&sub.Language,
		&sub.Name,
		&sub.StudentID,
		&sub.Degree,
		&sub.City,
		&sub.Status,
		&errMsg,
		&documentID,
		&checksum,
		&sizeBytes,
		&sub.DurationMs,
		&sub.RequestedAt,
		&sub.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	if errMsg.Valid {
		sub.Error = &errMsg.String
	}
	if documentID.Valid {
		sub.DocumentID = &documentID.String
	}
	if checksum.Valid {
		sub.Checksum = &checksum.String
	}
	if sizeBytes.Valid {
		sub.SizeBytes = &sizeBytes.Int64
	}

	if models.IsValidActivityType(sub.ActivityType) {
		sub.ActivityName = models.ActivityType(sub.ActivityType).DisplayName()
	}

	return sub, nil
}
