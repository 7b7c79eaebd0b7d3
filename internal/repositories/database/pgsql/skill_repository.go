package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillswap/skillswap_app/internal/apperrors"
	"github.com/skillswap/skillswap_app/internal/core/domain"
	portsrepo "github.com/skillswap/skillswap_app/internal/core/ports/repositories"
	"github.com/skillswap/skillswap_app/internal/models"
	"github.com/skillswap/skillswap_app/internal/utils/mapping"
)

const skillColumns = `skill_id, owner_id, title, description, category, level, credits, duration_hours, created_at, created_by, last_updated_at, last_updated_by`

// PgxSkillRepository persists skills and their reviews.
type PgxSkillRepository struct {
	BaseRepository
}

// NewSkillRepository creates a new repository for skill data.
func NewSkillRepository(pool *pgxpool.Pool) portsrepo.SkillRepositoryFacade {
	return &PgxSkillRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SkillRepositoryFacade = (*PgxSkillRepository)(nil)

// SaveSkill persists a new skill row.
func (r *PgxSkillRepository) SaveSkill(ctx context.Context, skill domain.Skill) error {
	m := mapping.ToModelSkill(skill)
	query := `
		INSERT INTO skills (` + skillColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SkillID, m.OwnerID, m.Title, m.Description, m.Category, m.Level,
		m.Credits, m.DurationHours,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert skill "+m.SkillID, err)
	}
	return nil
}

// FindSkillByID retrieves a skill by its ID.
func (r *PgxSkillRepository) FindSkillByID(ctx context.Context, skillID string) (*domain.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills WHERE skill_id = $1;`
	var m models.Skill
	err := r.Pool.QueryRow(ctx, query, skillID).Scan(
		&m.SkillID, &m.OwnerID, &m.Title, &m.Description, &m.Category, &m.Level,
		&m.Credits, &m.DurationHours,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find skill "+skillID, err)
	}
	s := mapping.ToDomainSkill(m)
	return &s, nil
}

// ListSkills retrieves a page of skills, newest first.
func (r *PgxSkillRepository) ListSkills(ctx context.Context, limit int, offset int) ([]domain.Skill, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + skillColumns + `
		FROM skills
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	return r.querySkills(ctx, query, limit, offset)
}

// ListSkillsByOwner retrieves all skills listed by the given user.
func (r *PgxSkillRepository) ListSkillsByOwner(ctx context.Context, ownerID string) ([]domain.Skill, error) {
	query := `
		SELECT ` + skillColumns + `
		FROM skills
		WHERE owner_id = $1
		ORDER BY created_at DESC;
	`
	return r.querySkills(ctx, query, ownerID)
}

func (r *PgxSkillRepository) querySkills(ctx context.Context, query string, args ...any) ([]domain.Skill, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query skills", err)
	}
	defer rows.Close()

	skills := []domain.Skill{}
	for rows.Next() {
		var m models.Skill
		if err := rows.Scan(
			&m.SkillID, &m.OwnerID, &m.Title, &m.Description, &m.Category, &m.Level,
			&m.Credits, &m.DurationHours,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan skill row", err)
		}
		skills = append(skills, mapping.ToDomainSkill(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating skill rows", err)
	}
	return skills, nil
}

// UpdateSkill updates a skill's mutable fields.
func (r *PgxSkillRepository) UpdateSkill(ctx context.Context, skill domain.Skill) error {
	m := mapping.ToModelSkill(skill)
	query := `
		UPDATE skills
		SET title = $2, description = $3, category = $4, level = $5,
		    credits = $6, duration_hours = $7, last_updated_at = $8, last_updated_by = $9
		WHERE skill_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.SkillID, m.Title, m.Description, m.Category, m.Level,
		m.Credits, m.DurationHours, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update skill "+m.SkillID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("skill " + m.SkillID + " not found for update")
	}
	return nil
}

// DeleteSkill removes a skill row; exchanges and reviews cascade via FK.
func (r *PgxSkillRepository) DeleteSkill(ctx context.Context, skillID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM skills WHERE skill_id = $1;`, skillID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete skill "+skillID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("skill " + skillID + " not found for delete")
	}
	return nil
}

// SaveReview persists a new review row.
func (r *PgxSkillRepository) SaveReview(ctx context.Context, review domain.Review) error {
	m := mapping.ToModelReview(review)
	query := `
		INSERT INTO reviews (review_id, skill_id, reviewer_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, m.ReviewID, m.SkillID, m.ReviewerID, m.Rating, m.Comment, m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // one review per (skill, reviewer)
			return fmt.Errorf("%w: skill %s already reviewed", apperrors.ErrDuplicate, m.SkillID)
		}
		return apperrors.NewAppError(500, "failed to insert review "+m.ReviewID, err)
	}
	return nil
}

// FindReviewsBySkillID retrieves all reviews for a skill, newest first.
func (r *PgxSkillRepository) FindReviewsBySkillID(ctx context.Context, skillID string) ([]domain.Review, error) {
	query := `
		SELECT review_id, skill_id, reviewer_id, rating, comment, created_at
		FROM reviews
		WHERE skill_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, skillID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query reviews for skill "+skillID, err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var m models.Review
		if err := rows.Scan(&m.ReviewID, &m.SkillID, &m.ReviewerID, &m.Rating, &m.Comment, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan review row", err)
		}
		reviews = append(reviews, mapping.ToDomainReview(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating review rows", err)
	}
	return reviews, nil
}
