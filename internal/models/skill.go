package models

import "time"

// Skill is the database row shape for marketplace skills.
type Skill struct {
	SkillID       string `db:"skill_id"`
	OwnerID       string `db:"owner_id"`
	Title         string `db:"title"`
	Description   string `db:"description"`
	Category      string `db:"category"`
	Level         string `db:"level"`
	Credits       int64  `db:"credits"`
	DurationHours int    `db:"duration_hours"`
	AuditFields
}

// Review is the database row shape for skill reviews.
type Review struct {
	ReviewID   string    `db:"review_id"`
	SkillID    string    `db:"skill_id"`
	ReviewerID string    `db:"reviewer_id"`
	Rating     int       `db:"rating"`
	Comment    string    `db:"comment"`
	CreatedAt  time.Time `db:"created_at"`
}
