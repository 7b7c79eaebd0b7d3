package domain

import "time"

// SkillLevel is the difficulty level a skill is taught at.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "BEGINNER"
	LevelIntermediate SkillLevel = "INTERMEDIATE"
	LevelAdvanced     SkillLevel = "ADVANCED"
)

// Skill is an offering a user (the teacher) lists on the marketplace.
// Credits is the asking price per exchange; exchanges snapshot it at
// request time, so later edits never reprice open requests.
type Skill struct {
	SkillID       string     `json:"skillID"`
	OwnerID       string     `json:"ownerID"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Level         SkillLevel `json:"level"`
	Credits       int64      `json:"credits"`
	DurationHours int        `json:"durationHours"`
	AuditFields
}

// Review is a learner's rating of a skill after an exchange.
type Review struct {
	ReviewID   string    `json:"reviewID"`
	SkillID    string    `json:"skillID"`
	ReviewerID string    `json:"reviewerID"`
	Rating     int       `json:"rating"` // 1..5
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}
