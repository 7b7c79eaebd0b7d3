package models

// Exchange is the database row shape for exchange requests.
// Only status (and the audit columns) ever change after insert.
type Exchange struct {
	ExchangeID    string `db:"exchange_id"`
	TeacherID     string `db:"teacher_id"`
	LearnerID     string `db:"learner_id"`
	SkillID       string `db:"skill_id"`
	DurationHours int    `db:"duration_hours"`
	Credits       int64  `db:"credits"`
	Status        string `db:"status"`
	AuditFields
}
