package mapping

import (
	"database/sql"

	"github.com/skillswap/skillswap_app/internal/core/domain"
	"github.com/skillswap/skillswap_app/internal/models"
)

func ToModelUser(u domain.User) models.User {
	m := models.User{
		UserID:        u.UserID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          string(u.Role),
		CreditBalance: u.CreditBalance,
		AuditFields:   toModelAudit(u.AuditFields),
		DeletedAt:     u.DeletedAt,
	}
	if u.PasswordHash != "" {
		m.PasswordHash = sql.NullString{String: u.PasswordHash, Valid: true}
	}
	return m
}

func ToDomainUser(m models.User) domain.User {
	u := domain.User{
		UserID:        m.UserID,
		Name:          m.Name,
		Email:         m.Email,
		Role:          domain.UserRole(m.Role),
		CreditBalance: m.CreditBalance,
		AuditFields:   toDomainAudit(m.AuditFields),
		DeletedAt:     m.DeletedAt,
	}
	if m.PasswordHash.Valid {
		u.PasswordHash = m.PasswordHash.String
	}
	return u
}

func ToModelSkill(s domain.Skill) models.Skill {
	return models.Skill{
		SkillID:       s.SkillID,
		OwnerID:       s.OwnerID,
		Title:         s.Title,
		Description:   s.Description,
		Category:      s.Category,
		Level:         string(s.Level),
		Credits:       s.Credits,
		DurationHours: s.DurationHours,
		AuditFields:   toModelAudit(s.AuditFields),
	}
}

func ToDomainSkill(m models.Skill) domain.Skill {
	return domain.Skill{
		SkillID:       m.SkillID,
		OwnerID:       m.OwnerID,
		Title:         m.Title,
		Description:   m.Description,
		Category:      m.Category,
		Level:         domain.SkillLevel(m.Level),
		Credits:       m.Credits,
		DurationHours: m.DurationHours,
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

func ToModelReview(r domain.Review) models.Review {
	return models.Review{
		ReviewID:   r.ReviewID,
		SkillID:    r.SkillID,
		ReviewerID: r.ReviewerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

func ToDomainReview(m models.Review) domain.Review {
	return domain.Review{
		ReviewID:   m.ReviewID,
		SkillID:    m.SkillID,
		ReviewerID: m.ReviewerID,
		Rating:     m.Rating,
		Comment:    m.Comment,
		CreatedAt:  m.CreatedAt,
	}
}

func ToModelExchange(e domain.Exchange) models.Exchange {
	return models.Exchange{
		ExchangeID:    e.ExchangeID,
		TeacherID:     e.TeacherID,
		LearnerID:     e.LearnerID,
		SkillID:       e.SkillID,
		DurationHours: e.DurationHours,
		Credits:       e.Credits,
		Status:        string(e.Status),
		AuditFields:   toModelAudit(e.AuditFields),
	}
}

func ToDomainExchange(m models.Exchange) domain.Exchange {
	return domain.Exchange{
		ExchangeID:    m.ExchangeID,
		TeacherID:     m.TeacherID,
		LearnerID:     m.LearnerID,
		SkillID:       m.SkillID,
		DurationHours: m.DurationHours,
		Credits:       m.Credits,
		Status:        domain.ExchangeStatus(m.Status),
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

func ToDomainExchangeSlice(ms []models.Exchange) []domain.Exchange {
	out := make([]domain.Exchange, len(ms))
	for i, m := range ms {
		out[i] = ToDomainExchange(m)
	}
	return out
}

func toModelAudit(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toDomainAudit(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}
