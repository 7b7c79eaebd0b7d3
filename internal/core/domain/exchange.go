package domain

import (
	"fmt"

	"github.com/skillswap/skillswap_app/internal/apperrors"
)

// ExchangeStatus is the lifecycle state of an exchange request.
// The only legal paths are PENDING→ACCEPTED→COMPLETED and PENDING→REJECTED;
// REJECTED and COMPLETED are terminal.
type ExchangeStatus string

const (
	ExchangePending   ExchangeStatus = "PENDING"
	ExchangeAccepted  ExchangeStatus = "ACCEPTED"
	ExchangeRejected  ExchangeStatus = "REJECTED"
	ExchangeCompleted ExchangeStatus = "COMPLETED"
)

// ParseExchangeStatus converts a raw string into an ExchangeStatus.
func ParseExchangeStatus(s string) (ExchangeStatus, error) {
	switch ExchangeStatus(s) {
	case ExchangePending, ExchangeAccepted, ExchangeRejected, ExchangeCompleted:
		return ExchangeStatus(s), nil
	}
	return "", fmt.Errorf("unknown exchange status %q", s)
}

// IsTerminal reports whether no further transitions exist from s.
func (s ExchangeStatus) IsTerminal() bool {
	return s == ExchangeRejected || s == ExchangeCompleted
}

// Exchange links a learner's request to a teacher's skill. Everything but
// Status is fixed at creation; Credits is a snapshot of the skill's price at
// request time.
type Exchange struct {
	ExchangeID    string         `json:"exchangeID"`
	TeacherID     string         `json:"teacherID"`
	LearnerID     string         `json:"learnerID"`
	SkillID       string         `json:"skillID"`
	DurationHours int            `json:"durationHours"`
	Credits       int64          `json:"credits"`
	Status        ExchangeStatus `json:"status"`
	AuditFields
}

type transitionEdge struct {
	from ExchangeStatus
	to   ExchangeStatus
}

type transitionRule struct {
	// teacherOnly edges may only be taken by the teacher; otherwise either
	// party to the exchange may take the edge.
	teacherOnly bool
	// movesCredits marks the single edge that settles payment
	// (learner → teacher, exchange.Credits).
	movesCredits bool
}

// transitions is the complete edge set of the exchange state machine.
// An edge absent from this map does not exist.
var transitions = map[transitionEdge]transitionRule{
	{ExchangePending, ExchangeAccepted}:   {teacherOnly: true, movesCredits: true},
	{ExchangePending, ExchangeRejected}:   {teacherOnly: true},
	{ExchangeAccepted, ExchangeCompleted}: {},
}

// AuthorizeTransition decides whether actorID may move the exchange from its
// current status to requested. It returns whether the edge settles credits.
// The learner-balance precondition on acceptance is not checked here; it is
// enforced atomically by the ledger at commit time.
func (e *Exchange) AuthorizeTransition(actorID string, requested ExchangeStatus) (movesCredits bool, err error) {
	rule, ok := transitions[transitionEdge{e.Status, requested}]
	if !ok {
		return false, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, e.Status, requested)
	}
	if rule.teacherOnly {
		if actorID != e.TeacherID {
			return false, fmt.Errorf("%w: only the teacher may %s a pending exchange", apperrors.ErrForbidden, requested)
		}
	} else if actorID != e.TeacherID && actorID != e.LearnerID {
		return false, fmt.Errorf("%w: actor is not part of this exchange", apperrors.ErrForbidden)
	}
	return rule.movesCredits, nil
}
