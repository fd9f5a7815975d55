package service

import (
	"time"

	"example.com/eventhub/services/events/internal/models"
)

const (
	maxTitleLength       = 200
	maxLocationLength    = 200
	maxDescriptionLength = 1000
)

// validTimeOfDay reports whether s is a zero-padded "HH:MM" wall-clock
// value. The zero-padding matters: it makes lexicographic order on the
// stored column chronological.
func validTimeOfDay(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// validDate reports whether s is a "YYYY-MM-DD" calendar date.
func validDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validEventPlan(p models.EventPlan) bool {
	switch p {
	case models.PlanFreemium, models.PlanStarter, models.PlanPlus, models.PlanFull:
		return true
	}
	return false
}

func validEventType(t models.EventType) bool {
	switch t {
	case models.EventWedding, models.EventBirthday, models.EventBaptism,
		models.EventGraduation, models.EventAnniversary, models.EventCorporate,
		models.EventOther:
		return true
	}
	return false
}

func validEventStatus(s models.EventStatus) bool {
	switch s {
	case models.StatusActive, models.StatusExpired, models.StatusDraft:
		return true
	}
	return false
}
