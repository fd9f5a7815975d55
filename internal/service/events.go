package service

import (
	"context"

	"example.com/eventhub/services/events/internal/identifier"
	"example.com/eventhub/services/events/internal/models"
	"example.com/eventhub/services/events/internal/repository"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateEvent creates an event owned by the requester. New events start
// in draft status.
func (s *service) CreateEvent(ctx context.Context, requesterID string, in CreateEventInput) (*models.Event, error) {
	if err := validateEventCreate(in); err != nil {
		return nil, err
	}

	event := &models.Event{
		ID:             identifier.New(),
		OwnerID:        requesterID,
		Name:           in.Name,
		Plan:           in.Plan,
		Location:       in.Location,
		RestaurantName: in.RestaurantName,
		Date:           in.Date,
		Time:           in.Time,
		EventType:      in.EventType,
		ExpectedGuests: in.ExpectedGuests,
		Description:    in.Description,
		Status:         models.StatusDraft,
	}

	err := s.repo.CreateEvent(ctx, event)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		event.ID = identifier.New()
		err = s.repo.CreateEvent(ctx, event)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create event")
	}

	log.Info().
		Str("event_id", event.ID).
		Str("owner_id", requesterID).
		Msg("Event created")

	return event, nil
}

// GetEvent returns one of the requester's events, with its agenda and
// sorted items attached when one exists.
func (s *service) GetEvent(ctx context.Context, requesterID, eventID string) (*models.Event, error) {
	event, err := resolveOwnedEvent(ctx, s.repo, requesterID, eventID)
	if err != nil {
		return nil, err
	}

	agenda, err := s.repo.FindAgendaWithItems(ctx, eventID)
	if err == nil {
		event.Agenda = agenda
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return event, nil
}

// ListEvents returns a page of the requester's events.
func (s *service) ListEvents(ctx context.Context, requesterID string, in ListEventsInput) (*repository.EventPage, error) {
	if in.Status != "" && !validEventStatus(in.Status) {
		return nil, invalidField("status", "must be one of active, expired, draft")
	}
	if in.Limit < 1 || in.Limit > 1000 {
		return nil, invalidField("limit", "must be between 1 and 1000")
	}
	if in.Offset < 0 {
		return nil, invalidField("offset", "must not be negative")
	}

	page, err := s.repo.ListEvents(ctx, requesterID, in.Status, in.Limit, in.Offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}
	if page.Events == nil {
		page.Events = []models.Event{}
	}

	return page, nil
}

// UpdateEvent applies a partial update to one of the requester's events.
func (s *service) UpdateEvent(ctx context.Context, requesterID, eventID string, in UpdateEventInput) (*models.Event, error) {
	if err := validateEventUpdate(in); err != nil {
		return nil, err
	}

	event, err := resolveOwnedEvent(ctx, s.repo, requesterID, eventID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		event.Name = *in.Name
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.RestaurantName != nil {
		event.RestaurantName = in.RestaurantName
	}
	if in.Date != nil {
		event.Date = *in.Date
	}
	if in.Time != nil {
		event.Time = *in.Time
	}
	if in.EventType != nil {
		event.EventType = *in.EventType
	}
	if in.ExpectedGuests != nil {
		event.ExpectedGuests = in.ExpectedGuests
	}
	if in.Description != nil {
		event.Description = in.Description
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, errors.Wrap(err, "failed to update event")
	}

	return event, nil
}

// DeleteEvent removes one of the requester's events; the storage cascade
// removes its agenda and items.
func (s *service) DeleteEvent(ctx context.Context, requesterID, eventID string) error {
	if _, err := resolveOwnedEvent(ctx, s.repo, requesterID, eventID); err != nil {
		return err
	}

	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(ErrNotFound, "event %q", eventID)
		}
		return errors.Wrap(err, "failed to delete event")
	}

	s.invalidateAgenda(ctx, eventID)

	log.Info().
		Str("event_id", eventID).
		Str("owner_id", requesterID).
		Msg("Event deleted")

	return nil
}

func validateEventCreate(in CreateEventInput) error {
	if in.Name == "" {
		return invalidField("name", "is required")
	}
	if len(in.Name) > maxTitleLength {
		return invalidField("name", "must be at most 200 characters")
	}
	if !validEventPlan(in.Plan) {
		return invalidField("plan", "must be one of freemium, starter, plus, full")
	}
	if in.Location == "" {
		return invalidField("location", "is required")
	}
	if !validDate(in.Date) {
		return invalidField("date", "must be in YYYY-MM-DD format")
	}
	if !validTimeOfDay(in.Time) {
		return invalidField("time", "must be in HH:MM format")
	}
	if !validEventType(in.EventType) {
		return invalidField("event_type", "is not a valid event type")
	}
	if in.ExpectedGuests != nil && *in.ExpectedGuests < 1 {
		return invalidField("expected_guests", "must be at least 1")
	}
	if in.Description != nil && len(*in.Description) > maxDescriptionLength {
		return invalidField("description", "must be at most 1000 characters")
	}
	return nil
}

func validateEventUpdate(in UpdateEventInput) error {
	if in.Name != nil {
		if *in.Name == "" {
			return invalidField("name", "must not be empty")
		}
		if len(*in.Name) > maxTitleLength {
			return invalidField("name", "must be at most 200 characters")
		}
	}
	if in.Date != nil && !validDate(*in.Date) {
		return invalidField("date", "must be in YYYY-MM-DD format")
	}
	if in.Time != nil && !validTimeOfDay(*in.Time) {
		return invalidField("time", "must be in HH:MM format")
	}
	if in.EventType != nil && !validEventType(*in.EventType) {
		return invalidField("event_type", "is not a valid event type")
	}
	if in.ExpectedGuests != nil && *in.ExpectedGuests < 1 {
		return invalidField("expected_guests", "must be at least 1")
	}
	if in.Description != nil && len(*in.Description) > maxDescriptionLength {
		return invalidField("description", "must be at most 1000 characters")
	}
	return nil
}
