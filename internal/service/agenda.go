package service

import (
	"context"

	"example.com/eventhub/services/events/internal/cache"
	"example.com/eventhub/services/events/internal/identifier"
	"example.com/eventhub/services/events/internal/models"
	"example.com/eventhub/services/events/internal/repository"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// resolveOwnedEvent is the ownership gate in front of every agenda and
// item operation. It loads the event and distinguishes "event absent"
// from "event owned by someone else"; ownership is re-checked on every
// call, never cached.
func resolveOwnedEvent(ctx context.Context, r repository.Repository, requesterID, eventID string) (*models.Event, error) {
	event, err := r.FindEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "event %q", eventID)
		}
		return nil, err
	}
	if event.OwnerID != requesterID {
		return nil, ErrForbidden
	}
	return event, nil
}

// GetAgenda returns the event's agenda with items sorted by
// (display_order, start_time).
func (s *service) GetAgenda(ctx context.Context, requesterID, eventID string) (*models.Agenda, error) {
	if _, err := resolveOwnedEvent(ctx, s.repo, requesterID, eventID); err != nil {
		return nil, err
	}

	var cached models.Agenda
	if err := s.cache.Get(ctx, cache.AgendaKey(eventID), &cached); err == nil {
		return &cached, nil
	}

	agenda, err := s.repo.FindAgendaWithItems(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "agenda for event %q", eventID)
		}
		return nil, err
	}
	if agenda.Items == nil {
		agenda.Items = []models.AgendaItem{}
	}

	if err := s.cache.Set(ctx, cache.AgendaKey(eventID), agenda); err != nil {
		log.Warn().Err(err).Str("event_id", eventID).Msg("Failed to cache agenda")
	}

	return agenda, nil
}

// CreateAgenda creates the agenda for an event. An event holds at most
// one agenda; a second create reports a conflict.
func (s *service) CreateAgenda(ctx context.Context, requesterID, eventID string, in CreateAgendaInput) (*models.Agenda, error) {
	if in.Title != nil && len(*in.Title) > maxTitleLength {
		return nil, invalidField("title", "must be at most 200 characters")
	}

	if _, err := resolveOwnedEvent(ctx, s.repo, requesterID, eventID); err != nil {
		return nil, err
	}

	title := models.DefaultAgendaTitle
	if in.Title != nil && *in.Title != "" {
		title = *in.Title
	}

	agenda := &models.Agenda{
		ID:          identifier.New(),
		EventID:     eventID,
		Title:       title,
		Description: in.Description,
	}

	err := s.repo.CreateAgenda(ctx, agenda)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Either the event already has an agenda or the generated id
		// collided. Retry once with a fresh id to rule the latter out.
		agenda.ID = identifier.New()
		err = s.repo.CreateAgenda(ctx, agenda)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.Wrapf(ErrAlreadyExists, "agenda for event %q", eventID)
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create agenda")
	}

	s.invalidateAgenda(ctx, eventID)

	log.Info().
		Str("agenda_id", agenda.ID).
		Str("event_id", eventID).
		Msg("Agenda created")

	agenda.Items = []models.AgendaItem{}
	return agenda, nil
}

// UpdateAgenda applies a partial update to the event's agenda.
func (s *service) UpdateAgenda(ctx context.Context, requesterID, eventID string, in UpdateAgendaInput) (*models.Agenda, error) {
	if in.Title != nil && len(*in.Title) > maxTitleLength {
		return nil, invalidField("title", "must be at most 200 characters")
	}

	if _, err := resolveOwnedEvent(ctx, s.repo, requesterID, eventID); err != nil {
		return nil, err
	}

	agenda, err := s.repo.FindAgendaByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "agenda for event %q", eventID)
		}
		return nil, err
	}

	if in.Title != nil {
		agenda.Title = *in.Title
	}
	if in.Description != nil {
		agenda.Description = in.Description
	}

	if err := s.repo.UpdateAgenda(ctx, agenda); err != nil {
		return nil, errors.Wrap(err, "failed to update agenda")
	}

	s.invalidateAgenda(ctx, eventID)

	updated, err := s.repo.FindAgendaWithItems(ctx, eventID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload agenda")
	}
	if updated.Items == nil {
		updated.Items = []models.AgendaItem{}
	}
	return updated, nil
}

// DeleteAgenda removes the event's agenda; the storage cascade removes
// its items.
func (s *service) DeleteAgenda(ctx context.Context, requesterID, eventID string) error {
	if _, err := resolveOwnedEvent(ctx, s.repo, requesterID, eventID); err != nil {
		return err
	}

	agenda, err := s.repo.FindAgendaByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(ErrNotFound, "agenda for event %q", eventID)
		}
		return err
	}

	if err := s.repo.DeleteAgenda(ctx, agenda.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(ErrNotFound, "agenda for event %q", eventID)
		}
		return errors.Wrap(err, "failed to delete agenda")
	}

	s.invalidateAgenda(ctx, eventID)

	log.Info().
		Str("agenda_id", agenda.ID).
		Str("event_id", eventID).
		Msg("Agenda deleted")

	return nil
}

// AddAgendaItem creates an item in the event's agenda. When no
// display_order is supplied, the item is placed after the current last
// one; the computation and the insert share one transaction so
// concurrent adds cannot race on other fields.
func (s *service) AddAgendaItem(ctx context.Context, requesterID, eventID string, in CreateAgendaItemInput) (*models.AgendaItem, error) {
	if err := validateItemCreate(in); err != nil {
		return nil, err
	}

	if _, err := resolveOwnedEvent(ctx, s.repo, requesterID, eventID); err != nil {
		return nil, err
	}

	var item *models.AgendaItem
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.Repository) error {
		agenda, err := tx.FindAgendaByEventID(ctx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrapf(ErrNotFound, "agenda for event %q", eventID)
			}
			return err
		}

		displayOrder := 0
		if in.DisplayOrder != nil {
			displayOrder = *in.DisplayOrder
		} else {
			max, any, err := tx.MaxDisplayOrder(ctx, agenda.ID)
			if err != nil {
				return err
			}
			if any {
				displayOrder = max + 1
			}
		}

		isImportant := false
		if in.IsImportant != nil {
			isImportant = *in.IsImportant
		}

		item = &models.AgendaItem{
			ID:           identifier.New(),
			AgendaID:     agenda.ID,
			Title:        in.Title,
			Description:  in.Description,
			StartTime:    in.StartTime,
			EndTime:      in.EndTime,
			Location:     in.Location,
			Type:         in.Type,
			DisplayOrder: displayOrder,
			IsImportant:  isImportant,
		}

		err = tx.CreateAgendaItem(ctx, item)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			item.ID = identifier.New()
			err = tx.CreateAgendaItem(ctx, item)
		}
		if err != nil {
			return errors.Wrap(err, "failed to create agenda item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAgenda(ctx, eventID)

	log.Info().
		Str("item_id", item.ID).
		Str("event_id", eventID).
		Int("display_order", item.DisplayOrder).
		Msg("Agenda item created")

	return item, nil
}

// UpdateAgendaItem applies a partial update to an item of the event's
// agenda. The item must belong to that agenda.
func (s *service) UpdateAgendaItem(ctx context.Context, requesterID, eventID, itemID string, in UpdateAgendaItemInput) (*models.AgendaItem, error) {
	if err := validateItemUpdate(in); err != nil {
		return nil, err
	}

	if _, err := resolveOwnedEvent(ctx, s.repo, requesterID, eventID); err != nil {
		return nil, err
	}

	agenda, err := s.repo.FindAgendaByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "agenda for event %q", eventID)
		}
		return nil, err
	}

	item, err := s.repo.FindAgendaItem(ctx, agenda.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "agenda item %q", itemID)
		}
		return nil, err
	}

	if in.Title != nil {
		item.Title = *in.Title
	}
	if in.Description != nil {
		item.Description = in.Description
	}
	if in.StartTime != nil {
		item.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		item.EndTime = in.EndTime
	}
	if in.Location != nil {
		item.Location = in.Location
	}
	if in.Type != nil {
		item.Type = *in.Type
	}
	if in.DisplayOrder != nil {
		item.DisplayOrder = *in.DisplayOrder
	}
	if in.IsImportant != nil {
		item.IsImportant = *in.IsImportant
	}

	// The resulting pair must still be ordered, whichever side changed.
	if item.EndTime != nil && *item.EndTime < item.StartTime {
		return nil, invalidField("end_time", "must not precede start_time")
	}

	if err := s.repo.UpdateAgendaItem(ctx, item); err != nil {
		return nil, errors.Wrap(err, "failed to update agenda item")
	}

	s.invalidateAgenda(ctx, eventID)

	return item, nil
}

// DeleteAgendaItem removes one item from the event's agenda.
func (s *service) DeleteAgendaItem(ctx context.Context, requesterID, eventID, itemID string) error {
	if _, err := resolveOwnedEvent(ctx, s.repo, requesterID, eventID); err != nil {
		return err
	}

	agenda, err := s.repo.FindAgendaByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(ErrNotFound, "agenda for event %q", eventID)
		}
		return err
	}

	if err := s.repo.DeleteAgendaItem(ctx, agenda.ID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(ErrNotFound, "agenda item %q", itemID)
		}
		return errors.Wrap(err, "failed to delete agenda item")
	}

	s.invalidateAgenda(ctx, eventID)

	log.Info().
		Str("item_id", itemID).
		Str("event_id", eventID).
		Msg("Agenda item deleted")

	return nil
}

// ReorderAgendaItems atomically assigns new display_order values. Every
// referenced item must belong to the event's agenda; otherwise nothing
// is changed. Items not listed keep their current order value.
func (s *service) ReorderAgendaItems(ctx context.Context, requesterID, eventID string, orders []repository.ItemOrder) error {
	if len(orders) == 0 {
		return invalidField("items", "must not be empty")
	}
	for _, order := range orders {
		if order.DisplayOrder < 0 {
			return invalidField("display_order", "must not be negative")
		}
	}

	if _, err := resolveOwnedEvent(ctx, s.repo, requesterID, eventID); err != nil {
		return err
	}

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.Repository) error {
		agenda, err := tx.FindAgendaByEventID(ctx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrapf(ErrNotFound, "agenda for event %q", eventID)
			}
			return err
		}

		itemIDs := make([]string, 0, len(orders))
		for _, order := range orders {
			itemIDs = append(itemIDs, order.ItemID)
		}

		count, err := tx.CountAgendaItems(ctx, agenda.ID, itemIDs)
		if err != nil {
			return err
		}
		if count != int64(len(itemIDs)) {
			return ErrReorderConflict
		}

		return tx.UpdateDisplayOrders(ctx, agenda.ID, orders)
	})
	if err != nil {
		return err
	}

	s.invalidateAgenda(ctx, eventID)

	log.Info().
		Str("event_id", eventID).
		Int("items", len(orders)).
		Msg("Agenda items reordered")

	return nil
}

func (s *service) invalidateAgenda(ctx context.Context, eventID string) {
	if err := s.cache.Delete(ctx, cache.AgendaKey(eventID)); err != nil {
		log.Warn().Err(err).Str("event_id", eventID).Msg("Failed to invalidate agenda cache")
	}
}

func validateItemCreate(in CreateAgendaItemInput) error {
	if in.Title == "" {
		return invalidField("title", "is required")
	}
	if len(in.Title) > maxTitleLength {
		return invalidField("title", "must be at most 200 characters")
	}
	if !validTimeOfDay(in.StartTime) {
		return invalidField("start_time", "must be in HH:MM format")
	}
	if in.EndTime != nil {
		if !validTimeOfDay(*in.EndTime) {
			return invalidField("end_time", "must be in HH:MM format")
		}
		if *in.EndTime < in.StartTime {
			return invalidField("end_time", "must not precede start_time")
		}
	}
	if in.Location != nil && len(*in.Location) > maxLocationLength {
		return invalidField("location", "must be at most 200 characters")
	}
	if !models.ValidAgendaItemType(in.Type) {
		return invalidField("type", "is not a valid agenda item type")
	}
	if in.DisplayOrder != nil && *in.DisplayOrder < 0 {
		return invalidField("display_order", "must not be negative")
	}
	return nil
}

func validateItemUpdate(in UpdateAgendaItemInput) error {
	if in.Title != nil {
		if *in.Title == "" {
			return invalidField("title", "must not be empty")
		}
		if len(*in.Title) > maxTitleLength {
			return invalidField("title", "must be at most 200 characters")
		}
	}
	if in.StartTime != nil && !validTimeOfDay(*in.StartTime) {
		return invalidField("start_time", "must be in HH:MM format")
	}
	if in.EndTime != nil && !validTimeOfDay(*in.EndTime) {
		return invalidField("end_time", "must be in HH:MM format")
	}
	if in.Location != nil && len(*in.Location) > maxLocationLength {
		return invalidField("location", "must be at most 200 characters")
	}
	if in.Type != nil && !models.ValidAgendaItemType(*in.Type) {
		return invalidField("type", "is not a valid agenda item type")
	}
	if in.DisplayOrder != nil && *in.DisplayOrder < 0 {
		return invalidField("display_order", "must not be negative")
	}
	return nil
}
