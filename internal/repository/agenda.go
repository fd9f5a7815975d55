package repository

import (
	"context"

	"example.com/eventhub/services/events/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Agenda operations implementation

func (r *repo) CreateAgenda(ctx context.Context, agenda *models.Agenda) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Create(agenda).Error
}

func (r *repo) FindAgendaByEventID(ctx context.Context, eventID string) (*models.Agenda, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var agenda models.Agenda
	if err := gormDB.WithContext(ctx).Where("event_id = ?", eventID).First(&agenda).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find agenda by event id")
	}

	return &agenda, nil
}

func (r *repo) FindAgendaWithItems(ctx context.Context, eventID string) (*models.Agenda, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var agenda models.Agenda
	err = gormDB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, start_time ASC")
		}).
		Where("event_id = ?", eventID).
		First(&agenda).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find agenda with items")
	}

	return &agenda, nil
}

func (r *repo) UpdateAgenda(ctx context.Context, agenda *models.Agenda) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Save(agenda).Error
}

func (r *repo) DeleteAgenda(ctx context.Context, id string) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	// Item rows go with the agenda via ON DELETE CASCADE.
	result := gormDB.WithContext(ctx).Where("id = ?", id).Delete(&models.Agenda{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete agenda")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// AgendaItem operations implementation

func (r *repo) CreateAgendaItem(ctx context.Context, item *models.AgendaItem) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Create(item).Error
}

func (r *repo) FindAgendaItem(ctx context.Context, agendaID, itemID string) (*models.AgendaItem, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var item models.AgendaItem
	err = gormDB.WithContext(ctx).
		Where("id = ? AND agenda_id = ?", itemID, agendaID).
		First(&item).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find agenda item")
	}

	return &item, nil
}

// MaxDisplayOrder returns the highest display_order in the agenda and
// whether the agenda has any items at all.
func (r *repo) MaxDisplayOrder(ctx context.Context, agendaID string) (int, bool, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return 0, false, err
	}

	var result struct {
		Max   *int
		Count int64
	}
	err = gormDB.WithContext(ctx).
		Model(&models.AgendaItem{}).
		Select("MAX(display_order) AS max, COUNT(*) AS count").
		Where("agenda_id = ?", agendaID).
		Scan(&result).Error
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to compute max display order")
	}

	if result.Count == 0 || result.Max == nil {
		return 0, false, nil
	}
	return *result.Max, true, nil
}

func (r *repo) UpdateAgendaItem(ctx context.Context, item *models.AgendaItem) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Save(item).Error
}

func (r *repo) DeleteAgendaItem(ctx context.Context, agendaID, itemID string) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	result := gormDB.WithContext(ctx).
		Where("id = ? AND agenda_id = ?", itemID, agendaID).
		Delete(&models.AgendaItem{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete agenda item")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// CountAgendaItems counts how many of itemIDs belong to the agenda.
func (r *repo) CountAgendaItems(ctx context.Context, agendaID string, itemIDs []string) (int64, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return 0, err
	}

	var count int64
	err = gormDB.WithContext(ctx).
		Model(&models.AgendaItem{}).
		Where("agenda_id = ? AND id IN ?", agendaID, itemIDs).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count agenda items")
	}

	return count, nil
}

// UpdateDisplayOrders applies the given display_order values. Callers run
// it inside WithTransaction together with the membership check.
func (r *repo) UpdateDisplayOrders(ctx context.Context, agendaID string, orders []ItemOrder) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	for _, order := range orders {
		err := gormDB.WithContext(ctx).
			Model(&models.AgendaItem{}).
			Where("id = ? AND agenda_id = ?", order.ItemID, agendaID).
			Update("display_order", order.DisplayOrder).Error
		if err != nil {
			return errors.Wrap(err, "failed to update display order")
		}
	}

	return nil
}
