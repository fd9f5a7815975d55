package repository

import (
	"context"

	"example.com/eventhub/services/events/internal/database"
	"example.com/eventhub/services/events/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ItemOrder is one (item, display_order) pair of a bulk reorder.
type ItemOrder struct {
	ItemID       string
	DisplayOrder int
}

// EventPage is one page of an owner's events.
type EventPage struct {
	Events  []models.Event
	Total   int64
	HasMore bool
}

// Repository provides data access methods
type Repository interface {
	// Transaction support
	WithTransaction(ctx context.Context, fn func(ctx context.Context, txRepo Repository) error) error

	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error

	// Event operations
	CreateEvent(ctx context.Context, event *models.Event) error
	FindEventByID(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context, ownerID string, status models.EventStatus, limit, offset int) (*EventPage, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id string) error

	// Agenda operations
	CreateAgenda(ctx context.Context, agenda *models.Agenda) error
	FindAgendaByEventID(ctx context.Context, eventID string) (*models.Agenda, error)
	FindAgendaWithItems(ctx context.Context, eventID string) (*models.Agenda, error)
	UpdateAgenda(ctx context.Context, agenda *models.Agenda) error
	DeleteAgenda(ctx context.Context, id string) error

	// AgendaItem operations
	CreateAgendaItem(ctx context.Context, item *models.AgendaItem) error
	FindAgendaItem(ctx context.Context, agendaID, itemID string) (*models.AgendaItem, error)
	MaxDisplayOrder(ctx context.Context, agendaID string) (max int, any bool, err error)
	UpdateAgendaItem(ctx context.Context, item *models.AgendaItem) error
	DeleteAgendaItem(ctx context.Context, agendaID, itemID string) error
	CountAgendaItems(ctx context.Context, agendaID string, itemIDs []string) (int64, error)
	UpdateDisplayOrders(ctx context.Context, agendaID string, orders []ItemOrder) error
}

// repo is an implementation of the Repository interface
type repo struct {
	db database.DB
}

// NewRepository creates a new repository instance
func NewRepository(db database.DB) Repository {
	return &repo{db: db}
}

// Helper type for transaction support
type dbWrapper struct {
	db *gorm.DB
}

func (w *dbWrapper) DB() (*gorm.DB, error) {
	return w.db, nil
}

func (w *dbWrapper) Close() error {
	return nil
}

// WithTransaction executes the given function within a database transaction
func (r *repo) WithTransaction(ctx context.Context, fn func(ctx context.Context, txRepo Repository) error) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &repo{
			db: &dbWrapper{db: tx},
		}
		return fn(ctx, txRepo)
	})
}

// User operations implementation

func (r *repo) CreateUser(ctx context.Context, user *models.User) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Create(user).Error
}

func (r *repo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := gormDB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return &user, nil
}

func (r *repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := gormDB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return &user, nil
}

func (r *repo) UpdateUser(ctx context.Context, user *models.User) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Save(user).Error
}

// Event operations implementation

func (r *repo) CreateEvent(ctx context.Context, event *models.Event) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Create(event).Error
}

func (r *repo) FindEventByID(ctx context.Context, id string) (*models.Event, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var event models.Event
	if err := gormDB.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find event by id")
	}

	return &event, nil
}

func (r *repo) ListEvents(ctx context.Context, ownerID string, status models.EventStatus, limit, offset int) (*EventPage, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	query := gormDB.WithContext(ctx).Model(&models.Event{}).Where("owner_id = ?", ownerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count events")
	}

	var events []models.Event
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&events).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}

	return &EventPage{
		Events:  events,
		Total:   total,
		HasMore: int64(offset+limit) < total,
	}, nil
}

func (r *repo) UpdateEvent(ctx context.Context, event *models.Event) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Save(event).Error
}

func (r *repo) DeleteEvent(ctx context.Context, id string) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	// Agenda and item rows go with the event via ON DELETE CASCADE.
	result := gormDB.WithContext(ctx).Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete event")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
