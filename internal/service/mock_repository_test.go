package service

import (
	"context"

	"example.com/eventhub/services/events/internal/models"
	"example.com/eventhub/services/events/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockRepository is a testify mock of repository.Repository.
type MockRepository struct {
	mock.Mock
}

// WithTransaction runs fn against the mock itself; transactional
// behavior is not simulated.
func (m *MockRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, txRepo repository.Repository) error) error {
	return fn(ctx, m)
}

func (m *MockRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRepository) FindEventByID(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockRepository) ListEvents(ctx context.Context, ownerID string, status models.EventStatus, limit, offset int) (*repository.EventPage, error) {
	args := m.Called(ctx, ownerID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.EventPage), args.Error(1)
}

func (m *MockRepository) UpdateEvent(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRepository) DeleteEvent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CreateAgenda(ctx context.Context, agenda *models.Agenda) error {
	args := m.Called(ctx, agenda)
	return args.Error(0)
}

func (m *MockRepository) FindAgendaByEventID(ctx context.Context, eventID string) (*models.Agenda, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agenda), args.Error(1)
}

func (m *MockRepository) FindAgendaWithItems(ctx context.Context, eventID string) (*models.Agenda, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agenda), args.Error(1)
}

func (m *MockRepository) UpdateAgenda(ctx context.Context, agenda *models.Agenda) error {
	args := m.Called(ctx, agenda)
	return args.Error(0)
}

func (m *MockRepository) DeleteAgenda(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CreateAgendaItem(ctx context.Context, item *models.AgendaItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) FindAgendaItem(ctx context.Context, agendaID, itemID string) (*models.AgendaItem, error) {
	args := m.Called(ctx, agendaID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgendaItem), args.Error(1)
}

func (m *MockRepository) MaxDisplayOrder(ctx context.Context, agendaID string) (int, bool, error) {
	args := m.Called(ctx, agendaID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockRepository) UpdateAgendaItem(ctx context.Context, item *models.AgendaItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) DeleteAgendaItem(ctx context.Context, agendaID, itemID string) error {
	args := m.Called(ctx, agendaID, itemID)
	return args.Error(0)
}

func (m *MockRepository) CountAgendaItems(ctx context.Context, agendaID string, itemIDs []string) (int64, error) {
	args := m.Called(ctx, agendaID, itemIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) UpdateDisplayOrders(ctx context.Context, agendaID string, orders []repository.ItemOrder) error {
	args := m.Called(ctx, agendaID, orders)
	return args.Error(0)
}
