package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"example.com/eventhub/services/events/config"
	"example.com/eventhub/services/events/internal/models"
	"example.com/eventhub/services/events/internal/repository"
	"example.com/eventhub/services/events/internal/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockService is a testify mock of service.Service.
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateUser(ctx context.Context, in service.CreateUserInput) (*models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockService) UpdateUser(ctx context.Context, userID string, in service.UpdateUserInput) (*models.User, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockService) CreateEvent(ctx context.Context, requesterID string, in service.CreateEventInput) (*models.Event, error) {
	args := m.Called(ctx, requesterID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockService) GetEvent(ctx context.Context, requesterID, eventID string) (*models.Event, error) {
	args := m.Called(ctx, requesterID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockService) ListEvents(ctx context.Context, requesterID string, in service.ListEventsInput) (*repository.EventPage, error) {
	args := m.Called(ctx, requesterID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.EventPage), args.Error(1)
}

func (m *MockService) UpdateEvent(ctx context.Context, requesterID, eventID string, in service.UpdateEventInput) (*models.Event, error) {
	args := m.Called(ctx, requesterID, eventID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockService) DeleteEvent(ctx context.Context, requesterID, eventID string) error {
	args := m.Called(ctx, requesterID, eventID)
	return args.Error(0)
}

func (m *MockService) GetAgenda(ctx context.Context, requesterID, eventID string) (*models.Agenda, error) {
	args := m.Called(ctx, requesterID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agenda), args.Error(1)
}

func (m *MockService) CreateAgenda(ctx context.Context, requesterID, eventID string, in service.CreateAgendaInput) (*models.Agenda, error) {
	args := m.Called(ctx, requesterID, eventID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agenda), args.Error(1)
}

func (m *MockService) UpdateAgenda(ctx context.Context, requesterID, eventID string, in service.UpdateAgendaInput) (*models.Agenda, error) {
	args := m.Called(ctx, requesterID, eventID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agenda), args.Error(1)
}

func (m *MockService) DeleteAgenda(ctx context.Context, requesterID, eventID string) error {
	args := m.Called(ctx, requesterID, eventID)
	return args.Error(0)
}

func (m *MockService) AddAgendaItem(ctx context.Context, requesterID, eventID string, in service.CreateAgendaItemInput) (*models.AgendaItem, error) {
	args := m.Called(ctx, requesterID, eventID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgendaItem), args.Error(1)
}

func (m *MockService) UpdateAgendaItem(ctx context.Context, requesterID, eventID, itemID string, in service.UpdateAgendaItemInput) (*models.AgendaItem, error) {
	args := m.Called(ctx, requesterID, eventID, itemID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgendaItem), args.Error(1)
}

func (m *MockService) DeleteAgendaItem(ctx context.Context, requesterID, eventID, itemID string) error {
	args := m.Called(ctx, requesterID, eventID, itemID)
	return args.Error(0)
}

func (m *MockService) ReorderAgendaItems(ctx context.Context, requesterID, eventID string, orders []repository.ItemOrder) error {
	args := m.Called(ctx, requesterID, eventID, orders)
	return args.Error(0)
}

// stubDB satisfies database.DB without a live connection.
type stubDB struct {
	err error
}

func (s *stubDB) DB() (*gorm.DB, error) { return nil, s.err }
func (s *stubDB) Close() error          { return nil }

func newTestServer(svc service.Service) *Server {
	return NewServer(config.Config{
		Environment:   "test",
		ServerAddress: ":0",
	}, svc, &stubDB{err: errors.New("no database")})
}

func doRequest(t *testing.T, srv *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	w := doRequest(t, srv, http.MethodGet, "/events/evt000000001/agenda", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/events/evt000000001/agenda", "not-an-id", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	svc.AssertNotCalled(t, "GetAgenda", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetAgenda(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	svc.On("GetAgenda", mock.Anything, "usr000000001", "evt000000001").
		Return(&models.Agenda{
			ID:      "agn000000001",
			EventID: "evt000000001",
			Title:   models.DefaultAgendaTitle,
			Items: []models.AgendaItem{
				{ID: "itm000000001", Title: "Ceremonija", StartTime: "09:00", DisplayOrder: 0, Type: models.ItemCeremony},
				{ID: "itm000000002", Title: "Doručak", StartTime: "08:00", DisplayOrder: 1, Type: models.ItemMeal},
			},
		}, nil)

	w := doRequest(t, srv, http.MethodGet, "/events/evt000000001/agenda", "usr000000001", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Agenda models.Agenda `json:"agenda"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.DefaultAgendaTitle, resp.Agenda.Title)
	require.Len(t, resp.Agenda.Items, 2)
	assert.Equal(t, "itm000000001", resp.Agenda.Items[0].ID)
	assert.Equal(t, "itm000000002", resp.Agenda.Items[1].ID)
}

func TestGetAgendaStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"event not found", errors.Wrap(service.ErrNotFound, "event"), http.StatusNotFound},
		{"not the owner", service.ErrForbidden, http.StatusForbidden},
		{"storage failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			srv := newTestServer(svc)

			svc.On("GetAgenda", mock.Anything, "usr000000001", "evt000000001").
				Return(nil, tt.err)

			w := doRequest(t, srv, http.MethodGet, "/events/evt000000001/agenda", "usr000000001", nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestCreateAgenda(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	svc.On("CreateAgenda", mock.Anything, "usr000000001", "evt000000001", mock.Anything).
		Return(&models.Agenda{
			ID:      "agn000000001",
			EventID: "evt000000001",
			Title:   models.DefaultAgendaTitle,
			Items:   []models.AgendaItem{},
		}, nil)

	w := doRequest(t, srv, http.MethodPost, "/events/evt000000001/agenda", "usr000000001", map[string]interface{}{})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateAgendaConflict(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	svc.On("CreateAgenda", mock.Anything, "usr000000001", "evt000000001", mock.Anything).
		Return(nil, errors.Wrap(service.ErrAlreadyExists, "agenda"))

	w := doRequest(t, srv, http.MethodPost, "/events/evt000000001/agenda", "usr000000001", map[string]interface{}{})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateAgendaItem(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	svc.On("AddAgendaItem", mock.Anything, "usr000000001", "evt000000001", service.CreateAgendaItemInput{
		Title:     "Ceremonija",
		StartTime: "09:00",
		Type:      models.ItemCeremony,
	}).Return(&models.AgendaItem{
		ID: "itm000000001", AgendaID: "agn000000001",
		Title: "Ceremonija", StartTime: "09:00",
		Type: models.ItemCeremony, DisplayOrder: 0,
	}, nil)

	w := doRequest(t, srv, http.MethodPost, "/events/evt000000001/agenda/items", "usr000000001", map[string]interface{}{
		"title":      "Ceremonija",
		"start_time": "09:00",
		"type":       "ceremony",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Item models.AgendaItem `json:"agenda_item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Item.DisplayOrder)
}

func TestCreateAgendaItemMissingTitle(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	w := doRequest(t, srv, http.MethodPost, "/events/evt000000001/agenda/items", "usr000000001", map[string]interface{}{
		"start_time": "09:00",
		"type":       "ceremony",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "AddAgendaItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateAgendaItemValidationError(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	svc.On("AddAgendaItem", mock.Anything, "usr000000001", "evt000000001", mock.Anything).
		Return(nil, &service.ValidationError{Field: "end_time", Message: "must not precede start_time"})

	w := doRequest(t, srv, http.MethodPost, "/events/evt000000001/agenda/items", "usr000000001", map[string]interface{}{
		"title":      "Ručak",
		"start_time": "13:00",
		"end_time":   "12:00",
		"type":       "meal",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "end_time", resp["field"])
}

func TestReorderAgendaItems(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	svc.On("ReorderAgendaItems", mock.Anything, "usr000000001", "evt000000001", []repository.ItemOrder{
		{ItemID: "itm000000002", DisplayOrder: 0},
		{ItemID: "itm000000001", DisplayOrder: 1},
	}).Return(nil)

	w := doRequest(t, srv, http.MethodPut, "/events/evt000000001/agenda/reorder", "usr000000001", map[string]interface{}{
		"items": []map[string]interface{}{
			{"item_id": "itm000000002", "display_order": 0},
			{"item_id": "itm000000001", "display_order": 1},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReorderAgendaItemsConflict(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	svc.On("ReorderAgendaItems", mock.Anything, "usr000000001", "evt000000001", mock.Anything).
		Return(service.ErrReorderConflict)

	w := doRequest(t, srv, http.MethodPut, "/events/evt000000001/agenda/reorder", "usr000000001", map[string]interface{}{
		"items": []map[string]interface{}{
			{"item_id": "itm000000bad", "display_order": 0},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReorderAgendaItemsEmptyBody(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	w := doRequest(t, srv, http.MethodPut, "/events/evt000000001/agenda/reorder", "usr000000001", map[string]interface{}{
		"items": []map[string]interface{}{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ReorderAgendaItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteAgenda(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	svc.On("DeleteAgenda", mock.Anything, "usr000000001", "evt000000001").
		Return(nil)

	w := doRequest(t, srv, http.MethodDelete, "/events/evt000000001/agenda", "usr000000001", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteAgendaItem(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	svc.On("DeleteAgendaItem", mock.Anything, "usr000000001", "evt000000001", "itm000000001").
		Return(nil)

	w := doRequest(t, srv, http.MethodDelete, "/events/evt000000001/agenda/items/itm000000001", "usr000000001", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUpdateAgendaItemNotFound(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	svc.On("UpdateAgendaItem", mock.Anything, "usr000000001", "evt000000001", "itm000000404", mock.Anything).
		Return(nil, errors.Wrap(service.ErrNotFound, "agenda item"))

	w := doRequest(t, srv, http.MethodPut, "/events/evt000000001/agenda/items/itm000000404", "usr000000001", map[string]interface{}{
		"title": "X",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateUserOpenRoute(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	svc.On("CreateUser", mock.Anything, mock.Anything).
		Return(&models.User{ID: "usr000000001", Email: "ana@example.com"}, nil)

	// Registration does not require an Authorization header.
	w := doRequest(t, srv, http.MethodPost, "/users", "", map[string]interface{}{
		"email": "ana@example.com",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateUserDuplicate(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	svc.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(service.ErrAlreadyExists, "user"))

	w := doRequest(t, srv, http.MethodPost, "/users", "", map[string]interface{}{
		"email": "ana@example.com",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListEventsQueryDefaults(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	svc.On("ListEvents", mock.Anything, "usr000000001", service.ListEventsInput{
		Limit:  20,
		Offset: 0,
	}).Return(&repository.EventPage{Events: []models.Event{}, Total: 0, HasMore: false}, nil)

	w := doRequest(t, srv, http.MethodGet, "/events", "usr000000001", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events  []models.Event `json:"events"`
		Total   int64          `json:"total"`
		HasMore bool           `json:"has_more"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Events)
	svc.AssertExpectations(t)
}

func TestHealthUnavailable(t *testing.T) {
	svc := new(MockService)
	srv := newTestServer(svc)

	w := doRequest(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
