package service

import (
	"context"

	"example.com/eventhub/services/events/internal/cache"
	"example.com/eventhub/services/events/internal/models"
	"example.com/eventhub/services/events/internal/repository"
)

// Service defines the business logic operations
type Service interface {
	// User operations
	CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, in UpdateUserInput) (*models.User, error)

	// Event operations
	CreateEvent(ctx context.Context, requesterID string, in CreateEventInput) (*models.Event, error)
	GetEvent(ctx context.Context, requesterID, eventID string) (*models.Event, error)
	ListEvents(ctx context.Context, requesterID string, in ListEventsInput) (*repository.EventPage, error)
	UpdateEvent(ctx context.Context, requesterID, eventID string, in UpdateEventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, requesterID, eventID string) error

	// Agenda operations
	GetAgenda(ctx context.Context, requesterID, eventID string) (*models.Agenda, error)
	CreateAgenda(ctx context.Context, requesterID, eventID string, in CreateAgendaInput) (*models.Agenda, error)
	UpdateAgenda(ctx context.Context, requesterID, eventID string, in UpdateAgendaInput) (*models.Agenda, error)
	DeleteAgenda(ctx context.Context, requesterID, eventID string) error

	// AgendaItem operations
	AddAgendaItem(ctx context.Context, requesterID, eventID string, in CreateAgendaItemInput) (*models.AgendaItem, error)
	UpdateAgendaItem(ctx context.Context, requesterID, eventID, itemID string, in UpdateAgendaItemInput) (*models.AgendaItem, error)
	DeleteAgendaItem(ctx context.Context, requesterID, eventID, itemID string) error
	ReorderAgendaItems(ctx context.Context, requesterID, eventID string, orders []repository.ItemOrder) error
}

// service implements Service on top of the repository and the agenda cache.
type service struct {
	repo  repository.Repository
	cache *cache.RedisCache
}

// New creates a new service instance
func New(repo repository.Repository, agendaCache *cache.RedisCache) Service {
	return &service{
		repo:  repo,
		cache: agendaCache,
	}
}
