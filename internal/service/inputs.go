package service

import (
	"example.com/eventhub/services/events/internal/models"
)

// CreateUserInput carries the fields of a user registration.
type CreateUserInput struct {
	Email     string
	FirstName *string
	LastName  *string
	Phone     *string
}

// UpdateUserInput carries a partial profile update. Nil fields are left
// unchanged.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

// CreateEventInput carries the fields of a new event.
type CreateEventInput struct {
	Name           string
	Plan           models.EventPlan
	Location       string
	RestaurantName *string
	Date           string
	Time           string
	EventType      models.EventType
	ExpectedGuests *int
	Description    *string
}

// UpdateEventInput carries a partial event update. Nil fields are left
// unchanged.
type UpdateEventInput struct {
	Name           *string
	Location       *string
	RestaurantName *string
	Date           *string
	Time           *string
	EventType      *models.EventType
	ExpectedGuests *int
	Description    *string
}

// ListEventsInput carries pagination and filtering for event listings.
type ListEventsInput struct {
	Status models.EventStatus
	Limit  int
	Offset int
}

// CreateAgendaInput carries the optional fields of a new agenda.
type CreateAgendaInput struct {
	Title       *string
	Description *string
}

// UpdateAgendaInput carries a partial agenda update.
type UpdateAgendaInput struct {
	Title       *string
	Description *string
}

// CreateAgendaItemInput carries the fields of a new agenda item.
type CreateAgendaItemInput struct {
	Title        string
	Description  *string
	StartTime    string
	EndTime      *string
	Location     *string
	Type         models.AgendaItemType
	DisplayOrder *int
	IsImportant  *bool
}

// UpdateAgendaItemInput carries a partial agenda item update.
type UpdateAgendaItemInput struct {
	Title        *string
	Description  *string
	StartTime    *string
	EndTime      *string
	Location     *string
	Type         *models.AgendaItemType
	DisplayOrder *int
	IsImportant  *bool
}
