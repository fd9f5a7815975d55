package models

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// EventPlan is the subscription plan an event was created under. The
// service stores it but applies no plan logic.
type EventPlan string

const (
	PlanFreemium EventPlan = "freemium"
	PlanStarter  EventPlan = "starter"
	PlanPlus     EventPlan = "plus"
	PlanFull     EventPlan = "full"
)

// EventType classifies an event.
type EventType string

const (
	EventWedding     EventType = "wedding"
	EventBirthday    EventType = "birthday"
	EventBaptism     EventType = "baptism"
	EventGraduation  EventType = "graduation"
	EventAnniversary EventType = "anniversary"
	EventCorporate   EventType = "corporate"
	EventOther       EventType = "other"
)

// EventStatus is the lifecycle status of an event.
type EventStatus string

const (
	StatusActive  EventStatus = "active"
	StatusExpired EventStatus = "expired"
	StatusDraft   EventStatus = "draft"
)

// AgendaItemType classifies an agenda item.
type AgendaItemType string

const (
	ItemCeremony      AgendaItemType = "ceremony"
	ItemReception     AgendaItemType = "reception"
	ItemEntertainment AgendaItemType = "entertainment"
	ItemSpeech        AgendaItemType = "speech"
	ItemMeal          AgendaItemType = "meal"
	ItemBreak         AgendaItemType = "break"
	ItemPhotoSession  AgendaItemType = "photo_session"
	ItemOther         AgendaItemType = "other"
)

// AgendaItemTypes lists every valid agenda item type.
var AgendaItemTypes = []AgendaItemType{
	ItemCeremony, ItemReception, ItemEntertainment, ItemSpeech,
	ItemMeal, ItemBreak, ItemPhotoSession, ItemOther,
}

// ValidAgendaItemType reports whether t is one of the known item types.
func ValidAgendaItemType(t AgendaItemType) bool {
	for _, known := range AgendaItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DefaultAgendaTitle is assigned when an agenda is created without a title.
const DefaultAgendaTitle = "Program događaja"

// User represents a registered account
type User struct {
	ID        string    `gorm:"type:varchar(12);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Email     string    `gorm:"not null;uniqueIndex" json:"email"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Phone     *string   `json:"phone"`
	Events    []Event   `gorm:"foreignKey:OwnerID" json:"-"`
}

// Event represents a managed event owned by a user
type Event struct {
	ID             string      `gorm:"type:varchar(12);primaryKey" json:"id"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	OwnerID        string      `gorm:"type:varchar(12);not null;index" json:"owner_id"`
	Name           string      `gorm:"type:varchar(200);not null" json:"name"`
	Plan           EventPlan   `gorm:"type:varchar(16);not null" json:"plan"`
	Location       string      `gorm:"not null" json:"location"`
	RestaurantName *string     `json:"restaurant_name"`
	Date           string      `gorm:"type:varchar(10);not null" json:"date"`
	Time           string      `gorm:"type:varchar(5);not null" json:"time"`
	EventType      EventType   `gorm:"type:varchar(16);not null" json:"event_type"`
	ExpectedGuests *int        `json:"expected_guests"`
	Description    *string     `gorm:"type:text" json:"description"`
	QRCodeURL      *string     `json:"qr_code_url"`
	LandingPageURL *string     `json:"landing_page_url"`
	PhotoCount     int         `gorm:"not null;default:0" json:"photo_count"`
	GuestCount     int         `gorm:"not null;default:0" json:"guest_count"`
	Status         EventStatus `gorm:"type:varchar(10);not null;default:draft" json:"status"`
	ExpiresAt      *time.Time  `json:"expires_at"`
	Owner          User        `gorm:"foreignKey:OwnerID" json:"-"`
	Agenda         *Agenda     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"agenda,omitempty"`
}

// Agenda is the programme of an event. At most one per event, enforced
// by the unique index on event_id.
type Agenda struct {
	ID          string       `gorm:"type:varchar(12);primaryKey" json:"id"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
	EventID     string       `gorm:"type:varchar(12);not null;uniqueIndex" json:"event_id"`
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description *string      `gorm:"type:text" json:"description"`
	Items       []AgendaItem `gorm:"foreignKey:AgendaID;constraint:OnDelete:CASCADE" json:"items"`
}

// AgendaItem is a single entry in an agenda. Items are presented ordered
// by display_order with start_time as tie-break; the composite index
// backs that read. Start and end times are zero-padded "HH:MM" strings,
// so lexicographic order is chronological.
type AgendaItem struct {
	ID           string         `gorm:"type:varchar(12);primaryKey" json:"id"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	AgendaID     string         `gorm:"type:varchar(12);not null;index:idx_agenda_items_ordering,priority:1" json:"agenda_id"`
	Title        string         `gorm:"type:varchar(200);not null" json:"title"`
	Description  *string        `gorm:"type:text" json:"description"`
	StartTime    string         `gorm:"type:varchar(5);not null;index:idx_agenda_items_ordering,priority:3" json:"start_time"`
	EndTime      *string        `gorm:"type:varchar(5)" json:"end_time"`
	Location     *string        `gorm:"type:varchar(200)" json:"location"`
	Type         AgendaItemType `gorm:"type:varchar(16);not null" json:"type"`
	DisplayOrder int            `gorm:"not null;default:0;index:idx_agenda_items_ordering,priority:2" json:"display_order"`
	IsImportant  bool           `gorm:"not null;default:false" json:"is_important"`
}

// SetupModels configures GORM models and runs migrations
func SetupModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Event{},
		&Agenda{},
		&AgendaItem{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to run auto migrations")
	}

	return nil
}
