package handlers

import (
	"net/http"
	"strconv"

	"example.com/eventhub/services/events/internal/models"
	"example.com/eventhub/services/events/internal/service"

	"github.com/gin-gonic/gin"
)

// EventHandler handles event HTTP requests
type EventHandler struct {
	svc service.Service
}

// NewEventHandler creates a new event handler
func NewEventHandler(svc service.Service) *EventHandler {
	return &EventHandler{svc: svc}
}

// CreateEventRequest is the body of POST /events
type CreateEventRequest struct {
	Name           string  `json:"name" binding:"required,max=200"`
	Plan           string  `json:"plan" binding:"required,oneof=freemium starter plus full"`
	Location       string  `json:"location" binding:"required"`
	RestaurantName *string `json:"restaurant_name"`
	Date           string  `json:"date" binding:"required,dateonly"`
	Time           string  `json:"time" binding:"required,hhmm"`
	EventType      string  `json:"event_type" binding:"required,oneof=wedding birthday baptism graduation anniversary corporate other"`
	ExpectedGuests *int    `json:"expected_guests" binding:"omitempty,gte=1"`
	Description    *string `json:"description" binding:"omitempty,max=1000"`
}

// UpdateEventRequest is the body of PUT /events/:event_id
type UpdateEventRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=200"`
	Location       *string `json:"location"`
	RestaurantName *string `json:"restaurant_name"`
	Date           *string `json:"date" binding:"omitempty,dateonly"`
	Time           *string `json:"time" binding:"omitempty,hhmm"`
	EventType      *string `json:"event_type" binding:"omitempty,oneof=wedding birthday baptism graduation anniversary corporate other"`
	ExpectedGuests *int    `json:"expected_guests" binding:"omitempty,gte=1"`
	Description    *string `json:"description" binding:"omitempty,max=1000"`
}

// ListEvents returns a page of the requester's events
func (h *EventHandler) ListEvents(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be an integer"})
		return
	}

	page, err := h.svc.ListEvents(c.Request.Context(), requester(c), service.ListEventsInput{
		Status: models.EventStatus(c.Query("status")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":   page.Events,
		"total":    page.Total,
		"has_more": page.HasMore,
	})
}

// CreateEvent creates a new event owned by the requester
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.svc.CreateEvent(c.Request.Context(), requester(c), service.CreateEventInput{
		Name:           req.Name,
		Plan:           models.EventPlan(req.Plan),
		Location:       req.Location,
		RestaurantName: req.RestaurantName,
		Date:           req.Date,
		Time:           req.Time,
		EventType:      models.EventType(req.EventType),
		ExpectedGuests: req.ExpectedGuests,
		Description:    req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// GetEvent returns one event with its agenda attached when present
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.svc.GetEvent(c.Request.Context(), requester(c), c.Param("event_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// UpdateEvent partially updates one event
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var eventType *models.EventType
	if req.EventType != nil {
		t := models.EventType(*req.EventType)
		eventType = &t
	}

	event, err := h.svc.UpdateEvent(c.Request.Context(), requester(c), c.Param("event_id"), service.UpdateEventInput{
		Name:           req.Name,
		Location:       req.Location,
		RestaurantName: req.RestaurantName,
		Date:           req.Date,
		Time:           req.Time,
		EventType:      eventType,
		ExpectedGuests: req.ExpectedGuests,
		Description:    req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent removes one event and, via cascade, its agenda and items
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	eventID := c.Param("event_id")
	if err := h.svc.DeleteEvent(c.Request.Context(), requester(c), eventID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Event '" + eventID + "' successfully deleted"})
}

// RegisterRoutes registers the handler's routes
func (h *EventHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/events", h.ListEvents)
	group.POST("/events", h.CreateEvent)
	group.GET("/events/:event_id", h.GetEvent)
	group.PUT("/events/:event_id", h.UpdateEvent)
	group.DELETE("/events/:event_id", h.DeleteEvent)
}
