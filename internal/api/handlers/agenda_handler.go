package handlers

import (
	"net/http"

	"example.com/eventhub/services/events/internal/models"
	"example.com/eventhub/services/events/internal/repository"
	"example.com/eventhub/services/events/internal/service"

	"github.com/gin-gonic/gin"
)

// AgendaHandler handles agenda and agenda item HTTP requests
type AgendaHandler struct {
	svc service.Service
}

// NewAgendaHandler creates a new agenda handler
func NewAgendaHandler(svc service.Service) *AgendaHandler {
	return &AgendaHandler{svc: svc}
}

// CreateAgendaRequest is the body of POST /events/:event_id/agenda
type CreateAgendaRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description"`
}

// UpdateAgendaRequest is the body of PUT /events/:event_id/agenda
type UpdateAgendaRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description"`
}

// CreateAgendaItemRequest is the body of POST /events/:event_id/agenda/items
type CreateAgendaItemRequest struct {
	Title        string  `json:"title" binding:"required,max=200"`
	Description  *string `json:"description"`
	StartTime    string  `json:"start_time" binding:"required,hhmm"`
	EndTime      *string `json:"end_time" binding:"omitempty,hhmm"`
	Location     *string `json:"location" binding:"omitempty,max=200"`
	Type         string  `json:"type" binding:"required"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,gte=0"`
	IsImportant  *bool   `json:"is_important"`
}

// UpdateAgendaItemRequest is the body of PUT /events/:event_id/agenda/items/:item_id
type UpdateAgendaItemRequest struct {
	Title        *string `json:"title" binding:"omitempty,max=200"`
	Description  *string `json:"description"`
	StartTime    *string `json:"start_time" binding:"omitempty,hhmm"`
	EndTime      *string `json:"end_time" binding:"omitempty,hhmm"`
	Location     *string `json:"location" binding:"omitempty,max=200"`
	Type         *string `json:"type"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,gte=0"`
	IsImportant  *bool   `json:"is_important"`
}

// ReorderItem is one entry of a reorder request
type ReorderItem struct {
	ItemID       string `json:"item_id" binding:"required"`
	DisplayOrder int    `json:"display_order" binding:"gte=0"`
}

// ReorderRequest is the body of PUT /events/:event_id/agenda/reorder
type ReorderRequest struct {
	Items []ReorderItem `json:"items" binding:"required,min=1,dive"`
}

// GetAgenda returns the agenda with items sorted by display order and
// start time.
func (h *AgendaHandler) GetAgenda(c *gin.Context) {
	agenda, err := h.svc.GetAgenda(c.Request.Context(), requester(c), c.Param("event_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"agenda": agenda})
}

// CreateAgenda creates the agenda for an event
func (h *AgendaHandler) CreateAgenda(c *gin.Context) {
	var req CreateAgendaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agenda, err := h.svc.CreateAgenda(c.Request.Context(), requester(c), c.Param("event_id"), service.CreateAgendaInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"agenda": agenda})
}

// UpdateAgenda partially updates the agenda
func (h *AgendaHandler) UpdateAgenda(c *gin.Context) {
	var req UpdateAgendaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agenda, err := h.svc.UpdateAgenda(c.Request.Context(), requester(c), c.Param("event_id"), service.UpdateAgendaInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"agenda": agenda})
}

// DeleteAgenda removes the agenda and all its items
func (h *AgendaHandler) DeleteAgenda(c *gin.Context) {
	err := h.svc.DeleteAgenda(c.Request.Context(), requester(c), c.Param("event_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateAgendaItem adds an item to the agenda
func (h *AgendaHandler) CreateAgendaItem(c *gin.Context) {
	var req CreateAgendaItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.svc.AddAgendaItem(c.Request.Context(), requester(c), c.Param("event_id"), service.CreateAgendaItemInput{
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Location:     req.Location,
		Type:         models.AgendaItemType(req.Type),
		DisplayOrder: req.DisplayOrder,
		IsImportant:  req.IsImportant,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"agenda_item": item})
}

// UpdateAgendaItem partially updates one agenda item
func (h *AgendaHandler) UpdateAgendaItem(c *gin.Context) {
	var req UpdateAgendaItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var itemType *models.AgendaItemType
	if req.Type != nil {
		t := models.AgendaItemType(*req.Type)
		itemType = &t
	}

	item, err := h.svc.UpdateAgendaItem(c.Request.Context(), requester(c), c.Param("event_id"), c.Param("item_id"), service.UpdateAgendaItemInput{
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Location:     req.Location,
		Type:         itemType,
		DisplayOrder: req.DisplayOrder,
		IsImportant:  req.IsImportant,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"agenda_item": item})
}

// DeleteAgendaItem removes one agenda item
func (h *AgendaHandler) DeleteAgendaItem(c *gin.Context) {
	err := h.svc.DeleteAgendaItem(c.Request.Context(), requester(c), c.Param("event_id"), c.Param("item_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ReorderAgendaItems atomically applies new display_order values
func (h *AgendaHandler) ReorderAgendaItems(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orders := make([]repository.ItemOrder, 0, len(req.Items))
	for _, item := range req.Items {
		orders = append(orders, repository.ItemOrder{
			ItemID:       item.ItemID,
			DisplayOrder: item.DisplayOrder,
		})
	}

	err := h.svc.ReorderAgendaItems(c.Request.Context(), requester(c), c.Param("event_id"), orders)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Agenda items reordered successfully"})
}

// RegisterRoutes registers the handler's routes
func (h *AgendaHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/events/:event_id/agenda", h.GetAgenda)
	group.POST("/events/:event_id/agenda", h.CreateAgenda)
	group.PUT("/events/:event_id/agenda", h.UpdateAgenda)
	group.DELETE("/events/:event_id/agenda", h.DeleteAgenda)
	group.POST("/events/:event_id/agenda/items", h.CreateAgendaItem)
	group.PUT("/events/:event_id/agenda/items/:item_id", h.UpdateAgendaItem)
	group.DELETE("/events/:event_id/agenda/items/:item_id", h.DeleteAgendaItem)
	group.PUT("/events/:event_id/agenda/reorder", h.ReorderAgendaItems)
}
