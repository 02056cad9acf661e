package delivery

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"photoblog-backend/internal/subscription/domain"
	"photoblog-backend/internal/subscription/usecase"

	"github.com/gin-gonic/gin"
)

// SubscriptionHandler handles subscriber-related HTTP requests
type SubscriptionHandler struct {
	subscriptionUsecase usecase.SubscriptionUsecase
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionUsecase usecase.SubscriptionUsecase) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUsecase: subscriptionUsecase,
	}
}

// SubscribeRequest represents the request body for subscribing
type SubscribeRequest struct {
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Subscribe adds an email to the subscriber list
// POST /api/subscribe
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.subscriptionUsecase.Subscribe(req.Email, req.FirstName, req.LastName)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Unsubscribe resolves an unsubscribe link to a terminal confirmation page.
// It accepts either a token (from email footers) or a raw email address and
// is idempotent: repeating the request yields the same terminal state.
// GET /unsubscribe?token=... | GET /unsubscribe?email=...
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	token := c.Query("token")
	email := c.Query("email")

	if token == "" && email == "" {
		h.renderUnsubscribePage(c, http.StatusBadRequest, unsubscribePageData{
			Title:   "Error",
			Message: "Invalid unsubscribe link. Please contact support.",
		})
		return
	}

	var result usecase.Result
	if token != "" {
		result = h.subscriptionUsecase.UnsubscribeByToken(token)
	} else {
		result = h.subscriptionUsecase.UnsubscribeByEmail(email)
	}

	switch {
	case result.Success:
		h.renderUnsubscribePage(c, http.StatusOK, unsubscribePageData{
			Title:   "Unsubscribed",
			Message: result.Message,
			Success: true,
		})
	case result.Message == usecase.MsgNotFound || result.Message == usecase.MsgInvalidEmail:
		h.renderUnsubscribePage(c, http.StatusNotFound, unsubscribePageData{
			Title:   "Error",
			Message: "Invalid unsubscribe link or subscriber not found.",
		})
	default:
		h.renderUnsubscribePage(c, http.StatusInternalServerError, unsubscribePageData{
			Title:   "Error",
			Message: result.Message,
		})
	}
}

// ListSubscribers returns all subscribers for the admin table
// GET /api/admin/subscribers?active=true
func (h *SubscriptionHandler) ListSubscribers(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	subscribers, err := h.subscriptionUsecase.ListSubscribers(activeOnly)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "subscriber list is temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscribers": subscribers,
		"total":       len(subscribers),
	})
}

// GetStats returns subscriber counts
// GET /api/admin/subscribers/stats
func (h *SubscriptionHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.subscriptionUsecase.Stats())
}

// ExportCSV downloads the active subscribers as a CSV attachment
// GET /api/admin/subscribers/export
func (h *SubscriptionHandler) ExportCSV(c *gin.Context) {
	csv, err := h.subscriptionUsecase.ExportCSV()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export is temporarily unavailable"})
		return
	}

	filename := fmt.Sprintf("subscribers-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// RemoveSubscriber hard-deletes a subscriber record
// DELETE /api/admin/subscribers/:id
func (h *SubscriptionHandler) RemoveSubscriber(c *gin.Context) {
	id := c.Param("id")

	if err := h.subscriptionUsecase.RemoveSubscriber(id); err != nil {
		if errors.Is(err, domain.ErrSubscriberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscriber not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "subscriber store is temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscriber removed"})
}
