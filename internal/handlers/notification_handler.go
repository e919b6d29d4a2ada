package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// NotificationHandler serves the client feed, the barber feed and the admin
// view over all barber notifications.
type NotificationHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewNotificationHandler(db *gorm.DB, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{db: db, log: log}
}

type pageParams struct {
	Page       int
	Limit      int
	Offset     int
	UnreadOnly bool
}

func readPage(c *gin.Context) pageParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	return pageParams{
		Page:       page,
		Limit:      limit,
		Offset:     (page - 1) * limit,
		UnreadOnly: c.Query("unread") == "true",
	}
}

// ======================================================
// CLIENT
// ======================================================

func (h *NotificationHandler) ListMine(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	p := readPage(c)

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.Notification{}).
		Where("user_id = ?", identity.ID)
	if p.UnreadOnly {
		q = q.Where("is_read = ?", false)
	}

	items := []models.Notification{}
	h.page(c, q, p, &items)
}

func (h *NotificationHandler) MarkMineRead(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid notification id.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, identity.ID).
		Update("is_read", true)

	h.markResult(c, res)
}

// ======================================================
// BARBER
// ======================================================

func (h *NotificationHandler) ListBarber(c *gin.Context) {
	barberID, ok := h.barberID(c)
	if !ok {
		return
	}
	p := readPage(c)

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.BarberNotification{}).
		Where("barber_id = ?", barberID)
	if p.UnreadOnly {
		q = q.Where("is_read = ?", false)
	}

	items := []models.BarberNotification{}
	h.page(c, q, p, &items)
}

func (h *NotificationHandler) MarkBarberRead(c *gin.Context) {
	barberID, ok := h.barberID(c)
	if !ok {
		return
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid notification id.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.BarberNotification{}).
		Where("id = ? AND barber_id = ?", id, barberID).
		Update("is_read", true)

	h.markResult(c, res)
}

// ======================================================
// ADMIN
// ======================================================

// ListAdmin exposes every barber notification; admins have no rows of their own.
func (h *NotificationHandler) ListAdmin(c *gin.Context) {
	p := readPage(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.BarberNotification{})
	if raw := c.Query("barberId"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			httperr.BadRequest(c, "invalid_params", "barberId must be a positive integer.")
			return
		}
		q = q.Where("barber_id = ?", id)
	}
	if p.UnreadOnly {
		q = q.Where("is_read = ?", false)
	}

	items := []models.BarberNotification{}
	h.page(c, q, p, &items)
}

// ======================================================
// HELPERS
// ======================================================

func (h *NotificationHandler) page(c *gin.Context, q *gorm.DB, p pageParams, dest any) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.log, httperr.ErrInternal("notification_count_failed", err))
		return
	}

	if err := q.
		Order("created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(dest).Error; err != nil {
		httperr.Respond(c, h.log, httperr.ErrInternal("notification_list_failed", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  p.Page,
		"limit": p.Limit,
		"total": total,
		"data":  dest,
	})
}

func (h *NotificationHandler) markResult(c *gin.Context, res *gorm.DB) {
	if res.Error != nil {
		httperr.Respond(c, h.log, httperr.ErrInternal("notification_update_failed", res.Error))
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "Notification not found.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) barberID(c *gin.Context) (uint, bool) {
	identity, _ := middleware.CurrentIdentity(c)

	var barber models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Select("id").
		Where("user_id = ?", identity.ID).
		First(&barber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Barber profile not found.")
			return 0, false
		}
		httperr.Respond(c, h.log, httperr.ErrInternal("barber_lookup_failed", err))
		return 0, false
	}
	return barber.ID, true
}
