package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAuditLogsHandler(db *gorm.DB, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	p := readPage(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if raw := c.Query("userId"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			httperr.BadRequest(c, "invalid_params", "userId must be a positive integer.")
			return
		}
		q = q.Where("user_id = ?", id)
	}

	if fromStr != "" {
		from, ok := timezone.ParseDate(fromStr)
		if !ok {
			httperr.BadRequest(c, "invalid_date", "from must use the YYYY-MM-DD format.")
			return
		}
		q = q.Where("created_at >= ?", from)
	}

	if toStr != "" {
		to, ok := timezone.ParseDate(toStr)
		if !ok {
			httperr.BadRequest(c, "invalid_date", "to must use the YYYY-MM-DD format.")
			return
		}
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.log, httperr.ErrInternal("audit_count_failed", err))
		return
	}

	// --------------------------------------------------
	// Listing
	// --------------------------------------------------

	logs := []models.AuditLog{}
	if err := q.
		Order("created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, h.log, httperr.ErrInternal("audit_list_failed", err))
		return
	}

	c.JSON(200, gin.H{
		"page":  p.Page,
		"limit": p.Limit,
		"total": total,
		"logs":  logs,
	})
}
