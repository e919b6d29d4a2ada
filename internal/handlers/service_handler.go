package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ServiceHandler manages the service catalog.
type ServiceHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewServiceHandler(db *gorm.DB, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{db: db, log: log}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=255"`
	Duration    int             `json:"duration" binding:"required,min=1"`
	Price       decimal.Decimal `json:"price"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Duration    *int             `json:"duration,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("is_active = ?", true)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Respond(c, h.log, httperr.ErrInternal("failed_to_list_services", err))
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if !validPrice(req.Price) {
		httperr.BadRequest(c, "invalid_price", "Price must be zero or positive with at most two decimals.")
		return
	}

	service := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Duration:    req.Duration,
		Price:       req.Price,
		IsActive:    true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Respond(c, h.log, httperr.ErrInternal("failed_to_create_service", err))
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	ctx := c.Request.Context()

	var service models.Service
	if err := h.db.WithContext(ctx).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Respond(c, h.log, httperr.ErrInternal("failed_to_get_service", err))
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = strings.TrimSpace(*req.Description)
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duration must be positive.")
			return
		}
		service.Duration = *req.Duration
	}
	if req.Price != nil {
		if !validPrice(*req.Price) {
			httperr.BadRequest(c, "invalid_price", "Price must be zero or positive with at most two decimals.")
			return
		}
		service.Price = *req.Price
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if service.Name == "" {
		httperr.BadRequest(c, "invalid_name", "Name is required.")
		return
	}

	if err := h.db.WithContext(ctx).Save(&service).Error; err != nil {
		httperr.Respond(c, h.log, httperr.ErrInternal("failed_to_update_service", err))
		return
	}

	c.JSON(http.StatusOK, service)
}

// validPrice fits numeric(10,2).
func validPrice(p decimal.Decimal) bool {
	if p.IsNegative() {
		return false
	}
	if !p.Equal(p.Round(2)) {
		return false
	}
	return p.LessThan(decimal.New(1, 8))
}
