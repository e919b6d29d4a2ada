package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type BarberHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewBarberHandler(db *gorm.DB, audit *audit.Dispatcher, log *zap.Logger) *BarberHandler {
	return &BarberHandler{db: db, audit: audit, log: log}
}

// --------- Requests ---------

// CreateBarberRequest either promotes an existing user (UserID) or creates one.
type CreateBarberRequest struct {
	UserID uint `json:"user_id"`

	Name     string `json:"name" binding:"max=100"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone" binding:"max=20"`

	WorkingHours *string `json:"working_hours"`
}

type WorkingHoursRequest struct {
	// "HH:mm-HH:mm"; null resets to the default window.
	WorkingHours *string `json:"working_hours"`
}

type barberView struct {
	ID           uint    `json:"id"`
	UserID       uint    `json:"user_id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	WorkingHours *string `json:"working_hours"`
}

func toBarberView(b *models.Barber) barberView {
	return barberView{
		ID:           b.ID,
		UserID:       b.UserID,
		Name:         b.User.Name,
		Email:        b.User.Email,
		Phone:        b.User.Phone,
		WorkingHours: b.WorkingHours,
	}
}

// --------- Handlers ---------

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Preload("User").
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		httperr.Respond(c, h.log, httperr.ErrInternal("failed_to_list_barbers", err))
		return
	}

	out := make([]barberView, 0, len(barbers))
	for i := range barbers {
		out = append(out, toBarberView(&barbers[i]))
	}

	httpresp.List(c, out)
}

func (h *BarberHandler) Create(c *gin.Context) {
	actor, _ := middleware.CurrentIdentity(c)

	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	hours, ok := normalizeWorkingHours(req.WorkingHours)
	if !ok {
		httperr.BadRequest(c, "invalid_working_hours", "Working hours must look like 09:00-17:00.")
		return
	}

	var barber models.Barber

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var u models.User

		if req.UserID != 0 {
			if err := tx.First(&u, req.UserID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return httperr.ErrNotFound("user_not_found", "User not found.")
				}
				return err
			}
		} else {
			email := validators.NormalizeEmail(req.Email)
			if strings.TrimSpace(req.Name) == "" || !validators.IsEmailSyntaxValid(email) || len(req.Password) < 6 {
				return httperr.ErrValidation("invalid_request", "name, a valid email and a password of at least 6 characters are required.")
			}

			hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			u = models.User{
				Name:         strings.TrimSpace(req.Name),
				Email:        email,
				PasswordHash: string(hashed),
				Phone:        strings.TrimSpace(req.Phone),
				Role:         string(user.RoleBarber),
			}
			if err := tx.Create(&u).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return httperr.ErrConflict("email_already_registered", "This e-mail is already registered.", err)
				}
				return err
			}
		}

		if u.Role != string(user.RoleBarber) {
			if err := tx.Model(&u).Update("role", string(user.RoleBarber)).Error; err != nil {
				return err
			}
		}

		barber = models.Barber{UserID: u.ID, WorkingHours: hours}
		if err := tx.Omit("User").Create(&barber).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return httperr.ErrConflict("barber_already_exists", "This user is already a barber.", err)
			}
			return err
		}
		barber.User = u
		return nil
	})
	if err != nil {
		if httperr.KindOf(err) == httperr.KindInternal {
			err = httperr.ErrInternal("failed_to_create_barber", err)
		}
		httperr.Respond(c, h.log, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "barber_created",
		Entity:   "barber",
		EntityID: &barber.ID,
		Metadata: map[string]any{"user_id": barber.UserID},
	})

	c.JSON(http.StatusCreated, toBarberView(&barber))
}

func (h *BarberHandler) GetWorkingHours(c *gin.Context) {
	barber, ok := h.currentBarber(c)
	if !ok {
		return
	}

	window, _ := domain.ParseWorkingHours(barber.WorkingHours)

	c.JSON(http.StatusOK, gin.H{
		"working_hours": barber.WorkingHours,
		"effective":     window.String(),
	})
}

func (h *BarberHandler) UpdateWorkingHours(c *gin.Context) {
	barber, ok := h.currentBarber(c)
	if !ok {
		return
	}

	var req WorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	hours, ok := normalizeWorkingHours(req.WorkingHours)
	if !ok {
		httperr.BadRequest(c, "invalid_working_hours", "Working hours must look like 09:00-17:00.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(barber).
		Update("working_hours", hours).Error; err != nil {
		httperr.Respond(c, h.log, httperr.ErrInternal("failed_to_save_working_hours", err))
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &barber.UserID,
		Action:   "working_hours_updated",
		Entity:   "barber",
		EntityID: &barber.ID,
		Metadata: map[string]any{"working_hours": hours},
	})

	window, _ := domain.ParseWorkingHours(hours)

	c.JSON(http.StatusOK, gin.H{
		"working_hours": hours,
		"effective":     window.String(),
	})
}

// currentBarber writes the error response itself when it returns false.
func (h *BarberHandler) currentBarber(c *gin.Context) (*models.Barber, bool) {
	identity, _ := middleware.CurrentIdentity(c)

	var barber models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", identity.ID).
		First(&barber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Barber profile not found.")
			return nil, false
		}
		httperr.Respond(c, h.log, httperr.ErrInternal("barber_lookup_failed", err))
		return nil, false
	}
	return &barber, true
}

// normalizeWorkingHours accepts nil (default window) or a valid "HH:mm-HH:mm".
func normalizeWorkingHours(raw *string) (*string, bool) {
	if raw == nil {
		return nil, true
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return nil, true
	}
	window, ok := domain.ParseWorkingHours(&v)
	if !ok {
		return nil, false
	}
	s := window.String()
	return &s, true
}
