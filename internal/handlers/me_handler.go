package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type MeHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMeHandler(db *gorm.DB, log *zap.Logger) *MeHandler {
	return &MeHandler{db: db, log: log}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Authentication required.")
		return
	}

	ctx := c.Request.Context()

	var u models.User
	if err := h.db.WithContext(ctx).First(&u, identity.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Respond(c, h.log, httperr.ErrInternal("user_lookup_failed", err))
		return
	}

	resp := gin.H{"user": userPayload(&u)}

	if identity.Role == user.RoleBarber {
		var barber models.Barber
		err := h.db.WithContext(ctx).Where("user_id = ?", u.ID).First(&barber).Error
		switch {
		case err == nil:
			resp["barber"] = gin.H{
				"id":            barber.ID,
				"working_hours": barber.WorkingHours,
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			httperr.Respond(c, h.log, httperr.ErrInternal("barber_lookup_failed", err))
			return
		}
	}

	c.JSON(http.StatusOK, resp)
}
