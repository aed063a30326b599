package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-booster/internal/shared/server/middleware"
	"resume-booster/internal/shared/server/respond"
	"resume-booster/internal/shared/telemetry"
	"resume-booster/internal/shared/validation"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the /auth routes. authn verifies the bearer token;
// requireUser additionally resolves it to a registered user.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authn, requireUser gin.HandlerFunc) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/verify-token", authn, h.verifyToken)
	rg.GET("/auth/me", authn, requireUser, h.me)
}

type registerRequest struct {
	Email      string  `json:"email" binding:"required,email,max=320"`
	Name       string  `json:"name" binding:"required,max=200"`
	PhotoURL   *string `json:"photoUrl" binding:"omitempty,url"`
	FirebaseID string  `json:"firebaseId" binding:"required,max=128"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", validation.ToDetails(err))
		return
	}

	user, created, err := h.Svc.Register(c.Request.Context(), NewUser{
		Email:          req.Email,
		Name:           req.Name,
		PhotoURL:       req.PhotoURL,
		ExternalAuthID: req.FirebaseID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
		case errors.Is(err, ErrConflict):
			respond.Error(c, http.StatusConflict, respond.CodeConflict, "user already registered", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to register user", nil)
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		telemetry.Info("user.registered", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"user_id":    user.ID,
		})
	}
	respond.JSON(c, status, user)
}

func (h *Handler) verifyToken(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "missing or invalid token", nil)
		return
	}
	respond.OK(c, gin.H{"valid": true, "identity": identity})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load user", nil)
		return
	}
	respond.OK(c, user)
}
