package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hosting-storefront/internal/domain"
	"hosting-storefront/internal/service"
)

const (
	actionRegister = "register"
	actionLogin    = "login"

	msgRegistered = "Регистрация успешна"
	msgLoggedIn   = "Вход выполнен"
)

var (
	errUnknownAction    = domain.NewError(domain.KindBadRequest, "Неизвестное действие")
	errInvalidJSON      = domain.NewError(domain.KindBadRequest, "Некорректный JSON")
	errMethodNotAllowed = domain.NewError(domain.KindMethodNotAllowed, "Method not allowed")
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	plans      service.PlanService
	logger     *logrus.Logger
	corsMaxAge int
}

func NewHandler(users service.UserService, plans service.PlanService, logger *logrus.Logger, corsMaxAge int) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		users:      users,
		plans:      plans,
		logger:     logger,
		corsMaxAge: corsMaxAge,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestID(h.logger), requestLogger(), allowOrigin())

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		h.fail(c, errMethodNotAllowed)
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	api := router.Group("/api")
	{
		api.POST("/auth", h.auth)
		api.OPTIONS("/auth", preflight("POST, OPTIONS", "Content-Type, X-User-Id", h.corsMaxAge))

		api.GET("/plans", h.listPlans)
		api.OPTIONS("/plans", preflight("GET, OPTIONS", "Content-Type", h.corsMaxAge))

		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
		})
	}
}

type authRequest struct {
	Action   string `json:"action"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (h *Handler) auth(c *gin.Context) {
	var req authRequest
	raw, err := c.GetRawData()
	if err != nil {
		h.fail(c, errInvalidJSON)
		return
	}
	// an empty body is the same as {}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &req); err != nil {
			h.fail(c, errInvalidJSON)
			return
		}
	}

	if req.Email == "" || req.Password == "" {
		h.fail(c, service.ErrMissingCredentials)
		return
	}

	ctx := c.Request.Context()
	switch req.Action {
	case actionRegister:
		user, err := h.users.Register(ctx, req.Email, req.Password, req.FullName)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"user":    userToResponse(*user),
			"message": msgRegistered,
		})
	case actionLogin:
		user, err := h.users.Authenticate(ctx, req.Email, req.Password)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    userToResponse(*user),
			"message": msgLoggedIn,
		})
	default:
		h.fail(c, errUnknownAction)
	}
}

func (h *Handler) listPlans(c *gin.Context) {
	plans, err := h.plans.ListActive(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]PlanResponse, len(plans))
	for i := range plans {
		resp[i] = planToResponse(plans[i])
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "plans": resp})
}

// fail writes the error envelope. Errors that are not caller-facing are
// logged and reported as a generic 500.
func (h *Handler) fail(c *gin.Context, err error) {
	var appErr *domain.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Kind.HTTPStatus(), gin.H{"error": appErr.Message})
		return
	}

	loggerFrom(c).WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
