package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/identity-service/internal/api/metrics"
	"github.com/teamhub/identity-service/internal/core/domain"
	"github.com/teamhub/identity-service/internal/core/ports"
)

// LoginThrottle abstracts the sign-in rate limiter (Redis). A nil throttle
// disables limiting; a backend failure fails open so Redis outages cannot
// lock everyone out.
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	Reset(ctx context.Context, username string) error
}

type AuthHandler struct {
	auth         ports.AuthService
	registration ports.RegistrationService
	provisioning ports.ProvisioningService
	users        ports.UserRepository
	throttle     LoginThrottle
	audit        ports.AuditSink
}

func NewAuthHandler(
	auth ports.AuthService,
	registration ports.RegistrationService,
	provisioning ports.ProvisioningService,
	users ports.UserRepository,
	throttle LoginThrottle,
	audit ports.AuditSink,
) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		registration: registration,
		provisioning: provisioning,
		users:        users,
		throttle:     throttle,
		audit:        audit,
	}
}

type signInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signUpRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	// Roles is optional; absent and empty are different things (absent
	// gets the default USER role).
	Roles []string `json:"roles"`
}

type signInResponse struct {
	Token    string   `json:"token"`
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// SignIn authenticates a user and returns a bearer token.
//
// @Summary      Sign in with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	if h.throttle != nil {
		allowed, err := h.throttle.Allow(ctx, req.Username)
		if err == nil && !allowed {
			metrics.LoginThrottledTotal.Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
		}
	}

	token, principal, err := h.auth.SignIn(ctx, req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		h.record(domain.AuthEvent{Username: req.Username, Kind: domain.AuditLoginFailure})
		return err
	}

	if h.throttle != nil {
		_ = h.throttle.Reset(ctx, req.Username)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()
	h.record(domain.AuthEvent{Username: principal.Username, Kind: domain.AuditLoginSuccess})

	return c.JSON(http.StatusOK, signInResponse{
		Token:    token,
		ID:       principal.ID,
		Username: principal.Username,
		Email:    principal.Email,
		Roles:    principal.Roles,
	})
}

// SignUp registers a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.registration.SignUp(c.Request().Context(), ports.RegistrationInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		RoleLabels: req.Roles,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	h.record(domain.AuthEvent{Username: user.Username, Kind: domain.AuditSignup})

	return c.JSON(http.StatusOK, messageResponse{Message: "User registered successfully"})
}

// AddRoles idempotently creates the baseline role records.
//
// @Summary      Ensure baseline roles exist
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      500  {object}  map[string]string
// @Router       /auth/addroles [post]
func (h *AuthHandler) AddRoles(c echo.Context) error {
	if err := h.provisioning.EnsureBaselineRoles(c.Request().Context()); err != nil {
		metrics.ProvisioningTotal.WithLabelValues("ensure_roles", "failure").Inc()
		return err
	}
	metrics.ProvisioningTotal.WithLabelValues("ensure_roles", "success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Roles added to DB"})
}

// AddAdmin elevates a user to administrator.
//
// @Summary      Grant the ADMIN role to a user
// @Tags         auth
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  messageResponse
// @Failure      404     {object}  map[string]string
// @Router       /auth/addadmin/{userId} [post]
func (h *AuthHandler) AddAdmin(c echo.Context) error {
	userID := c.Param("userId")

	if err := h.provisioning.PromoteToAdmin(c.Request().Context(), userID); err != nil {
		metrics.ProvisioningTotal.WithLabelValues("promote_admin", "failure").Inc()
		return err
	}

	metrics.ProvisioningTotal.WithLabelValues("promote_admin", "success").Inc()
	h.record(domain.AuthEvent{Username: userID, Kind: domain.AuditPromotion, Detail: "granted ADMIN"})

	return c.JSON(http.StatusOK, messageResponse{Message: "Admin role added to user"})
}

// Me returns the principal recovered from the caller's bearer token.
//
// @Summary      Current authenticated identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Principal
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, principal)
}

// Users lists all registered users. Admin only; password hashes are never
// serialized.
//
// @Summary      List users
// @Tags         auth
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /auth/users [get]
// @Security     BearerAuth
func (h *AuthHandler) Users(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// record enqueues an audit event when a sink is configured.
func (h *AuthHandler) record(event domain.AuthEvent) {
	if h.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	h.audit.Enqueue(event)
}
