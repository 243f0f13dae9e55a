package handlers

import (
	"net/http"

	"TaskTracker/internal/auth"
	"TaskTracker/internal/dto"
	"TaskTracker/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles the JSON login, register and logout endpoints.
type AuthHandler struct {
	users        *service.UserService
	cookieMaxAge int
	cookieSecure bool
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(users *service.UserService, cookieMaxAge int, cookieSecure bool) *AuthHandler {
	return &AuthHandler{users: users, cookieMaxAge: cookieMaxAge, cookieSecure: cookieSecure}
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	user, sessionID, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	auth.SetSessionCookie(c, sessionID, h.cookieMaxAge, h.cookieSecure)
	c.JSON(http.StatusOK, userToResponse(user))
}

// Register godoc
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Account"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userToResponse(user))
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.users.Logout(c.Request.Context(), auth.SessionID(c)); err != nil {
		_ = c.Error(err)
	}
	auth.ClearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	c.JSON(http.StatusOK, userToResponse(user))
}
