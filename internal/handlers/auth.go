package handlers

import (
	"net/http"
	"time"

	"trading_dashboard/internal/models"
	"trading_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgRunning       = "User Authentication API is running!"
	msgRegistered    = "User registered successfully"
	msgResetComplete = "Password reset successful"
)

type registerRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	FullName string `json:"full_name" example:"Alice Doe"`
	Password string `json:"password" example:"s3cret!"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type loginResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresAt   string            `json:"expires_at"`
	User        models.PublicUser `json:"user"`
}

type forgotPasswordResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"reset_token,omitempty"`
}

// @Summary      Greeting
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": msgRunning})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "New account"
// @Success      200   {object}  map[string]interface{}  "success, message, user"
// @Failure      400   {object}  map[string]string       "error, field"
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /register [post]
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	user, err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, "auth_register_failed", err, "username", req.Username)
		return
	}

	h.log.Infow("auth_registered", "user_id", user.ID, "username", user.Username)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msgRegistered, "user": user})
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	res, err := h.services.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, "auth_login_failed", err, "username", req.Username)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		AccessToken: res.AccessToken,
		TokenType:   res.TokenType,
		ExpiresAt:   res.ExpiresAt.UTC().Format(time.RFC3339),
		User:        res.User,
	})
}

// @Summary      Request a password reset
// @Description  The response is the same whether or not the email is registered.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Email"
// @Success      200   {object}  forgotPasswordResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /forgot-password [post]
func (h *Handler) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	res, err := h.services.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		h.fail(c, "auth_forgot_password_failed", err)
		return
	}
	c.JSON(http.StatusOK, forgotPasswordResponse{Message: res.Message, ResetToken: res.ResetToken})
}

// @Summary      Reset password with a reset token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Token and new password"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /reset-password [post]
func (h *Handler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	if err := h.services.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		h.fail(c, "auth_reset_password_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgResetComplete})
}
