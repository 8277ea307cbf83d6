package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopnest/errs"
	"shopnest/middleware"
	"shopnest/models"
	"shopnest/services"
)

// UserHandler covers the minimal buyer surface this service needs: logging in
// to obtain the buyer session cookie (admin routes require it) and out again.
type UserHandler struct {
	db     *gorm.DB
	tokens *services.TokenService
}

func NewUserHandler(db *gorm.DB, tokens *services.TokenService) *UserHandler {
	return &UserHandler{db: db, tokens: tokens}
}

func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errs.BadRequest("Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return errs.BadRequest("Please provide all fields!")
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.BadRequest("User doesn't exist!")
		}
		return errs.Internal(err.Error())
	}

	if !user.ComparePassword(req.Password) {
		return errs.BadRequest("Incorrect password")
	}

	token, err := h.tokens.CreateSessionToken(user.ID, services.AudienceUser)
	if err != nil {
		return errs.Internal(err.Error())
	}

	setSessionCookie(c, middleware.UserCookie, token, h.tokens.SessionExpiry())

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user := c.Get("user").(*models.User)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

func (h *UserHandler) Logout(c echo.Context) error {
	clearSessionCookie(c, middleware.UserCookie)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Log out successful!",
	})
}
