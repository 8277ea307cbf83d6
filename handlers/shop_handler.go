package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shopnest/config"
	"shopnest/errs"
	"shopnest/kafka"
	"shopnest/middleware"
	"shopnest/models"
	"shopnest/services"
)

type ShopHandler struct {
	db          *gorm.DB
	tokens      *services.TokenService
	mail        services.Mailer
	media       services.MediaStore
	events      *kafka.Producer // nil when kafka is not configured
	eventsTopic string
	frontendURL string
}

func NewShopHandler(db *gorm.DB, tokens *services.TokenService, mail services.Mailer, media services.MediaStore, auth *config.AuthConfig, events *kafka.Producer, eventsTopic string) *ShopHandler {
	return &ShopHandler{
		db:          db,
		tokens:      tokens,
		mail:        mail,
		media:       media,
		events:      events,
		eventsTopic: eventsTopic,
		frontendURL: auth.FrontendURL,
	}
}

type createShopRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Avatar      string `json:"avatar"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	ZipCode     string `json:"zipCode"`
}

// CreateShop takes a registration submission, uploads the avatar, and emails
// an activation link. No account exists until the link is redeemed.
func (h *ShopHandler) CreateShop(c echo.Context) error {
	var req createShopRequest
	if err := c.Bind(&req); err != nil {
		return errs.BadRequest("Invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" ||
		req.Address == "" || req.PhoneNumber == "" || req.ZipCode == "" {
		return errs.BadRequest("Please provide all required fields")
	}

	var existing models.Shop
	err := h.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return errs.BadRequest("User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.Internal(err.Error())
	}

	avatar, err := h.media.Upload(c.Request().Context(), req.Avatar, "avatars", 0)
	if err != nil {
		return errs.Internal(err.Error())
	}

	// Hash before the bundle enters the token so a leaked activation link
	// never exposes the plaintext password.
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return errs.Internal(err.Error())
	}

	pending := services.PendingShop{
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hash),
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		ZipCode:     req.ZipCode,
		Avatar:      avatar,
	}

	activationToken, err := h.tokens.CreateActivationToken(pending)
	if err != nil {
		return errs.Internal(err.Error())
	}
	activationURL := fmt.Sprintf("%s/seller/activation/%s", h.frontendURL, activationToken)

	message := fmt.Sprintf("Hello %s, please click on the link to activate your shop: %s", pending.Name, activationURL)
	if err := h.mail.Send(c.Request().Context(), pending.Email, "Activate your Shop", message); err != nil {
		return errs.Internal(err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Please check your email: %s to activate your shop!", pending.Email),
	})
}

type activationRequest struct {
	ActivationToken string `json:"activation_token"`
}

type sellerActivatedEvent struct {
	ShopID      uint      `json:"shop_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	ActivatedAt time.Time `json:"activated_at"`
}

// Activation redeems an activation token: the embedded bundle becomes a Shop
// and the new seller is logged in immediately.
func (h *ShopHandler) Activation(c echo.Context) error {
	var req activationRequest
	if err := c.Bind(&req); err != nil {
		return errs.BadRequest("Invalid request body")
	}

	pending, err := h.tokens.ValidateActivationToken(req.ActivationToken)
	if err != nil {
		return errs.BadRequest("Invalid token or token expired")
	}

	// The bundle may have been redeemed already, or someone registered the
	// email in the meantime.
	var existing models.Shop
	err = h.db.Where("email = ?", pending.Email).First(&existing).Error
	if err == nil {
		return errs.BadRequest("User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.Internal(err.Error())
	}

	shop := models.Shop{
		Name:        pending.Name,
		Email:       pending.Email,
		Password:    pending.Password,
		Address:     pending.Address,
		PhoneNumber: pending.PhoneNumber,
		ZipCode:     pending.ZipCode,
		Avatar:      pending.Avatar,
	}
	if err := h.db.Create(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.BadRequest("User already exists")
		}
		return errs.Internal(err.Error())
	}

	if h.events != nil {
		event := sellerActivatedEvent{
			ShopID:      shop.ID,
			Email:       shop.Email,
			Name:        shop.Name,
			ActivatedAt: time.Now(),
		}
		if err := h.events.SendMessage(h.eventsTopic, shop.Email, event); err != nil {
			c.Logger().Errorf("failed to publish seller activated event: %v", err)
		}
	}

	return h.sendShopToken(c, &shop, http.StatusCreated)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *ShopHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errs.BadRequest("Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return errs.BadRequest("Please provide all fields!")
	}

	var shop models.Shop
	if err := h.db.Where("email = ?", req.Email).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.BadRequest("User doesn't exist!")
		}
		return errs.Internal(err.Error())
	}

	if !shop.ComparePassword(req.Password) {
		return errs.BadRequest("Incorrect password")
	}

	return h.sendShopToken(c, &shop, http.StatusCreated)
}

// GetSeller reloads the authenticated seller attached by the IsSeller
// middleware.
func (h *ShopHandler) GetSeller(c echo.Context) error {
	seller := c.Get("seller").(*models.Shop)

	var shop models.Shop
	if err := h.db.First(&shop, seller.ID).Error; err != nil {
		return errs.BadRequest("User doesn't exist")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"seller":  shop,
	})
}

func (h *ShopHandler) Logout(c echo.Context) error {
	clearSessionCookie(c, middleware.SellerCookie)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Log out successful!",
	})
}

func (h *ShopHandler) GetShopInfo(c echo.Context) error {
	var shop models.Shop
	if err := h.db.First(&shop, "id = ?", c.Param("id")).Error; err != nil {
		return errs.NotFound("Shop not found")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"shop":    shop,
	})
}

type updateAvatarRequest struct {
	Avatar string `json:"avatar"`
}

// UpdateShopAvatar replaces the seller's avatar: the old asset is destroyed
// on the media host before the new one is uploaded.
func (h *ShopHandler) UpdateShopAvatar(c echo.Context) error {
	seller := c.Get("seller").(*models.Shop)

	var req updateAvatarRequest
	if err := c.Bind(&req); err != nil {
		return errs.BadRequest("Invalid request body")
	}
	if req.Avatar == "" {
		return errs.BadRequest("Please provide all required fields")
	}

	var shop models.Shop
	if err := h.db.First(&shop, seller.ID).Error; err != nil {
		return errs.NotFound("User not found")
	}

	if shop.Avatar.PublicID != "" {
		if err := h.media.Destroy(c.Request().Context(), shop.Avatar.PublicID); err != nil {
			return errs.Internal(err.Error())
		}
	}

	avatar, err := h.media.Upload(c.Request().Context(), req.Avatar, "avatars", 150)
	if err != nil {
		return errs.Internal(err.Error())
	}

	shop.Avatar = avatar
	if err := h.db.Save(&shop).Error; err != nil {
		return errs.Internal(err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"seller":  shop,
	})
}

type updateSellerInfoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	ZipCode     string `json:"zipCode"`
}

func (h *ShopHandler) UpdateSellerInfo(c echo.Context) error {
	seller := c.Get("seller").(*models.Shop)

	var req updateSellerInfoRequest
	if err := c.Bind(&req); err != nil {
		return errs.BadRequest("Invalid request body")
	}

	var shop models.Shop
	if err := h.db.First(&shop, seller.ID).Error; err != nil {
		return errs.NotFound("User not found")
	}

	shop.Name = req.Name
	shop.Description = req.Description
	shop.Address = req.Address
	shop.PhoneNumber = req.PhoneNumber
	shop.ZipCode = req.ZipCode

	if err := h.db.Save(&shop).Error; err != nil {
		return errs.Internal(err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"shop":    shop,
	})
}

// AdminAllSellers lists every shop, newest first. Role gating happens in the
// route chain (IsAuthenticated + IsAdmin).
func (h *ShopHandler) AdminAllSellers(c echo.Context) error {
	var sellers []models.Shop
	if err := h.db.Order("created_at DESC").Find(&sellers).Error; err != nil {
		return errs.Internal(err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"sellers": sellers,
	})
}

func (h *ShopHandler) sendShopToken(c echo.Context, shop *models.Shop, status int) error {
	token, err := h.tokens.CreateSessionToken(shop.ID, services.AudienceSeller)
	if err != nil {
		return errs.Internal(err.Error())
	}

	setSessionCookie(c, middleware.SellerCookie, token, h.tokens.SessionExpiry())

	return c.JSON(status, map[string]interface{}{
		"success": true,
		"seller":  shop,
		"token":   token,
	})
}
