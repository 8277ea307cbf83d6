package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopnest/errs"
	"shopnest/models"
	"shopnest/services"
)

// Session cookie names. Buyer and seller sessions use separate cookies so a
// browser can hold both at once.
const (
	UserCookie   = "token"
	SellerCookie = "seller_token"
)

// IsAuthenticated resolves the buyer session cookie to a User record and
// attaches it to the request context under "user".
func IsAuthenticated(db *gorm.DB, tokens *services.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(UserCookie)
			if err != nil || cookie.Value == "" {
				return errs.Unauthorized("Please login to continue")
			}

			claims, err := tokens.ValidateSessionToken(cookie.Value, services.AudienceUser)
			if err != nil {
				return errs.Unauthorized("Invalid or expired session")
			}

			var user models.User
			if err := db.First(&user, claims.ID).Error; err != nil {
				return errs.NotFound("User not found")
			}

			c.Set("user", &user)
			return next(c)
		}
	}
}

// IsSeller is the seller variant: seller cookie, seller audience, Shop store.
// The resolved record lands under "seller".
func IsSeller(db *gorm.DB, tokens *services.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SellerCookie)
			if err != nil || cookie.Value == "" {
				return errs.Unauthorized("Please login to continue")
			}

			claims, err := tokens.ValidateSessionToken(cookie.Value, services.AudienceSeller)
			if err != nil {
				return errs.Unauthorized("Invalid or expired session")
			}

			var shop models.Shop
			if err := db.First(&shop, claims.ID).Error; err != nil {
				return errs.NotFound("Seller not found")
			}

			c.Set("seller", &shop)
			return next(c)
		}
	}
}

// IsAdmin gates an already-authenticated request on the user's role. It fails
// closed with 401 when no user was attached, so mounting it without
// IsAuthenticated degrades to a rejection instead of a panic.
func IsAdmin(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get("user").(*models.User)
			if !ok {
				return errs.Unauthorized("Please login to continue")
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return errs.Forbidden(fmt.Sprintf("%s cannot access this resource!", user.Role))
		}
	}
}
