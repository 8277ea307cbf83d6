package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shopnest/config"
	"shopnest/errs"
	"shopnest/models"
	"shopnest/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrateAll(db))
	return db
}

func newTestTokens() *services.TokenService {
	return services.NewTokenService(&config.AuthConfig{
		JWTSecret:        "session-secret",
		ActivationSecret: "activation-secret",
		SessionExpiry:    1,
	})
}

func newContext(t *testing.T, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusOK)
	}
}

func TestIsSellerNoCookie(t *testing.T) {
	db := newTestDB(t)
	tokens := newTestTokens()
	c, _ := newContext(t)

	var called bool
	err := IsSeller(db, tokens)(okHandler(&called))(c)

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	assert.False(t, called)
}

func TestIsSellerInvalidToken(t *testing.T) {
	db := newTestDB(t)
	tokens := newTestTokens()
	c, _ := newContext(t, &http.Cookie{Name: SellerCookie, Value: "not-a-jwt"})

	var called bool
	err := IsSeller(db, tokens)(okHandler(&called))(c)

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	assert.False(t, called)
}

func TestIsSellerRejectsBuyerSession(t *testing.T) {
	db := newTestDB(t)
	tokens := newTestTokens()

	token, err := tokens.CreateSessionToken(1, services.AudienceUser)
	require.NoError(t, err)
	c, _ := newContext(t, &http.Cookie{Name: SellerCookie, Value: token})

	var called bool
	err = IsSeller(db, tokens)(okHandler(&called))(c)

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
}

func TestIsSellerAccountGone(t *testing.T) {
	db := newTestDB(t)
	tokens := newTestTokens()

	token, err := tokens.CreateSessionToken(999, services.AudienceSeller)
	require.NoError(t, err)
	c, _ := newContext(t, &http.Cookie{Name: SellerCookie, Value: token})

	var called bool
	err = IsSeller(db, tokens)(okHandler(&called))(c)

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Seller not found", appErr.Message)
}

func TestIsSellerAttachesShop(t *testing.T) {
	db := newTestDB(t)
	tokens := newTestTokens()

	shop := models.Shop{Name: "Book Corner", Email: "owner@bookcorner.test"}
	require.NoError(t, db.Create(&shop).Error)

	token, err := tokens.CreateSessionToken(shop.ID, services.AudienceSeller)
	require.NoError(t, err)
	c, rec := newContext(t, &http.Cookie{Name: SellerCookie, Value: token})

	var called bool
	err = IsSeller(db, tokens)(okHandler(&called))(c)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)

	attached, ok := c.Get("seller").(*models.Shop)
	require.True(t, ok)
	assert.Equal(t, shop.ID, attached.ID)
	assert.Equal(t, "owner@bookcorner.test", attached.Email)
}

func TestIsAuthenticatedAttachesUser(t *testing.T) {
	db := newTestDB(t)
	tokens := newTestTokens()

	user := models.User{Name: "Ana", Email: "ana@example.test", Role: "Admin"}
	require.NoError(t, db.Create(&user).Error)

	token, err := tokens.CreateSessionToken(user.ID, services.AudienceUser)
	require.NoError(t, err)
	c, _ := newContext(t, &http.Cookie{Name: UserCookie, Value: token})

	var called bool
	err = IsAuthenticated(db, tokens)(okHandler(&called))(c)

	require.NoError(t, err)
	assert.True(t, called)

	attached, ok := c.Get("user").(*models.User)
	require.True(t, ok)
	assert.Equal(t, "Admin", attached.Role)
}

func TestIsAdminAllowsListedRole(t *testing.T) {
	c, _ := newContext(t)
	c.Set("user", &models.User{Role: "Admin"})

	var called bool
	err := IsAdmin("Admin")(okHandler(&called))(c)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestIsAdminForbidsOtherRoles(t *testing.T) {
	c, _ := newContext(t)
	c.Set("user", &models.User{Role: "user"})

	var called bool
	err := IsAdmin("Admin")(okHandler(&called))(c)

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.Code)
	assert.Equal(t, "user cannot access this resource!", appErr.Message)
	assert.False(t, called)
}

func TestIsAdminFailsClosedWithoutAuthentication(t *testing.T) {
	// Mounted without IsAuthenticated there is no user in context; the gate
	// must reject rather than panic.
	c, _ := newContext(t)

	var called bool
	err := IsAdmin("Admin")(okHandler(&called))(c)

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	assert.False(t, called)
}
