package errs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	HTTPErrorHandler(err, c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHTTPErrorHandlerRendersTaxonomy(t *testing.T) {
	cases := []struct {
		err  *Error
		code int
	}{
		{BadRequest("Please provide all required fields"), http.StatusBadRequest},
		{Unauthorized("Please login to continue"), http.StatusUnauthorized},
		{Forbidden("user cannot access this resource!"), http.StatusForbidden},
		{NotFound("Shop not found"), http.StatusNotFound},
		{Internal("upstream exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec, body := render(t, tc.err)
		assert.Equal(t, tc.code, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tc.err.Message, body["message"])
	}
}

func TestHTTPErrorHandlerUnknownErrorIs500(t *testing.T) {
	rec, body := render(t, fmt.Errorf("driver: bad connection"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["message"])
}

func TestHTTPErrorHandlerEchoHTTPError(t *testing.T) {
	rec, body := render(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method Not Allowed", body["message"])
}
