package echomw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeWithAuth(t *testing.T, authorization string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	request := httptest.NewRequest(http.MethodPost, "/api/parse-receipt", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	nextCalled := false
	handler := RequireBearerToken(func(c echo.Context) error {
		nextCalled = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return recorder, nextCalled
}

func TestRequireBearerToken(t *testing.T) {
	t.Setenv(EnvParseBearerToken, "sekrit")
	// reset the cached token in case another test resolved it first
	tokenOnce.Do(func() {})
	cachedTok = "sekrit"

	t.Run("valid token passes through", func(t *testing.T) {
		recorder, nextCalled := invokeWithAuth(t, "Bearer sekrit")
		assert.True(t, nextCalled)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		_, nextCalled := invokeWithAuth(t, "bearer sekrit")
		assert.True(t, nextCalled)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		recorder, nextCalled := invokeWithAuth(t, "")
		assert.False(t, nextCalled)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Header().Get("WWW-Authenticate"), "Bearer")
	})

	t.Run("wrong token is rejected", func(t *testing.T) {
		recorder, nextCalled := invokeWithAuth(t, "Bearer wrong")
		assert.False(t, nextCalled)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("wrong scheme is rejected", func(t *testing.T) {
		_, nextCalled := invokeWithAuth(t, "Basic sekrit")
		assert.False(t, nextCalled)
	})
}
