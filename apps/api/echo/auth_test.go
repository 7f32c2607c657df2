package echoapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/user"
)

// A token issued by GenerateToken must round-trip through the JWT auth
// middleware back into the same Claims: the middleware and getContextClaims
// have to agree on the token type they exchange via the request context.
func TestAuth_ClaimsRoundTrip(t *testing.T) {
	conf := &core.Config{
		AppName:   "UNESUM Redes",
		SecretKey: "secret",
		Server:    core.ServerConfig{JWTExpirationDelta: time.Hour},
	}
	usr := user.User{
		ID:    "0c9deb31-92f5-40d8-a424-103899078eee",
		Name:  "Caro Benalcázar",
		Email: "caro@unesum.edu.ec",
		Role:  user.RoleAdmin,
	}

	token, err := GenerateToken(conf, GetUserClaims(conf, usr))
	require.NoError(t, err)

	app := echo.New()
	app.GET("/me", func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, claims)
	}, middleware.JWTWithConfig(newJWTConfig(conf)))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var claims Claims
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &claims))
	assert.Equal(t, usr.ID, claims.Subject)
	assert.Equal(t, usr.Name, claims.Name)
	assert.Equal(t, usr.Email, claims.Email)
	assert.Equal(t, user.RoleAdmin, claims.Role)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, jwtAudience, claims.Audience)

	// a token signed with another key must not get through
	badToken, err := GenerateToken(&core.Config{
		AppName:   conf.AppName,
		SecretKey: "not-the-secret",
		Server:    conf.Server,
	}, GetUserClaims(conf, usr))
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+badToken)
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
