package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stock-ledger/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "stock-ledger-test"
	testExpMin    = 60
)

// buildAuthApp app mínima que devuelve la identidad extraída por el middleware.
func buildAuthApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   apphttp.GetUserID(c),
			"performer": apphttp.GetPerformer(c),
		})
	})
	return app
}

func bearer(t *testing.T, name string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, name, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doMe(t *testing.T, app *fiber.App, authHeader string) (*http.Response, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	out := map[string]string{}
	_ = json.Unmarshal(body, &out)
	out["_raw"] = string(body)
	return resp, out
}

func TestAuthMiddleware_ExtractaPerformer(t *testing.T) {
	resp, body := doMe(t, buildAuthApp(testJWTSecret), bearer(t, "Ana Bodega"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "Ana Bodega", body["performer"])
}

func TestAuthMiddleware_SinNombreUsaUserID(t *testing.T) {
	resp, body := doMe(t, buildAuthApp(testJWTSecret), bearer(t, ""))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, body["performer"])
}

func TestAuthMiddleware_SinHeaderEsAnonimo(t *testing.T) {
	resp, body := doMe(t, buildAuthApp(testJWTSecret), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["performer"])
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	resp, body := doMe(t, buildAuthApp(testJWTSecret), "Bearer token.invalido.aqui")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body["_raw"], "INVALID_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	resp, _ := doMe(t, buildAuthApp(testJWTSecret), "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	resp, _ := doMe(t, buildAuthApp("otro-secret-completamente-distinto"), bearer(t, "Ana"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SinSecretNoValida(t *testing.T) {
	resp, body := doMe(t, buildAuthApp(""), "Bearer lo-que-sea")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["performer"])
}
