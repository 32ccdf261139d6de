package middlewares

import (
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// loadJWTSecret caches via sync.Once, so the secret must exist before
	// the first token is issued.
	os.Setenv("JWT_SECRET_KEY", "test-secret")
	os.Exit(m.Run())
}

func newAuthedApp(extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	handlers := []fiber.Handler{IsAuthenticatedHeader()}
	handlers = append(handlers, extra...)
	app.Get("/secure", append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("userID"),
			"role":    c.Locals("role"),
		})
	})...)
	return app
}

func TestAuthRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "planner")
	require.NoError(t, err)

	app := newAuthedApp()

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMissingHeader(t *testing.T) {
	app := newAuthedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/secure", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthGarbageToken(t *testing.T) {
	app := newAuthedApp()

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	adminToken, err := GenerateJWT("user-1", "admin")
	require.NoError(t, err)
	operatorToken, err := GenerateJWT("user-2", "operator")
	require.NoError(t, err)

	app := newAuthedApp(RequireRole("admin"))

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+operatorToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
