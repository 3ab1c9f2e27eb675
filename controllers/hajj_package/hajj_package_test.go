package hajj_package_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/balojey/abdullateef-api/config"
	"github.com/balojey/abdullateef-api/constants"
	"github.com/balojey/abdullateef-api/database/dbtest"
	"github.com/balojey/abdullateef-api/models/hajj_package"
	"github.com/balojey/abdullateef-api/routes"
	"github.com/balojey/abdullateef-api/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Message string             `json:"message"`
	Status  int                `json:"status"`
	Data    json.RawMessage    `json:"data"`
	Errors  []types.FieldError `json:"errors"`
}

func newApp(t *testing.T, cfg *config.Config) *fiber.App {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	app := fiber.New()
	routes.SetupRoutes(app, dbtest.New(t), cfg, nil)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"year":              2026,
		"local_price":       8_000_000,
		"diaspora_price":    9_500_000,
		"registration_fee":  500_000,
		"commission_amount": 150_000,
		"description":       "Standard package",
	}
}

func createPackage(t *testing.T, app *fiber.App, body map[string]interface{}) hajj_package.HajjPackage {
	t.Helper()
	resp, env := do(t, app, fiber.MethodPost, "/api/hajj-packages", body, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)

	var pkg hajj_package.HajjPackage
	require.NoError(t, json.Unmarshal(env.Data, &pkg))
	return pkg
}

func TestStore(t *testing.T) {
	app := newApp(t, nil)

	pkg := createPackage(t, app, validBody())
	assert.NotEqual(t, uuid.Nil, pkg.ID)
	assert.Equal(t, 2026, pkg.Year)
	assert.Equal(t, int64(150_000), pkg.CommissionAmount)
	require.NotNil(t, pkg.Description)
	assert.Equal(t, "Standard package", *pkg.Description)
}

func TestStore_ValidationFailures(t *testing.T) {
	app := newApp(t, nil)

	cases := map[string]struct {
		mutate func(map[string]interface{})
		field  string
	}{
		"negative local price": {func(b map[string]interface{}) { b["local_price"] = -1 }, "local_price"},
		"negative diaspora":    {func(b map[string]interface{}) { b["diaspora_price"] = -5 }, "diaspora_price"},
		"year before 2000":     {func(b map[string]interface{}) { b["year"] = 1999 }, "year"},
		"missing commission":   {func(b map[string]interface{}) { delete(b, "commission_amount") }, "commission_amount"},
		"long description": {func(b map[string]interface{}) {
			b["description"] = string(bytes.Repeat([]byte("x"), 1001))
		}, "description"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			body := validBody()
			tc.mutate(body)

			resp, env := do(t, app, fiber.MethodPost, "/api/hajj-packages", body, "")
			assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
			require.NotEmpty(t, env.Errors)
			assert.Equal(t, tc.field, env.Errors[0].Field)
		})
	}

	resp, _ := do(t, app, fiber.MethodPost, "/api/hajj-packages", `{"year": "soon"`, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	_, env := do(t, app, fiber.MethodGet, "/api/hajj-packages", nil, "")
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestShow(t *testing.T) {
	app := newApp(t, nil)
	pkg := createPackage(t, app, validBody())

	resp, env := do(t, app, fiber.MethodGet, "/api/hajj-packages/"+pkg.ID.String(), nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got hajj_package.HajjPackage
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, pkg.ID, got.ID)

	resp, env = do(t, app, fiber.MethodGet, "/api/hajj-packages/"+uuid.NewString(), nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Hajj package not found", env.Message)

	resp, _ = do(t, app, fiber.MethodGet, "/api/hajj-packages/not-a-uuid", nil, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestIndex_Pagination(t *testing.T) {
	app := newApp(t, nil)
	for _, year := range []int{2024, 2025, 2026} {
		body := validBody()
		body["year"] = year
		createPackage(t, app, body)
	}

	_, env := do(t, app, fiber.MethodGet, "/api/hajj-packages", nil, "")
	var all []hajj_package.HajjPackage
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 3)

	resp, env := do(t, app, fiber.MethodGet, "/api/hajj-packages?limit=2&offset=2", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var page []hajj_package.HajjPackage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page, 1)

	for _, query := range []string{"limit=0", "limit=501", "offset=-1", "limit=abc"} {
		resp, _ := do(t, app, fiber.MethodGet, "/api/hajj-packages?"+query, nil, "")
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode, query)
	}
}

func TestUpdate(t *testing.T) {
	app := newApp(t, nil)
	pkg := createPackage(t, app, validBody())
	path := "/api/hajj-packages/" + pkg.ID.String()

	resp, env := do(t, app, fiber.MethodPut, path, map[string]interface{}{"local_price": 8_250_000}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
	var updated hajj_package.HajjPackage
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, int64(8_250_000), updated.LocalPrice)
	assert.Equal(t, pkg.DiasporaPrice, updated.DiasporaPrice)
	assert.Equal(t, pkg.Year, updated.Year)

	resp, _ = do(t, app, fiber.MethodPut, path, map[string]interface{}{"registration_fee": -1}, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = do(t, app, fiber.MethodPut, path, map[string]interface{}{"year": 1990}, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, env = do(t, app, fiber.MethodPut, "/api/hajj-packages/"+uuid.NewString(), map[string]interface{}{"year": 2030}, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Hajj package not found", env.Message)
}

func TestDestroy(t *testing.T) {
	app := newApp(t, nil)
	pkg := createPackage(t, app, validBody())
	path := "/api/hajj-packages/" + pkg.ID.String()

	resp, _ := do(t, app, fiber.MethodDelete, path, nil, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, fiber.MethodGet, path, nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, fiber.MethodDelete, path, nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func signToken(t *testing.T, secret string, permissions ...string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":         uuid.NewString(),
		"permissions": permissions,
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestWrites_RequirePermission(t *testing.T) {
	const secret = "test-secret"
	app := newApp(t, &config.Config{JWTSecret: secret})

	resp, _ := do(t, app, fiber.MethodPost, "/api/hajj-packages", validBody(), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, app, fiber.MethodPost, "/api/hajj-packages", validBody(), signToken(t, "other-secret", constants.PermHajjPackageManage))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, app, fiber.MethodPost, "/api/hajj-packages", validBody(), signToken(t, secret, "bookings.read"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, env := do(t, app, fiber.MethodPost, "/api/hajj-packages", validBody(), signToken(t, secret, constants.PermHajjPackageManage))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var pkg hajj_package.HajjPackage
	require.NoError(t, json.Unmarshal(env.Data, &pkg))

	// reads stay public
	resp, _ = do(t, app, fiber.MethodGet, "/api/hajj-packages/"+pkg.ID.String(), nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = do(t, app, fiber.MethodDelete, "/api/hajj-packages/"+pkg.ID.String(), nil, signToken(t, secret, constants.PermSuperAdminFull))
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	app := newApp(t, &config.Config{RateLimitRPS: 0.001, RateLimitBurst: 2})

	for i := 0; i < 2; i++ {
		resp, _ := do(t, app, fiber.MethodGet, "/api/hajj-packages", nil, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, env := do(t, app, fiber.MethodGet, "/api/hajj-packages", nil, "")
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Too many requests", env.Message)

	resp, _ = do(t, app, fiber.MethodGet, "/health", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
