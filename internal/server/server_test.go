package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/internal/server"
)

type apiClient struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "api.db")),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}))

	return &apiClient{t: t, handler: server.Handler(db)}
}

func (c *apiClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

// signupAndLogin registers an account and stores its access token on the
// client.
func (c *apiClient) signupAndLogin(username string, staff bool) {
	c.t.Helper()

	c.token = ""
	rec := c.do(http.MethodPost, "/auth/signup", map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "s3cret-pass",
		"is_staff": staff,
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = c.do(http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": "s3cret-pass",
	})
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(c.t, body.Data.AccessToken)
	c.token = body.Data.AccessToken
}

func (c *apiClient) placeOrder(quantity int, size string) uint {
	c.t.Helper()

	rec := c.do(http.MethodPost, "/orders/order", map[string]interface{}{
		"quantity":   quantity,
		"pizza_size": size,
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			ID uint `json:"ID"`
		} `json:"data"`
	}
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotZero(c.t, body.Data.ID)
	return body.Data.ID
}

func TestUnauthenticatedRequestsChallenged(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodGet, "/orders/user/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.Contains(t, rec.Body.String(), "Could not validate credentials")
}

func TestSignupDoesNotEchoPassword(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodPost, "/auth/signup", map[string]interface{}{
		"username": "jona",
		"email":    "jona@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "s3cret-pass")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLoginWrongPassword(t *testing.T) {
	api := newAPI(t)
	api.signupAndLogin("jona", false)

	api.token = ""
	rec := api.do(http.MethodPost, "/auth/login", map[string]string{
		"username": "jona",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.Contains(t, rec.Body.String(), "Incorrect username or password")
	assert.NotContains(t, rec.Body.String(), "access_token")
}

func TestAuthHomeGreeting(t *testing.T) {
	api := newAPI(t)
	api.signupAndLogin("jona", false)

	rec := api.do(http.MethodGet, "/auth", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Hello jona, your email is jona@example.com")
}

func TestRefreshReturnsToken(t *testing.T) {
	api := newAPI(t)
	api.signupAndLogin("jona", false)

	rec := api.do(http.MethodGet, "/auth/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "refresh_token")
}

func TestPlaceIgnoresClientUserID(t *testing.T) {
	api := newAPI(t)
	api.signupAndLogin("jona", false)

	rec := api.do(http.MethodPost, "/orders/order", map[string]interface{}{
		"quantity":   1,
		"pizza_size": "SMALL",
		"user_id":    9999, // must be ignored
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			UserID uint `json:"user_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEqual(t, uint(9999), body.Data.UserID)
	assert.NotZero(t, body.Data.UserID)
}

func TestListAllRequiresStaff(t *testing.T) {
	api := newAPI(t)

	api.signupAndLogin("customer", false)
	api.placeOrder(1, "SMALL")

	rec := api.do(http.MethodGet, "/orders/orders", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "You are not a superuser")

	api.signupAndLogin("boss", true)
	rec = api.do(http.MethodGet, "/orders/orders", nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestGetByIDRequiresStaff(t *testing.T) {
	api := newAPI(t)

	api.signupAndLogin("customer", false)
	id := api.placeOrder(1, "SMALL")

	rec := api.do(http.MethodGet, "/orders/orders/1", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not allowed")

	api.signupAndLogin("boss", true)
	rec = api.do(http.MethodGet, "/orders/orders/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	_ = id
	rec = api.do(http.MethodGet, "/orders/orders/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order not found")
}

func TestOwnOrdersEmptyList(t *testing.T) {
	api := newAPI(t)
	api.signupAndLogin("jona", false)

	rec := api.do(http.MethodGet, "/orders/user/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 0)
}

func TestNonStaffStatusPatchRejectedBeforeMutation(t *testing.T) {
	api := newAPI(t)

	api.signupAndLogin("customer", false)
	id := api.placeOrder(1, "SMALL")

	rec := api.do(http.MethodPatch, "/orders/order/update/1", map[string]string{
		"order_status": "IN_TRANSIT",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not allowed")

	// The order is still PENDING.
	rec = api.do(http.MethodGet, "/orders/user/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PENDING")
	assert.NotContains(t, rec.Body.String(), "IN_TRANSIT")
	_ = id
}

func TestStaffStatusPatchFollowsLifecycle(t *testing.T) {
	api := newAPI(t)

	api.signupAndLogin("customer", false)
	api.placeOrder(1, "SMALL")

	api.signupAndLogin("boss", true)

	// Illegal edge first.
	rec := api.do(http.MethodPatch, "/orders/order/update/1", map[string]string{
		"order_status": "DELIVERED",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPatch, "/orders/order/update/1", map[string]string{
		"order_status": "IN_TRANSIT",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "IN_TRANSIT")
}

func TestUpdateFieldsViaPut(t *testing.T) {
	api := newAPI(t)

	api.signupAndLogin("customer", false)
	api.placeOrder(1, "SMALL")

	rec := api.do(http.MethodPut, "/orders/order/update/1", map[string]interface{}{
		"quantity":   4,
		"pizza_size": "LARGE",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "LARGE")
	assert.Contains(t, rec.Body.String(), "PENDING")
}

func TestDeleteOrder(t *testing.T) {
	api := newAPI(t)

	api.signupAndLogin("customer", false)
	api.placeOrder(1, "SMALL")

	rec := api.do(http.MethodDelete, "/orders/order/delete/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodDelete, "/orders/order/delete/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order with id=1 not found")
}

func TestValidationErrors(t *testing.T) {
	api := newAPI(t)
	api.signupAndLogin("customer", false)

	rec := api.do(http.MethodPost, "/orders/order", map[string]interface{}{
		"quantity":   1,
		"pizza_size": "GIGANTIC",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "pizza_size")
}

func TestMetricsEndpointExposed(t *testing.T) {
	api := newAPI(t)

	// Generate at least one observed request before scraping.
	api.do(http.MethodGet, "/orders/user/orders", nil)

	rec := api.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pizzeria_http_requests_in_flight")
	assert.Contains(t, rec.Body.String(), "pizzeria_http_requests_total")
}
