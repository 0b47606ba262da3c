package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipe-api/models"
	"recipe-api/router"
	"recipe-api/services"
	"recipe-api/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	services.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
	token  string
}

func newClient(t *testing.T) *apiClient {
	t.Helper()
	db := testutil.NewDB(t)
	engine := router.SetupRouter(router.Options{
		DB:        db,
		SecretKey: []byte("test-secret"),
		TokenTTL:  time.Hour,
		Logger:    zerolog.Nop(),
	})
	return &apiClient{t: t, engine: engine, db: db}
}

func (c *apiClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.engine.ServeHTTP(rec, req)
	return rec
}

// login creates a user and authenticates the client as them.
func (c *apiClient) login(email string) *models.User {
	c.t.Helper()
	user := testutil.CreateUser(c.t, c.db, email, "testpass123", "Test name")

	rec := c.do(http.MethodPost, "/user/token", gin.H{"email": email, "password": "testpass123"})
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(c.t, body.Token)
	c.token = body.Token
	return user
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndMetrics(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = c.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "recipe_api_http_requests_total")

	rec = c.do(http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestID(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodGet, "/health", nil)
	generated := rec.Header().Get("X-Request-ID")
	_, err := uuid.Parse(generated)
	assert.NoError(t, err, "a request id is generated when the client sends none")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec = httptest.NewRecorder()
	c.engine.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	c := newClient(t)

	req := httptest.NewRequest(http.MethodOptions, "/recipe/recipes", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	c.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
