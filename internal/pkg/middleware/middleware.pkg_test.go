package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"portrait-backend/internal/common/enum"
	types "portrait-backend/internal/common/type"
	"portrait-backend/internal/pkg/jwt"
	"portrait-backend/internal/pkg/validation"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validation.Setup(); err != nil {
		panic(err)
	}
	m.Run()
}

type counterRedis struct {
	mu       sync.Mutex
	counts   map[string]int64
	expiries map[string]time.Duration
	err      error
}

func newCounterRedis() *counterRedis {
	return &counterRedis{counts: map[string]int64{}, expiries: map[string]time.Duration{}}
}

func (r *counterRedis) Set(string, any, time.Duration) error      { return nil }
func (r *counterRedis) Get(string) (string, error)                { return "", nil }
func (r *counterRedis) Del(string) error                          { return nil }
func (r *counterRedis) HSet(string, string, any) error            { return nil }
func (r *counterRedis) HGetAll(string) (map[string]string, error) { return map[string]string{}, nil }
func (r *counterRedis) HDel(string, ...string) error              { return nil }
func (r *counterRedis) Close() error                              { return nil }
func (r *counterRedis) Ping(context.Context) error                { return nil }
func (r *counterRedis) Expire(key string, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expiries[key] = d
	return nil
}

func (r *counterRedis) Incr(key string) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[key]++
	return r.counts[key], nil
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func TestRateLimit(t *testing.T) {
	rds := newCounterRedis()
	r := gin.New()
	r.GET("/status", RateLimit(rds, "status", 2, time.Hour), okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/status", nil)
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)

		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "3600", w.Header().Get("Retry-After"))
			var body types.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Too many requests", body.Error)
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	require.Len(t, rds.expiries, 1)
	for _, d := range rds.expiries {
		assert.Equal(t, time.Hour, d)
	}
}

func TestRateLimit_SubSecondWindow(t *testing.T) {
	fixed := time.UnixMilli(1_760_000_000_100)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	rds := newCounterRedis()
	r := gin.New()
	r.GET("/status", RateLimit(rds, "status", 1, 500*time.Millisecond), okHandler)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/status", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
	for _, d := range rds.expiries {
		assert.Equal(t, 500*time.Millisecond, d)
	}

	fixed = fixed.Add(500 * time.Millisecond)
	third := httptest.NewRecorder()
	r.ServeHTTP(third, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusOK, third.Code)
}

func TestRateLimit_ZeroWindowDoesNotPanic(t *testing.T) {
	r := gin.New()
	r.GET("/status", RateLimit(newCounterRedis(), "status", 5, 0), okHandler)

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	rds := newCounterRedis()
	rds.err = errors.New("redis down")
	r := gin.New()
	r.GET("/status", RateLimit(rds, "status", 1, time.Minute), okHandler)

	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	r := gin.New()
	r.GET("/status", RateLimit(nil, "status", 1, time.Minute), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func sendRouter(env enum.EnvEnum, resp *types.Response) *gin.Engine {
	r := gin.New()
	r.Use(RequestInit(), ResponseInit(env))
	r.GET("/x", func(c *gin.Context) {
		send := c.MustGet("send").(func(r *types.Response))
		send(resp)
	})
	return r
}

func TestResponseInit_SanitizesOutsideDevelopment(t *testing.T) {
	tests := []struct {
		env  enum.EnvEnum
		want string
	}{
		{env: enum.DEVELOPMENT, want: "pq: relation \"bookings\" does not exist"},
		{env: enum.PRODUCTION, want: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(string(tt.env), func(t *testing.T) {
			r := sendRouter(tt.env, &types.Response{
				Code:  http.StatusInternalServerError,
				Error: errors.New(`pq: relation "bookings" does not exist`),
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set(RequestIDHeader, "rid-1")
			r.ServeHTTP(w, req)

			var body types.ResponseAPI
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, tt.want, body.Error)
			assert.Equal(t, "rid-1", body.RequestID)
			assert.Equal(t, "rid-1", w.Header().Get(RequestIDHeader))
		})
	}
}

func TestRequestInit_GeneratesID(t *testing.T) {
	r := sendRouter(enum.PRODUCTION, &types.Response{Code: http.StatusAccepted, Data: gin.H{"message_id": "m"}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body types.ResponseAPI
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusAccepted, body.Status)
	assert.Equal(t, "Accepted", body.Message)
	_, err := uuid.Parse(body.RequestID)
	assert.NoError(t, err)
}

func authRouter() *gin.Engine {
	r := gin.New()
	r.Use(ResponseInit(enum.PRODUCTION), AuthMiddleware())
	r.GET("/admin", func(c *gin.Context) {
		admin := c.MustGet(AuthKey).(types.AdminWithAuth)
		c.JSON(http.StatusOK, gin.H{"email": admin.Email})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	token, _, err := jwt.GenerateToken(types.AdminWithAuth{
		ID:    uuid.New(),
		Email: "studio@istanbulportrait.com",
		Role:  "admin",
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{name: "valid token", header: "Bearer " + token, code: http.StatusOK},
		{name: "missing token", header: "", code: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", code: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			authRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Contains(t, w.Body.String(), "studio@istanbulportrait.com")
			}
		})
	}
}

func TestCorsMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CorsMiddleware("https://istanbulportrait.com, http://localhost:3000"))
	r.GET("/x", okHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
