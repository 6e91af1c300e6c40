package helper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"portrait-backend/internal/common/enum"
	types "portrait-backend/internal/common/type"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashEmail(t *testing.T) {
	// sha256("jane@example.com")
	const want = "8c87b489ce35cf2e2f39f80e282cb2e804932a56a213983eeeb428407d43b52d"

	assert.Equal(t, want, HashEmail("jane@example.com"))
	assert.Equal(t, want, HashEmail("  JANE@Example.com\n"))
	assert.Empty(t, HashEmail("   "))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "905551234567", NormalizePhone("+90 (555) 123-45 67"))
	assert.Empty(t, NormalizePhone("n/a"))
}

func TestSanitizeError(t *testing.T) {
	raw := errors.New("dial tcp 10.0.0.3:5432: connection refused")

	tests := []struct {
		name string
		err  error
		code int
		env  enum.EnvEnum
		want string
	}{
		{name: "development shows raw error", err: raw, code: 500, env: enum.DEVELOPMENT, want: raw.Error()},
		{name: "production hides raw error", err: raw, code: 500, env: enum.PRODUCTION, want: "Internal Server Error"},
		{name: "local hides raw error", err: raw, code: 502, env: enum.LOCAL, want: "Bad Gateway"},
		{name: "public error always shown", err: fmt.Errorf("bind: %w", NewPublicError("title is required", raw)), code: 400, env: enum.PRODUCTION, want: "title is required"},
		{name: "nil error", err: nil, code: 404, env: enum.DEVELOPMENT, want: "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeError(tt.err, tt.code, tt.env))
		})
	}
}

func TestPublicError(t *testing.T) {
	cause := errors.New("cause")
	pe := NewPublicError("bad input", cause)

	assert.Equal(t, "bad input: cause", pe.Error())
	assert.ErrorIs(t, pe, cause)
	assert.Equal(t, "bad input", NewPublicError("bad input").Error())
}

func TestParseResponse(t *testing.T) {
	r := ParseResponse(&types.Response{})
	assert.Equal(t, http.StatusOK, r.Code)
	assert.Equal(t, "OK", r.Message)

	r = ParseResponse(&types.Response{Code: http.StatusAccepted, Message: "queued"})
	assert.Equal(t, "queued", r.Message)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("PORTRAIT_SET", "  value ")
	t.Setenv("PORTRAIT_BLANK", "   ")

	assert.Equal(t, "value", GetEnv("PORTRAIT_SET", "fallback"))
	assert.Equal(t, "fallback", GetEnv("PORTRAIT_BLANK", "", "fallback"))
	assert.Equal(t, "", GetEnv("PORTRAIT_UNSET"))
}

func TestOutboundRequest_ErrorOmitsQuery(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	target := srv.URL + "/orders/42"
	srv.Close()

	client := NewOutboundHTTPClient(&OutboundConfig{RequestTimeout: 2})
	_, err := client.Request(&HTTPRequestPayload{
		Method: GET,
		URL:    target,
		Params: map[string]string{"api_key": "SECRET-KEY"},
	}, &HTTPRequestConfig{Ctx: context.Background()})

	assert.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-KEY")
	assert.Contains(t, err.Error(), "/orders/42")
}
