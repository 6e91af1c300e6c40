package helper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

/*----------- MethodEnum -----------*/

type MethodEnum string

const (
	GET    MethodEnum = "GET"
	POST   MethodEnum = "POST"
	PUT    MethodEnum = "PUT"
	DELETE MethodEnum = "DELETE"
)

func (e MethodEnum) ToString() string {
	return string(e)
}

type HTTPRequestPayload struct {
	Method MethodEnum
	URL    string
	Params map[string]string
	Body   any
}

type BasicAuth struct {
	Username string
	Password string
}

type HTTPRequestConfig struct {
	Ctx         context.Context
	Headers     http.Header
	Auth        *BasicAuth
	ContentType string
}

type HTTPAPIResponse struct {
	StatusCode int
	Headers    http.Header
	Data       []byte
}

// IsSuccess reports a 2xx status.
func (r *HTTPAPIResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// HTTPStatusError is returned by callers that treat a non-2xx reply as failure.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func handleRequestBody(payload *HTTPRequestPayload, config *HTTPRequestConfig) (io.Reader, error) {
	if payload.Body == nil {
		return nil, nil
	}

	if config.ContentType == "" {
		config.ContentType = "application/json"
	}
	if config.Headers == nil {
		config.Headers = http.Header{}
	}
	config.Headers.Set("Content-Type", config.ContentType)

	switch config.ContentType {
	case "application/x-www-form-urlencoded":
		values, ok := payload.Body.(url.Values)
		if !ok {
			return nil, fmt.Errorf("form body must be url.Values, got %T", payload.Body)
		}
		return strings.NewReader(values.Encode()), nil
	default:
		raw, err := json.Marshal(payload.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		return bytes.NewReader(raw), nil
	}
}

func parseResponseBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}
