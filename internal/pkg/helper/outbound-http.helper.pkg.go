package helper

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"portrait-backend/internal/pkg/logger"
	"time"
)

// OutboundConfig configures the client used for provider calls
// (payment gateway, conversion API).
type OutboundConfig struct {
	ProxyURL       string
	SkipTLSVerify  bool
	RequestTimeout int
}

// OutboundHTTPClient performs single-attempt calls to third-party APIs.
type OutboundHTTPClient struct {
	Client *http.Client
	Config *OutboundConfig
}

func NewOutboundHTTPClient(cfg *OutboundConfig) *OutboundHTTPClient {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.SkipTLSVerify,
		},
	}

	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			logger.Error.Printf("Invalid proxy URL: %v", err)
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
			logger.Debug.Printf("Using proxy: %s", cfg.ProxyURL)
		}
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15
	}

	return &OutboundHTTPClient{
		Client: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(timeout) * time.Second,
		},
		Config: cfg,
	}
}

// Request sends one HTTP request. There is no retry: a transport failure is
// returned as is and a non-2xx reply is handed back for the caller to judge.
func (o *OutboundHTTPClient) Request(
	payload *HTTPRequestPayload,
	config *HTTPRequestConfig,
) (*HTTPAPIResponse, error) {
	requestBody, err := handleRequestBody(payload, config)
	if err != nil {
		logger.Debug.Println("Error handling request body:", err.Error())
		return nil, err
	}

	req, err := o.prepareRequest(payload, requestBody, config)
	if err != nil {
		logger.Debug.Println("Error preparing request:", err.Error())
		return nil, err
	}

	return o.execute(req)
}

func (o *OutboundHTTPClient) prepareRequest(payload *HTTPRequestPayload, body io.Reader, config *HTTPRequestConfig) (*http.Request, error) {
	ctx := config.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, payload.Method.ToString(), payload.URL, body)
	if err != nil {
		return nil, err
	}

	for key, values := range config.Headers {
		req.Header[key] = append(req.Header[key], values...)
	}
	req.Header.Set("Accept", "application/json")

	if config.Auth != nil {
		req.SetBasicAuth(config.Auth.Username, config.Auth.Password)
	}

	if len(payload.Params) > 0 {
		q := req.URL.Query()
		for key, value := range payload.Params {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	return req, nil
}

func (o *OutboundHTTPClient) execute(req *http.Request) (*HTTPAPIResponse, error) {
	logger.Debug.Printf("Outbound %s %s%s", req.Method, req.URL.Host, req.URL.Path)

	resp, err := o.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s%s failed: %w", req.Method, req.URL.Host, req.URL.Path, transportCause(err))
	}
	defer resp.Body.Close()

	data, err := parseResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logger.Debug.Printf("Outbound %s %s completed with status: %d", req.Method, req.URL.Host, resp.StatusCode)

	return &HTTPAPIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Data:       data,
	}, nil
}

// transportCause drops the request URL from a client error. Query strings
// may carry credentials and must not reach the logs.
func transportCause(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
