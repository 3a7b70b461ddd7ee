// Package api provides the client for the Capsule platform API.
//
// The platform exposes a single operation to this CLI: creating an
// application. The client performs one POST per call, treats 201 as the
// only success status, and maps failures to stable human-readable
// messages the commands print verbatim.
package api

import (
	"bytes"
	"capsule/internal/slogger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// userAgent is the User-Agent header value sent with all API requests.
	userAgent = "capsule-cli/1.0"

	// contentTypeJSON is the Content-Type header value for JSON requests.
	contentTypeJSON = "application/json"

	// headerRequestID carries the per-invocation request ID.
	headerRequestID = "X-Request-ID"

	// API endpoint paths.
	pathApplications = "/applications"
)

// CapsuleAPI is the narrow interface the CLI workflows use to talk to the
// Capsule platform. Implementations must be safe for sequential reuse.
type CapsuleAPI interface {
	// CreateApplication creates an application, optionally with a caller
	// chosen name. A nil name lets the server pick one.
	CreateApplication(ctx context.Context, name *string) (*ApplicationCreateResponse, error)
}

// HTTPCapsuleAPI is the HTTP implementation of CapsuleAPI.
type HTTPCapsuleAPI struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

var _ CapsuleAPI = (*HTTPCapsuleAPI)(nil)

// NewHTTPCapsuleAPI creates a new API client with the given configuration.
// Returns an error if the configuration is invalid.
func NewHTTPCapsuleAPI(config Config) (*HTTPCapsuleAPI, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &HTTPCapsuleAPI{
		baseURL:    config.BaseURL,
		timeout:    config.Timeout,
		httpClient: &http.Client{Timeout: config.Timeout},
	}, nil
}

// NewHTTPCapsuleAPIWithClient creates a new API client with the given
// configuration and HTTP client. If httpClient is nil, a default HTTP
// client with the configured timeout will be used.
func NewHTTPCapsuleAPIWithClient(config Config, httpClient *http.Client) (*HTTPCapsuleAPI, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &HTTPCapsuleAPI{
		baseURL:    config.BaseURL,
		timeout:    config.Timeout,
		httpClient: httpClient,
	}, nil
}

// CreateApplication performs a single POST to /applications. Any status
// other than 201 Created is a failure; the returned error carries the
// exact message shown to the user.
func (a *HTTPCapsuleAPI) CreateApplication(ctx context.Context, name *string) (*ApplicationCreateResponse, error) {
	jsonData, err := json.Marshal(CreateApplicationRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("encode create application request: %w", err)
	}

	fullURL := a.baseURL + pathApplications
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("build create application request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set(headerRequestID, requestID(ctx))

	slogger.Debug(ctx, "Sending create application request", slogger.Fields{
		"url":   fullURL,
		"named": name != nil,
	})

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("request exceeded the configured timeout of %s", a.timeout)
		}
		return nil, fmt.Errorf("send create application request: %w", err)
	}
	defer resp.Body.Close()

	slogger.Debug(ctx, "Create application response received", slogger.Fields{
		"status": resp.StatusCode,
	})

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("The server response status %d.", resp.StatusCode)
	}

	var result ApplicationCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode create application response: %w", err)
	}

	return &result, nil
}

// requestID returns the request ID carried by ctx, or a fresh one when
// the context has none.
func requestID(ctx context.Context) string {
	if id := slogger.RequestIDFrom(ctx); id != "" {
		return id
	}
	return uuid.New().String()
}

// isTimeout reports whether err represents an exceeded request deadline
// rather than some other transport failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
