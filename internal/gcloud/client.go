// Package gcloud is a minimal JSON-over-HTTPS client for Google Cloud REST
// APIs. It authenticates either with an API key or with OAuth2 credentials.
package gcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
	defaultTimeout     = 90 * time.Second
	maxErrorPreview    = 500
)

// Options configures a Client.
type Options struct {
	// Endpoint is the API base URL, e.g. https://speech.googleapis.com.
	Endpoint string
	// APIKey, when set, is sent as the key query parameter and no OAuth2
	// credentials are looked up.
	APIKey string
	// CredentialsFile is a service account JSON file path or the JSON itself.
	// Empty means application default credentials.
	CredentialsFile string
	// HTTPClient overrides the transport. Tests point it at httptest servers.
	HTTPClient *http.Client
}

// Client performs authenticated JSON POST calls against one Google API.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// APIError is the error envelope Google REST APIs return.
type APIError struct {
	HTTPStatus int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Status     string `json:"status"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("google api returned status %d", e.HTTPStatus)
	}
	return fmt.Sprintf("google api error %d %s: %s", e.Code, e.Status, e.Message)
}

// New builds a Client. Credentials are resolved once here.
func New(ctx context.Context, opts Options) (*Client, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	if endpoint == "" {
		return nil, fmt.Errorf("gcloud: endpoint is required")
	}

	apiKey := strings.TrimSpace(opts.APIKey)
	httpClient := opts.HTTPClient
	if httpClient == nil {
		if apiKey != "" {
			httpClient = &http.Client{Timeout: defaultTimeout}
		} else {
			creds, err := loadCredentials(ctx, strings.TrimSpace(opts.CredentialsFile))
			if err != nil {
				return nil, err
			}
			httpClient = oauth2.NewClient(ctx, creds.TokenSource)
			httpClient.Timeout = defaultTimeout
		}
	}

	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: httpClient,
	}, nil
}

func loadCredentials(ctx context.Context, keyData string) (*google.Credentials, error) {
	if keyData == "" {
		creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("gcloud: find default credentials: %w", err)
		}
		return creds, nil
	}

	jsonData := []byte(keyData)
	if !strings.HasPrefix(keyData, "{") {
		raw, err := os.ReadFile(keyData)
		if err != nil {
			return nil, fmt.Errorf("gcloud: read credentials file %q: %w", keyData, err)
		}
		jsonData = raw
	}
	creds, err := google.CredentialsFromJSON(ctx, jsonData, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("gcloud: parse credentials: %w", err)
	}
	return creds, nil
}

// PostJSON sends in as JSON to endpoint+path and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("gcloud: marshal request: %w", err)
	}

	target := c.endpoint + path
	if c.apiKey != "" {
		target += "?key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("gcloud: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gcloud: post %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gcloud: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{HTTPStatus: resp.StatusCode}
		var envelope struct {
			Error *APIError `json:"error"`
		}
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error != nil {
			envelope.Error.HTTPStatus = resp.StatusCode
			apiErr = envelope.Error
		} else {
			apiErr.Message = preview(raw)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("gcloud: decode response: %w", err)
	}
	return nil
}

func preview(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > maxErrorPreview {
		return s[:maxErrorPreview] + "..."
	}
	return s
}
