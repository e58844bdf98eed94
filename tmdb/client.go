package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultLanguage is sent as the language query parameter
	DefaultLanguage = "en"

	defaultTimeout = 15 * time.Second
)

// AppendedResources are the sub-resources requested alongside every title
var AppendedResources = []string{
	"external_ids",
	"videos",
	"images",
	"recommendations",
	"credits",
	"collection",
	"keywords",
}

// Client represents a TMDB API client
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	o := clientOptions{
		baseURL:  DefaultBaseURL,
		language: DefaultLanguage,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := url.Parse(o.baseURL); err != nil {
		return nil, fmt.Errorf("%w: bad base URL: %v", ErrInvalidConfig, err)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(o.baseURL, "/"),
		apiKey:     apiKey,
		language:   o.language,
		httpClient: httpClient,
		limiter:    o.limiter,
		logger:     logger.With().Str("component", "tmdb").Logger(),
	}, nil
}

// Details fetches one title together with all AppendedResources.
// Exactly one HTTP request is made per call.
func (c *Client) Details(ctx context.Context, kind MediaKind, id string) (*ContentRecord, error) {
	id = strings.TrimSpace(id)
	if !kind.Valid() || id == "" {
		return nil, &NotFoundError{Kind: kind, ID: id}
	}

	params := url.Values{}
	params.Set("language", c.language)
	params.Set("append_to_response", strings.Join(AppendedResources, ","))

	endpoint := "/" + kind.String() + "/" + url.PathEscape(id)
	body, err := c.doRequest(ctx, endpoint, params)
	if err != nil {
		var netErr *NetworkError
		if errors.As(err, &netErr) && netErr.StatusCode == http.StatusNotFound {
			return nil, &NotFoundError{Kind: kind, ID: id}
		}
		return nil, err
	}

	record, err := decodeRecord(body)
	if err != nil {
		return nil, err
	}
	record.Kind = kind

	if missing := record.MissingSubResources(); len(missing) > 0 {
		c.logger.Debug().
			Str("kind", kind.String()).
			Str("id", id).
			Strs("missing", missing).
			Msg("Response lacks appended sub-resources")
	}

	return record, nil
}

// doRequest performs a GET against endpoint. The API key is added here and
// never appears in logs.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &NetworkError{Err: err}
		}
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("append", params.Get("append_to_response")).
		Msg("Making TMDB API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: redact(err, c.apiKey)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("TMDB API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		netErr := &NetworkError{StatusCode: resp.StatusCode, Status: statusMessage(resp, body)}
		if netErr.IsUnauthorized() {
			netErr.Err = ErrUnauthorized
		}
		return nil, netErr
	}

	return body, nil
}

func decodeRecord(body []byte) (*ContentRecord, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return nil, &MalformedResponseError{Reason: "empty body"}
	}
	if !strings.HasPrefix(trimmed, "{") {
		return nil, &MalformedResponseError{Reason: "expected JSON object"}
	}

	var record ContentRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, &MalformedResponseError{Reason: "failed to parse response", Err: err}
	}
	return &record, nil
}

// statusMessage extracts TMDB's status_message from an error body, falling
// back to the HTTP status line
func statusMessage(resp *http.Response, body []byte) string {
	var apiErr struct {
		StatusMessage string `json:"status_message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.StatusMessage != "" {
		return apiErr.StatusMessage
	}
	return resp.Status
}

// redact strips the API key from transport errors, which embed the full URL
func redact(err error, apiKey string) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return &url.Error{
			Op:  uerr.Op,
			URL: strings.ReplaceAll(uerr.URL, apiKey, "REDACTED"),
			Err: uerr.Err,
		}
	}
	return err
}
