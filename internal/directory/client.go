// Package directory implements the client for the external identity provider:
// client-credentials token acquisition and the paged user listing fetch.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/4Lienau/directory-sync/internal/config"
)

const (
	// userAgent is the user agent string for provider HTTP requests
	userAgent = "directory-sync/1.0"

	// maxResponseSize is the maximum allowed response size (50MB)
	maxResponseSize = 50 * 1024 * 1024

	// maxErrorBodySize caps how much of an error response body is carried in errors
	maxErrorBodySize = 2048

	// userSelectFields is the fixed field projection requested from the
	// user listing endpoint.
	userSelectFields = "id,displayName,mail,userPrincipalName,jobTitle,department,accountEnabled,createdDateTime"

	// defaultBaseURL is the provider API base URL
	defaultBaseURL = "https://graph.microsoft.com"
)

// Client fetches user records from the external directory.
type Client interface {
	// FetchUsers retrieves the complete user collection page-by-page and
	// returns it in fetch order. A failure on any page fails the whole
	// fetch; no partial result is returned.
	FetchUsers(ctx context.Context) ([]Record, error)
}

type graphClient struct {
	httpClient    *http.Client
	tokenEndpoint string
	baseURL       string
	clientID      string
	clientSecret  string
	scope         string
	pageSize      int
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type userPage struct {
	Value    []graphUser `json:"value"`
	NextLink string      `json:"@odata.nextLink"`
}

// NewClient creates a directory client from the given configuration. The
// client secret is resolved immediately so missing credentials surface
// before any network call.
func NewClient(cfg *config.DirectoryConfig) (Client, error) {
	secret, err := cfg.GetClientSecret()
	if err != nil {
		return nil, err
	}

	tokenEndpoint := cfg.TokenEndpoint
	if tokenEndpoint == "" {
		tokenEndpoint = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &graphClient{
		httpClient: &http.Client{
			Timeout: cfg.GetRequestTimeout(),
		},
		tokenEndpoint: tokenEndpoint,
		baseURL:       baseURL,
		clientID:      cfg.ClientID,
		clientSecret:  secret,
		scope:         cfg.GetScope(),
		pageSize:      cfg.GetPageSize(),
	}, nil
}

// FetchUsers acquires a bearer token and pages through the user listing
// endpoint until the next-page link is absent.
func (c *graphClient) FetchUsers(ctx context.Context) ([]Record, error) {
	token, err := c.acquireToken(ctx)
	if err != nil {
		return nil, err
	}

	var records []Record
	pageURL := fmt.Sprintf("%s/v1.0/users?$select=%s&$top=%d", c.baseURL, userSelectFields, c.pageSize)
	pageCount := 0

	for pageURL != "" {
		page, err := c.fetchPage(ctx, pageURL, token)
		if err != nil {
			return nil, err
		}
		pageCount++

		for i := range page.Value {
			records = append(records, page.Value[i].normalize())
		}
		pageURL = page.NextLink
	}

	slog.Debug("Fetched directory users", "users", len(records), "pages", pageCount)

	return records, nil
}

// acquireToken performs the client-credentials grant against the token endpoint.
func (c *graphClient) acquireToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("scope", c.scope)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &TransportError{Op: "token request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Op: "token request", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := readLimitedBody(resp.Body)
	if err != nil {
		return "", &TransportError{Op: "token response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &AuthenticationError{
			StatusCode: resp.StatusCode,
			Body:       truncateBody(body),
		}
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", &ProtocolError{
			StatusCode: resp.StatusCode,
			Body:       truncateBody(body),
			Message:    "failed to decode token response",
		}
	}
	if token.AccessToken == "" {
		return "", &ProtocolError{
			StatusCode: resp.StatusCode,
			Message:    "token response missing access_token",
		}
	}

	return token.AccessToken, nil
}

// fetchPage performs one authenticated GET against the user listing endpoint.
func (c *graphClient) fetchPage(ctx context.Context, pageURL, token string) (*userPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &TransportError{Op: "user listing", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "user listing", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := readLimitedBody(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "user listing response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProtocolError{
			StatusCode: resp.StatusCode,
			Body:       truncateBody(body),
			Message:    "user listing request failed",
		}
	}

	var page userPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &ProtocolError{
			StatusCode: resp.StatusCode,
			Body:       truncateBody(body),
			Message:    "failed to decode user listing response",
		}
	}

	return &page, nil
}

// readLimitedBody reads a response body with a size limit to prevent
// unbounded memory use on a misbehaving provider.
func readLimitedBody(r io.Reader) ([]byte, error) {
	limited := io.LimitReader(r, maxResponseSize+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > maxResponseSize {
		return nil, errors.New("response size exceeds maximum allowed size")
	}
	return body, nil
}

func truncateBody(body []byte) string {
	s := string(body)
	if len(s) > maxErrorBodySize {
		return s[:maxErrorBodySize]
	}
	return s
}
