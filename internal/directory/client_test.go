package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4Lienau/directory-sync/internal/config"
)

func newTestClient(t *testing.T, tokenURL, baseURL string) Client {
	t.Helper()
	t.Setenv("DIRSYNC_CLIENT_SECRET", "test-secret")

	client, err := NewClient(&config.DirectoryConfig{
		TenantID:      "test-tenant",
		ClientID:      "test-client",
		TokenEndpoint: tokenURL,
		BaseURL:       baseURL,
		PageSize:      2,
	})
	require.NoError(t, err)
	return client
}

func tokenHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "test-client", r.PostForm.Get("client_id"))
		assert.Equal(t, "test-secret", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}
}

func TestFetchUsersPaginates(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/token", tokenHandler(t))

	page := 0
	mux.HandleFunc("/v1.0/users", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		page++
		w.Header().Set("Content-Type", "application/json")
		switch page {
		case 1:
			assert.Equal(t, "2", r.URL.Query().Get("$top"))
			fmt.Fprintf(w, `{
				"value": [
					{"id": " u1 ", "displayName": "Alice", "department": "Engineering", "accountEnabled": true, "createdDateTime": "2024-03-01T10:00:00Z"},
					{"id": "u2", "displayName": "Bob", "department": "Sales", "accountEnabled": false}
				],
				"@odata.nextLink": %q
			}`, server.URL+"/v1.0/users?page=2")
		default:
			fmt.Fprint(w, `{"value": [{"id": "u3", "displayName": "Carol", "department": "n/a", "accountEnabled": true}]}`)
		}
	})

	client := newTestClient(t, server.URL+"/token", server.URL)

	records, err := client.FetchUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Fetch order is preserved and attributes are trimmed.
	assert.Equal(t, "u1", records[0].ID)
	assert.Equal(t, "Alice", records[0].DisplayName)
	assert.True(t, records[0].AccountEnabled)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), records[0].CreatedDateTime)
	assert.Equal(t, "u2", records[1].ID)
	assert.Equal(t, "u3", records[2].ID)
}

func TestFetchUsersTokenRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": "invalid_client"}`)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server.URL, server.URL)

	_, err := client.FetchUsers(context.Background())
	require.Error(t, err)

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Contains(t, authErr.Body, "invalid_client")
}

func TestFetchUsersTokenMissingAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"token_type": "Bearer"}`)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server.URL, server.URL)

	_, err := client.FetchUsers(context.Background())
	require.Error(t, err)

	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Contains(t, protoErr.Message, "access_token")
}

func TestFetchUsersPageFailureFailsWholeFetch(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/token", tokenHandler(t))

	page := 0
	mux.HandleFunc("/v1.0/users", func(w http.ResponseWriter, _ *http.Request) {
		page++
		if page == 1 {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"value": [{"id": "u1"}], "@odata.nextLink": %q}`, server.URL+"/v1.0/users?page=2")
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": "server error"}`)
	})

	client := newTestClient(t, server.URL+"/token", server.URL)

	records, err := client.FetchUsers(context.Background())
	require.Error(t, err)
	assert.Nil(t, records, "partial results must not be returned")

	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, http.StatusInternalServerError, protoErr.StatusCode)
}

func TestFetchUsersMalformedPage(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/token", tokenHandler(t))
	mux.HandleFunc("/v1.0/users", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"value": [`)
	})

	client := newTestClient(t, server.URL+"/token", server.URL)

	_, err := client.FetchUsers(context.Background())
	require.Error(t, err)

	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Contains(t, protoErr.Message, "decode")
}

func TestFetchUsersTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close()

	client := newTestClient(t, server.URL, server.URL)

	_, err := client.FetchUsers(context.Background())
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestNewClientMissingSecret(t *testing.T) {
	t.Setenv("DIRSYNC_CLIENT_SECRET", "")

	_, err := NewClient(&config.DirectoryConfig{
		TenantID: "test-tenant",
		ClientID: "test-client",
	})
	require.Error(t, err)

	var cfgErr *config.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNormalizeMalformedCreatedDateTime(t *testing.T) {
	t.Parallel()

	u := graphUser{
		ID:              "u1",
		DisplayName:     "Alice",
		CreatedDateTime: "yesterday",
	}

	rec := u.normalize()
	assert.Equal(t, "u1", rec.ID)
	assert.True(t, rec.CreatedDateTime.IsZero())
}

func TestNormalizeEmptyCreatedDateTime(t *testing.T) {
	t.Parallel()

	u := graphUser{ID: "u2"}
	rec := u.normalize()
	assert.True(t, rec.CreatedDateTime.IsZero())
}
