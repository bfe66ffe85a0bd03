package identity_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/authapp/identity/pkg/identitysdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL := setupServer(t)

	for _, path := range []string{"/livez", "/readyz"} {
		t.Run(path, func(t *testing.T) {
			req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, baseURL+path, nil)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, http.StatusOK, resp.StatusCode)

			var health identitysdk.HealthResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
			require.Equal(t, "ok", health.Status)
			require.Equal(t, "test", health.Version)
			require.NotEmpty(t, health.Uptime)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	baseURL := setupServer(t)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, baseURL+"/metrics", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}
