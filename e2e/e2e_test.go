//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseURL string

func TestMain(m *testing.M) {
	baseURL = os.Getenv("FINANCED_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Wait for the service to report ready.
	for i := 0; i < 30; i++ {
		resp, err := http.Get(baseURL + "/readyz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		time.Sleep(2 * time.Second)
	}

	os.Exit(m.Run())
}

func TestHealthCheck(t *testing.T) {
	resp, err := http.Get(baseURL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestQuoteFlow(t *testing.T) {
	// Step 1: Pick a vehicle from the catalog.
	resp, err := http.Get(baseURL + "/api/v1/vehicles")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var catalog struct {
		Vehicles []struct {
			ID string `json:"id"`
		} `json:"vehicles"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&catalog))
	require.NotEmpty(t, catalog.Vehicles)

	// Step 2: Quote a lease and a finance plan for it.
	for _, financeType := range []string{"finance", "lease"} {
		t.Run(financeType, func(t *testing.T) {
			quote := postJSON(t, "/api/v1/quotes", map[string]any{
				"vehicle_id":     catalog.Vehicles[0].ID,
				"credit_score":   720,
				"term_months":    36,
				"finance_type":   financeType,
				"annual_mileage": 12000,
			})
			defer quote.Body.Close()
			require.Equal(t, http.StatusOK, quote.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(quote.Body).Decode(&body))
			assert.Equal(t, financeType, body["finance_type"])
			assert.NotEmpty(t, body["monthly_payment"])
		})
	}

	// Step 3: The same quote is served from cache.
	again := postJSON(t, "/api/v1/quotes", map[string]any{
		"vehicle_id":     catalog.Vehicles[0].ID,
		"credit_score":   720,
		"term_months":    36,
		"finance_type":   "finance",
		"annual_mileage": 12000,
	})
	defer again.Body.Close()
	var cached map[string]any
	require.NoError(t, json.NewDecoder(again.Body).Decode(&cached))
	assert.Equal(t, true, cached["cached"])
}

func TestInvalidQuote(t *testing.T) {
	resp := postJSON(t, "/api/v1/quotes", map[string]any{
		"vehicle_id":   "1",
		"credit_score": 1200,
		"term_months":  36,
		"finance_type": "finance",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(baseURL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}
