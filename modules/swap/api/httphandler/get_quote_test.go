package httphandler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toan5ks1/code-challenge/modules/swap/config"
	"github.com/toan5ks1/code-challenge/pkg/errorhandler"
)

func TestGetQuote(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorhandler.NewHTTPErrorHandler(),
	})
	require.NoError(t, New(config.DefaultPrecision).Mount(app))

	testcases := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
		contains       []string
	}{
		{
			name:           "quote",
			body:           `{"fromCurrency":{"currency":"A","price":2},"toCurrency":{"currency":"B","price":4},"amountToSend":10}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"error":null,"result":{"fromCurrency":{"currency":"A","price":2},"toCurrency":{"currency":"B","price":4},"amountToSend":"10","exchangeRate":"0.5","amountToReceive":"5"}}`,
		},
		{
			name:           "reverse",
			body:           `{"fromCurrency":{"currency":"A","price":2},"toCurrency":{"currency":"B","price":4},"amountToSend":"10","reverse":true}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"error":null,"result":{"fromCurrency":{"currency":"B","price":4},"toCurrency":{"currency":"A","price":2},"amountToSend":"10","exchangeRate":"2","amountToReceive":"20"}}`,
		},
		{
			name:           "validation",
			body:           `{"fromCurrency":{"currency":"","price":2},"toCurrency":{"currency":"B","price":0},"amountToSend":0}`,
			expectedStatus: http.StatusBadRequest,
			contains:       []string{"Please select a currency", "Price must be greater than 0", "Amount must be greater than 0"},
		},
		{
			name:           "malformed",
			body:           `{"fromCurrency":`,
			expectedStatus: http.StatusBadRequest,
			contains:       []string{"invalid request body"},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/swap/quote", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode, string(raw))
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, string(raw))
			}
			for _, s := range tc.contains {
				assert.Contains(t, string(raw), s)
			}
		})
	}
}
