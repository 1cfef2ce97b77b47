package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"telcochurn/internal/errors"
	"telcochurn/models"
)

// BackendClient posts customer records to the prediction backend
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendClient creates a client for the backend at baseURL
func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Predict sends record to POST /predict. A 200 or 400 answer is returned as
// decoded; any other outcome is an external service error.
func (c *BackendClient) Predict(ctx context.Context, record models.CustomerRecord) (*models.PredictResponse, int, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return nil, 0, errors.Wrap(err, "encode customer record")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, 0, errors.Wrap(err, "build prediction request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errors.ExternalServiceError("prediction backend", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadRequest {
		return nil, resp.StatusCode, errors.ExternalServiceError("prediction backend",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var out models.PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, resp.StatusCode, errors.ExternalServiceError("prediction backend",
			fmt.Errorf("decode response: %w", err))
	}
	return &out, resp.StatusCode, nil
}
