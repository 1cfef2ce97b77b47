package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"telcochurn/adapters/memory"
	"telcochurn/app"
	"telcochurn/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPredictor struct {
	mock.Mock
}

func (m *mockPredictor) Predict(ctx context.Context, record models.CustomerRecord) (*models.Prediction, error) {
	args := m.Called(ctx, record)
	p, _ := args.Get(0).(*models.Prediction)
	return p, args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestBackend(t *testing.T, predictor *mockPredictor) (*Backend, *app.PreparationService) {
	t.Helper()
	predictions := app.NewPredictionService(predictor, memory.NewPredictionRepository(), nil)
	preparation := app.NewPreparationService(memory.NewRunRepository(), nil)
	backend := NewBackend(BackendConfig{
		Target:   "Churn",
		IDColumn: "customerID",
		Fold:     1.5,
	}, predictions, preparation, nil)
	return backend, preparation
}

const customerJSON = `{
	"gender": "Female", "SeniorCitizen": 0, "Partner": "Yes", "Dependents": "No",
	"tenure": 1, "PhoneService": "No", "MultipleLines": "No phone service",
	"InternetService": "DSL", "OnlineSecurity": "No", "OnlineBackup": "Yes",
	"DeviceProtection": "No", "TechSupport": "No", "StreamingTV": "No",
	"StreamingMovies": "No", "Contract": "Month-to-month", "PaperlessBilling": "Yes",
	"PaymentMethod": "Electronic check", "MonthlyCharges": 29.85, "TotalCharges": 29.85
}`

func serve(b *Backend, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	b.Router().ServeHTTP(w, req)
	return w
}

func TestStaticPages(t *testing.T) {
	backend, _ := newTestBackend(t, new(mockPredictor))

	tests := []struct {
		path string
		want string
	}{
		{"/", "<h3>This is the Backend for My Modeling Program</h3>"},
		{"/predict", "<p>Please use the POST method to predict <em>inference model</em></p>"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := serve(backend, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		})
	}
}

func TestPredictSuccess(t *testing.T) {
	predictor := new(mockPredictor)
	predictor.On("Predict", mock.Anything, mock.AnythingOfType("models.CustomerRecord")).
		Return(&models.Prediction{Class: 1, ClassName: "Churn", Probability: 0.81}, nil)
	backend, _ := newTestBackend(t, predictor)

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(customerJSON))
	req.Header.Set("Content-Type", "application/json")
	w := serve(backend, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"result":{"class":"1","class_name":"Churn"}}`, w.Body.String())

	record := predictor.Calls[0].Arguments.Get(1).(models.CustomerRecord)
	assert.Equal(t, "Electronic check", record.PaymentMethod)
	require.NotNil(t, record.SeniorCitizen)
	assert.Equal(t, 0, *record.SeniorCitizen)

	assert.Equal(t, 1.0, testutil.ToFloat64(backend.Metrics().predictions.WithLabelValues("1")))
	assert.Equal(t, 0.0, testutil.ToFloat64(backend.Metrics().predictionErrors))
}

func TestPredictRejectsInvalidRecord(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"gender":`},
		{"missing field", strings.Replace(customerJSON, `"Contract": "Month-to-month",`, "", 1)},
		{"senior citizen out of range", strings.Replace(customerJSON, `"SeniorCitizen": 0`, `"SeniorCitizen": 2`, 1)},
		{"negative charges", strings.Replace(customerJSON, `"MonthlyCharges": 29.85`, `"MonthlyCharges": -1`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predictor := new(mockPredictor)
			backend, _ := newTestBackend(t, predictor)

			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := serve(backend, req)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp models.PredictResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
			assert.Nil(t, resp.Result)

			predictor.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
			assert.Equal(t, 1.0, testutil.ToFloat64(backend.Metrics().predictionErrors))
		})
	}
}

func TestPredictAllowsZeroTenureWithoutTotalCharges(t *testing.T) {
	predictor := new(mockPredictor)
	predictor.On("Predict", mock.Anything, mock.Anything).
		Return(&models.Prediction{Class: 0, ClassName: "Not Churn", Probability: 0.2}, nil)
	backend, _ := newTestBackend(t, predictor)

	body := strings.Replace(customerJSON, `"tenure": 1`, `"tenure": 0`, 1)
	body = strings.Replace(body, `, "TotalCharges": 29.85`, "", 1)
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := serve(backend, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"result":{"class":"0","class_name":"Not Churn"}}`, w.Body.String())
	record := predictor.Calls[0].Arguments.Get(1).(models.CustomerRecord)
	assert.Nil(t, record.TotalCharges)
}

func TestPredictModelFailure(t *testing.T) {
	predictor := new(mockPredictor)
	predictor.On("Predict", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("unknown category"))
	backend, _ := newTestBackend(t, predictor)

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(customerJSON))
	req.Header.Set("Content-Type", "application/json")
	w := serve(backend, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), "unknown category")
}

// churnCSV has 41 customers; the last has an extreme tenure and total, and
// customer 5 has a blank TotalCharges.
func churnCSV() string {
	var sb strings.Builder
	sb.WriteString("customerID,tenure,MonthlyCharges,TotalCharges,Churn\n")
	for i := 0; i < 41; i++ {
		tenure := i + 1
		total := fmt.Sprintf("%d", (i+1)*50)
		if i == 40 {
			tenure, total = 1000, "50000"
		}
		if i == 5 {
			total = " "
		}
		fmt.Fprintf(&sb, "%04d-CUST,%d,50,%s,%s\n", i, tenure, total, []string{"No", "Yes"}[i%2])
	}
	return sb.String()
}

func uploadRequest(t *testing.T, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/datasets/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAnalyzeDatasetAndFetchRun(t *testing.T) {
	backend, _ := newTestBackend(t, new(mockPredictor))

	w := serve(backend, uploadRequest(t, "telco.csv", churnCSV(), nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool                   `json:"success"`
		Report  app.PreparationReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "telco.csv", resp.Report.Source)
	assert.Equal(t, 41, resp.Report.RowsBefore)
	assert.Equal(t, 40, resp.Report.RowsAfter)
	assert.Equal(t, []string{"TotalCharges"}, resp.Report.Imputed)
	require.Len(t, resp.Report.Summary, 3)
	assert.Equal(t, "tenure", resp.Report.Summary[0].Feature)
	assert.Equal(t, 1, resp.Report.Summary[0].TotalCount)
	assert.Equal(t, 1.0, testutil.ToFloat64(backend.Metrics().preparations))

	w = serve(backend, httptest.NewRequest(http.MethodGet, "/api/runs/"+resp.Report.RunID.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)
	var runResp struct {
		Run models.RemediationRun `json:"run"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runResp))
	assert.Equal(t, "telco.csv", runResp.Run.Source)
	assert.Equal(t, 40, runResp.Run.RowsAfter)
	assert.Contains(t, string(runResp.Run.Report), `"decisions"`)
	assert.Contains(t, string(runResp.Run.Report), `"summary"`)

	w = serve(backend, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Runs []models.RemediationRun `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Runs, 1)
}

func TestAnalyzeWithoutTargetColumn(t *testing.T) {
	backend, _ := newTestBackend(t, new(mockPredictor))
	content := "tenure,MonthlyCharges\n1,20\n2,30\n3,40\n"

	w := serve(backend, uploadRequest(t, "plain.csv", content, map[string]string{"fold": "3"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"fold":3`)
}

func TestAnalyzeRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		fields   map[string]string
	}{
		{"missing file", "", nil},
		{"unparseable fold", "telco.csv", map[string]string{"fold": "wide"}},
		{"unsupported fold", "telco.csv", map[string]string{"fold": "2"}},
		{"unknown target", "telco.csv", map[string]string{"target": "Exited"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, _ := newTestBackend(t, new(mockPredictor))
			w := serve(backend, uploadRequest(t, tt.filename, churnCSV(), tt.fields))
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestGetRunErrors(t *testing.T) {
	backend, _ := newTestBackend(t, new(mockPredictor))

	w := serve(backend, httptest.NewRequest(http.MethodGet, "/api/runs/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(backend, httptest.NewRequest(http.MethodGet, "/api/runs/not-a-run", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(backend, httptest.NewRequest(http.MethodGet, "/api/runs?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	predictor := new(mockPredictor)
	predictor.On("Predict", mock.Anything, mock.Anything).
		Return(&models.Prediction{Class: 0, ClassName: "Not Churn"}, nil)
	backend, _ := newTestBackend(t, predictor)

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(customerJSON))
	req.Header.Set("Content-Type", "application/json")
	serve(backend, req)

	w := serve(backend, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `telcochurn_predictions_total{class="0"} 1`)
	assert.Contains(t, w.Body.String(), "telcochurn_request_duration_seconds")
}
