package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRecordSplitsAttributes(t *testing.T) {
	var rec CustomerRecord
	require.NoError(t, json.Unmarshal([]byte(`{
		"gender": "Female", "SeniorCitizen": 0, "tenure": 0,
		"MultipleLines": "No phone service", "MonthlyCharges": 29.85
	}`), &rec))

	numeric := rec.Numeric()
	require.NotNil(t, numeric["SeniorCitizen"])
	assert.Equal(t, 0.0, *numeric["SeniorCitizen"])
	require.NotNil(t, numeric["tenure"])
	assert.Equal(t, 0.0, *numeric["tenure"])
	assert.Nil(t, numeric["TotalCharges"])

	categorical := rec.Categorical()
	assert.Len(t, categorical, 15)
	assert.Equal(t, "Female", categorical["gender"])
	assert.Equal(t, "No phone service", categorical["MultipleLines"])
}

func TestPredictResponseShape(t *testing.T) {
	p := Prediction{Class: 1, ClassName: ClassNames[1]}
	body, err := json.Marshal(PredictResponse{Success: true, Result: p.Result()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"result":{"class":"1","class_name":"Churn"}}`, string(body))

	body, err = json.Marshal(PredictResponse{Message: "bad input"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"bad input"}`, string(body))
}
