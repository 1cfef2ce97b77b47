package ui

import (
	"net/http"
	"strconv"
	"strings"

	"telcochurn/internal/errors"
	"telcochurn/models"
)

var seniorCitizenMap = map[string]int{"No": 0, "Yes": 1}

var addOnOptions = []string{"No", "Yes", "No internet service"}

type formOptions struct {
	Gender          []string
	NoYes           []string
	MultipleLines   []string
	InternetService []string
	AddOn           []string
	Contract        []string
	PaymentMethod   []string
}

type outcome struct {
	Churn    bool
	Result   string
	Action   string
	Extra    string
	GoodLuck string
}

type predictionPage struct {
	Title      string
	Heading    string
	Active     string
	Options    formOptions
	Form       map[string]string
	Outcome    *outcome
	InputError string
	Message    string
}

func newPredictionPage(form map[string]string) predictionPage {
	if form == nil {
		form = defaultForm()
	}
	return predictionPage{
		Title:   "Customer Behaviour Prediction",
		Heading: "Customer Behaviour Prediction",
		Active:  "prediction",
		Options: formOptions{
			Gender:          models.GenderOptions,
			NoYes:           models.NoYesOptions,
			MultipleLines:   models.MultipleLinesOptions,
			InternetService: models.InternetServiceOptions,
			AddOn:           addOnOptions,
			Contract:        models.ContractOptions,
			PaymentMethod:   models.PaymentMethodOptions,
		},
		Form: form,
	}
}

// defaultForm preselects the first option of every field
func defaultForm() map[string]string {
	return map[string]string{
		"gender":           models.GenderOptions[0],
		"SeniorCitizen":    "No",
		"Partner":          "No",
		"Dependents":       "No",
		"tenure":           "0",
		"PhoneService":     "No",
		"MultipleLines":    models.MultipleLinesOptions[0],
		"InternetService":  models.InternetServiceOptions[0],
		"OnlineSecurity":   "No",
		"OnlineBackup":     "No",
		"DeviceProtection": "No",
		"TechSupport":      "No",
		"StreamingTV":      "No",
		"StreamingMovies":  "No",
		"Contract":         models.ContractOptions[0],
		"PaperlessBilling": "No",
		"PaymentMethod":    models.PaymentMethodOptions[0],
		"MonthlyCharges":   "0",
		"TotalCharges":     "",
	}
}

func (a *App) handlePredictionForm(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, http.StatusOK, "prediction.html", newPredictionPage(nil))
}

// handlePredict forwards the form to the backend and renders its verdict
func (a *App) handlePredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderInputError(w, nil, err.Error())
		return
	}

	form := defaultForm()
	for field := range form {
		if v, ok := r.PostForm[field]; ok && len(v) > 0 {
			form[field] = strings.TrimSpace(v[0])
		}
	}

	record, err := customerFromForm(form)
	if err != nil {
		a.renderInputError(w, form, err.Error())
		return
	}

	resp, status, err := a.backend.Predict(r.Context(), record)
	if err != nil {
		a.logger.Error("prediction backend failed: %v", err)
		pg := newPredictionPage(form)
		pg.Message = "The prediction service is unavailable. Please try again later."
		a.renderTemplate(w, errors.HTTPStatus(err), "prediction.html", pg)
		return
	}
	if status == http.StatusBadRequest || !resp.Success || resp.Result == nil {
		a.renderInputError(w, form, resp.Message)
		return
	}

	pg := newPredictionPage(form)
	pg.Outcome = outcomeFor(resp.Result)
	a.renderTemplate(w, http.StatusOK, "prediction.html", pg)
}

func (a *App) renderInputError(w http.ResponseWriter, form map[string]string, message string) {
	pg := newPredictionPage(form)
	pg.InputError = msgInputError
	pg.Message = message
	a.renderTemplate(w, http.StatusBadRequest, "prediction.html", pg)
}

func outcomeFor(result *models.PredictionResult) *outcome {
	if result.ClassName == models.ClassNames[0] {
		return &outcome{Result: msgStayResult, Action: msgStayAction, Extra: msgStayExtra, GoodLuck: msgGoodLuck}
	}
	return &outcome{Churn: true, Result: msgChurnResult, Action: msgChurnAction, Extra: msgChurnExtra, GoodLuck: msgGoodLuck}
}

// customerFromForm converts form fields to a record. Senior citizen answers
// map No/Yes to 0/1; a blank total charge is left for the backend to impute.
func customerFromForm(form map[string]string) (models.CustomerRecord, error) {
	senior, ok := seniorCitizenMap[form["SeniorCitizen"]]
	if !ok {
		return models.CustomerRecord{}, errors.InvalidInput("SeniorCitizen must be No or Yes")
	}
	tenure, err := parseAmount(form, "tenure")
	if err != nil {
		return models.CustomerRecord{}, err
	}
	monthly, err := parseAmount(form, "MonthlyCharges")
	if err != nil {
		return models.CustomerRecord{}, err
	}
	var total *float64
	if form["TotalCharges"] != "" {
		if total, err = parseAmount(form, "TotalCharges"); err != nil {
			return models.CustomerRecord{}, err
		}
	}

	return models.CustomerRecord{
		Gender:           form["gender"],
		SeniorCitizen:    &senior,
		Partner:          form["Partner"],
		Dependents:       form["Dependents"],
		Tenure:           tenure,
		PhoneService:     form["PhoneService"],
		MultipleLines:    form["MultipleLines"],
		InternetService:  form["InternetService"],
		OnlineSecurity:   form["OnlineSecurity"],
		OnlineBackup:     form["OnlineBackup"],
		DeviceProtection: form["DeviceProtection"],
		TechSupport:      form["TechSupport"],
		StreamingTV:      form["StreamingTV"],
		StreamingMovies:  form["StreamingMovies"],
		Contract:         form["Contract"],
		PaperlessBilling: form["PaperlessBilling"],
		PaymentMethod:    form["PaymentMethod"],
		MonthlyCharges:   monthly,
		TotalCharges:     total,
	}, nil
}

func parseAmount(form map[string]string, field string) (*float64, error) {
	v, err := strconv.ParseFloat(form[field], 64)
	if err != nil {
		return nil, errors.InvalidInput(field + " must be a number")
	}
	return &v, nil
}
