package models

// CustomerRecord is one customer's attributes as posted to /predict. Numbers
// are pointers so a legitimate zero passes the required check; TotalCharges
// may be omitted for customers in their first month.
type CustomerRecord struct {
	Gender           string   `json:"gender" binding:"required"`
	SeniorCitizen    *int     `json:"SeniorCitizen" binding:"required,oneof=0 1"`
	Partner          string   `json:"Partner" binding:"required"`
	Dependents       string   `json:"Dependents" binding:"required"`
	Tenure           *float64 `json:"tenure" binding:"required,gte=0"`
	PhoneService     string   `json:"PhoneService" binding:"required"`
	MultipleLines    string   `json:"MultipleLines" binding:"required"`
	InternetService  string   `json:"InternetService" binding:"required"`
	OnlineSecurity   string   `json:"OnlineSecurity" binding:"required"`
	OnlineBackup     string   `json:"OnlineBackup" binding:"required"`
	DeviceProtection string   `json:"DeviceProtection" binding:"required"`
	TechSupport      string   `json:"TechSupport" binding:"required"`
	StreamingTV      string   `json:"StreamingTV" binding:"required"`
	StreamingMovies  string   `json:"StreamingMovies" binding:"required"`
	Contract         string   `json:"Contract" binding:"required"`
	PaperlessBilling string   `json:"PaperlessBilling" binding:"required"`
	PaymentMethod    string   `json:"PaymentMethod" binding:"required"`
	MonthlyCharges   *float64 `json:"MonthlyCharges" binding:"required,gte=0"`
	TotalCharges     *float64 `json:"TotalCharges" binding:"omitempty,gte=0"`
}

// Numeric returns the numeric attributes by dataset column name. A missing
// TotalCharges is reported as absent.
func (c CustomerRecord) Numeric() map[string]*float64 {
	var senior *float64
	if c.SeniorCitizen != nil {
		v := float64(*c.SeniorCitizen)
		senior = &v
	}
	return map[string]*float64{
		"SeniorCitizen":  senior,
		"tenure":         c.Tenure,
		"MonthlyCharges": c.MonthlyCharges,
		"TotalCharges":   c.TotalCharges,
	}
}

// Categorical returns the categorical attributes by dataset column name
func (c CustomerRecord) Categorical() map[string]string {
	return map[string]string{
		"gender":           c.Gender,
		"Partner":          c.Partner,
		"Dependents":       c.Dependents,
		"PhoneService":     c.PhoneService,
		"MultipleLines":    c.MultipleLines,
		"InternetService":  c.InternetService,
		"OnlineSecurity":   c.OnlineSecurity,
		"OnlineBackup":     c.OnlineBackup,
		"DeviceProtection": c.DeviceProtection,
		"TechSupport":      c.TechSupport,
		"StreamingTV":      c.StreamingTV,
		"StreamingMovies":  c.StreamingMovies,
		"Contract":         c.Contract,
		"PaperlessBilling": c.PaperlessBilling,
		"PaymentMethod":    c.PaymentMethod,
	}
}

// Option lists offered by the prediction form
var (
	GenderOptions          = []string{"Female", "Male"}
	NoYesOptions           = []string{"No", "Yes"}
	NoPhoneServiceOptions  = []string{"No phone service"}
	NoInternetOptions      = []string{"No internet service"}
	MultipleLinesOptions   = []string{"No", "No phone service", "Yes"}
	InternetServiceOptions = []string{"DSL", "Fiber optic", "No"}
	InternetReducedOptions = []string{"DSL", "Fiber optic"}
	ContractOptions        = []string{"Month-to-month", "One year", "Two year"}
	PaymentMethodOptions   = []string{
		"Bank transfer (automatic)",
		"Credit card (automatic)",
		"Electronic check",
		"Mailed check",
	}
)
