package outlier

// Category describes the shape of a numeric feature's distribution
type Category string

const (
	CategoryNormal Category = "normal"
	CategorySkewed Category = "skewed"
)

// Rule selects how boundaries are estimated
type Rule string

const (
	RuleGaussian Rule = "gaussian" // mean ± fold·sd
	RuleIQR      Rule = "iqr"      // quartiles ± fold·IQR
)

// Action is the remediation chosen for a feature
type Action string

const (
	ActionNone Action = "none"
	ActionCap  Action = "cap"
	ActionTrim Action = "trim"
)

// Supported IQR multipliers
const (
	FoldModerate = 1.5
	FoldExtreme  = 3.0
)

// Severity thresholds on total outlier percentage
const (
	TrimBelowPct = 5.0
	CapBelowPct  = 15.0
)

// Skewness magnitude under which a feature counts as normal (exclusive)
const NormalSkewLimit = 0.5

// DistributionRecord is the skewness classification of one feature
type DistributionRecord struct {
	Feature  string   `json:"feature"`
	Skewness float64  `json:"skewness"`
	Category Category `json:"category"`
}

// Boundaries is the pair of thresholds outside which values are outliers
type Boundaries struct {
	Upper float64 `json:"upper"`
	Lower float64 `json:"lower"`
}

// Contains reports whether v lies within [Lower, Upper]
func (b Boundaries) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// Clamp pulls v into [Lower, Upper]
func (b Boundaries) Clamp(v float64) float64 {
	if v > b.Upper {
		return b.Upper
	}
	if v < b.Lower {
		return b.Lower
	}
	return v
}

// OutlierRecord holds the outlier counts of one feature
type OutlierRecord struct {
	Feature    string  `json:"feature"`
	Upper      float64 `json:"upper"`
	Lower      float64 `json:"lower"`
	RightCount int     `json:"right_count"`
	LeftCount  int     `json:"left_count"`
	RightPct   float64 `json:"right_pct"`
	LeftPct    float64 `json:"left_pct"`
	TotalCount int     `json:"total_count"`
	TotalPct   float64 `json:"total_pct"`
}

// SummaryRecord joins the classification and outlier totals of one feature
type SummaryRecord struct {
	Feature    string   `json:"feature"`
	Skewness   float64  `json:"skewness"`
	Category   Category `json:"category"`
	TotalCount int      `json:"total_count"`
	TotalPct   float64  `json:"total_pct"`
}

// Decision is the remediation assigned to one feature. Rule, Fold and Applied are
// only meaningful when Action is not ActionNone.
type Decision struct {
	Feature  string     `json:"feature"`
	Category Category   `json:"category"`
	TotalPct float64    `json:"total_pct"`
	Excepted bool       `json:"excepted"`
	Action   Action     `json:"action"`
	Rule     Rule       `json:"rule,omitempty"`
	Fold     float64    `json:"fold,omitempty"`
	Applied  Boundaries `json:"applied"`
}
