package excel

// ReaderConfig controls how raw cells become table columns
type ReaderConfig struct {
	// Sheet is the worksheet read from .xlsx files
	Sheet string `json:"sheet"`
	// NumericThreshold is the share of non-missing cells that must parse as
	// numbers for a column to be loaded as numeric. Cells that fail to parse
	// in a numeric column become missing.
	NumericThreshold float64 `json:"numeric_threshold"`
	// MissingTokens are cell values loaded as missing
	MissingTokens []string `json:"missing_tokens"`
}

// DefaultReaderConfig keeps every column categorical unless all of its
// non-empty cells are numbers, so placeholder tokens such as " " survive for
// the missing-value checks.
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		Sheet:            "Sheet1",
		NumericThreshold: 1.0,
		MissingTokens:    []string{""},
	}
}

// LenientReaderConfig accepts columns where at least 80% of the cells are numbers
func LenientReaderConfig() ReaderConfig {
	cfg := DefaultReaderConfig()
	cfg.NumericThreshold = 0.8
	return cfg
}
