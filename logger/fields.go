package logger

// Standard field names for structured logging across shufa.
const (
	// Identity and context
	FieldSessionID = "session_id"
	FieldComponent = "component"

	// Query pipeline
	FieldSentence = "sentence"
	FieldShape    = "shape"
	FieldCategory = "category"
	FieldTokens   = "tokens"
	FieldSkipped  = "skipped"

	// Dataset
	FieldDataset       = "dataset"
	FieldCalligraphers = "calligraphers"
	FieldStyles        = "styles"

	// Gateway
	FieldModel   = "model"
	FieldAttempt = "attempt"

	// Timing and status
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
	FieldCount      = "count"
)
