package logger

// OutputCategory defines a category of CLI output that can be enabled/disabled.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed.
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota // Answers
	OutputErrors                        // Errors with hints

	// Level 1 (-v)
	OutputStartup      // Dataset and gateway summary
	OutputSessionStats // Session statistics on exit

	// Level 2 (-vv)
	OutputTokens // Token stream and matched shape
	OutputTiming // Per-query timing
	OutputConfig // Config values loaded

	// Level 3 (-vvv)
	OutputGatewayCalls // Outbound rewrite requests

	// Level 4 (-vvvv)
	OutputGatewayBodies // Full rewrite prompts and replies
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults: VerbosityUser,
	OutputErrors:  VerbosityUser,

	OutputStartup:      VerbosityInfo,
	OutputSessionStats: VerbosityInfo,

	OutputTokens: VerbosityDebug,
	OutputTiming: VerbosityDebug,
	OutputConfig: VerbosityDebug,

	OutputGatewayCalls: VerbosityTrace,

	OutputGatewayBodies: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:       "results",
	OutputErrors:        "errors",
	OutputStartup:       "startup",
	OutputSessionStats:  "session-stats",
	OutputTokens:        "tokens",
	OutputTiming:        "timing",
	OutputConfig:        "config",
	OutputGatewayCalls:  "gateway",
	OutputGatewayBodies: "gateway-bodies",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
