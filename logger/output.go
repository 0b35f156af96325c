package logger

// Output controls what categories of information the CLI prints at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
//	0 (default) - changed files, check failures, final status
//	1 (-v)      - + per-file progress, unchanged files
//	2 (-vv)     - + timing, loaded config, skipped declarations
//	3 (-vvv)    - + every synthesized summary

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Changed files, check findings
	OutputErrors                           // Errors with hints
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress  // Per-file progress
	OutputUnchanged // Files that needed no edits

	// Level 2 (-vv) - Detailed
	OutputTiming  // Durations
	OutputConfig  // Config values loaded/applied
	OutputSkipped // Declarations skipped (no strategy, already documented)

	// Level 3 (-vvv) - Full dump
	OutputSummaries // Every synthesized summary
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress:  VerbosityInfo,
	OutputUnchanged: VerbosityInfo,

	OutputTiming:  VerbosityDebug,
	OutputConfig:  VerbosityDebug,
	OutputSkipped: VerbosityDebug,

	OutputSummaries: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}
