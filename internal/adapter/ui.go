package adapter

import m "github.com/imp-refactor/imp-refactor/internal/model"

// UI presents detection/apply results to the user. Implementations
// range from plain text (SimpleUI, for piped output and CI) to an
// interactive Bubble Tea review screen (TUI, for `apply --interactive`).
type UI interface {
	// DisplayDetection renders a full detection result: per-file
	// references and their verdicts, plus the run's diagnostics.
	DisplayDetection(result m.DetectionResult) error

	// DisplayRegistry renders a flattened registry tree.
	DisplayRegistry(paths []m.DottedPath) error

	// ReviewPlans lets the user decide, file by file, whether to apply
	// each FilePlan. Returns the subset the user approved. Non-interactive
	// implementations approve every plan without prompting.
	ReviewPlans(plans []m.FilePlan, diffs map[string]string) ([]m.FilePlan, error)
}
