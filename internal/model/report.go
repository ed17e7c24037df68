package model

import "github.com/google/uuid"

// ReferenceReport is the machine-readable ("--json") shape of a single
// classified reference within a file.
type ReferenceReport struct {
	Tail       string  `json:"tail"`
	Range      Span    `json:"range"`
	Verdict    string  `json:"verdict"`
	Suggestion *string `json:"suggestion,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

// Span is the JSON-friendly form of ByteRange plus derived line/column.
type Span struct {
	Start  int `json:"start"`
	End    int `json:"end"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// FileReport groups every reference found in one file. ParseError is set
// when the file could only be parsed on a best-effort basis; References
// still reflects whatever the recovered AST yielded.
type FileReport struct {
	Path       string            `json:"path"`
	ParseError string            `json:"parse_error,omitempty"`
	References []ReferenceReport `json:"references"`
}

// Diagnostics tallies counts across a full detection run.
type Diagnostics struct {
	FilesScanned    int `json:"files_scanned"`
	ParseErrors     int `json:"parse_errors"`
	TotalReferences int `json:"total_references"`
	ValidReferences int `json:"valid_references"`
	BrokenCount     int `json:"broken_count"`
	Suggested       int `json:"suggested"`
	Unsuggestable   int `json:"unsuggestable"`
}

// DetectionResult is the full machine-readable output of a detect (or
// apply) run, stamped with a run ID so reports saved with
// detect --report can be told apart.
type DetectionResult struct {
	RunID       string       `json:"run_id"`
	Files       []FileReport `json:"files"`
	Diagnostics Diagnostics  `json:"diagnostics"`
}

// NewRunID mints a fresh run identifier.
func NewRunID() string { return uuid.NewString() }
