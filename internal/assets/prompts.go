// Package assets provides the embedded prompt templates for transcript
// classification and summary generation. Prompts are stored as text files
// under prompts/ and embedded at compile time.
package assets

import (
	_ "embed"
)

// ClassificationPrompt instructs the model to label a transcript as
// companies, technology, or general.
//
//go:embed prompts/classification.txt
var ClassificationPrompt string

// GeneralSummaryPrompt produces a free-text summary with title and tags.
//
//go:embed prompts/general-summary.txt
var GeneralSummaryPrompt string

// CompanySummaryPrompt produces per-company structured sections.
//
//go:embed prompts/company-summary.txt
var CompanySummaryPrompt string

// TechnologySummaryPrompt produces the four-line Topic/Tech/Insight/Takeaway
// summary body.
//
//go:embed prompts/technology-summary.txt
var TechnologySummaryPrompt string
