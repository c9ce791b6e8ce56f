// Package summarize classifies reel transcripts and generates structured
// summaries with OpenAI chat completions. Output is a tagged union of three
// variants (companies, technology, general), validated against its schema
// before it is accepted; malformed generations are rejected, never coerced.
package summarize

import (
	"fmt"
	"strings"

	"github.com/fpang/reel-digest/internal/store"
)

// CompanySection is one company's entry in a companies summary.
type CompanySection struct {
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	Industry    string `json:"industry"`
	Funding     string `json:"funding"`
	Notes       string `json:"notes"`
}

// Summary is the tagged union persisted as summary.json. Which fields are
// populated depends on Type:
//
//   - companies: Sections, Tags, Companies
//   - technology: Title, Body (exactly 4 labeled lines), Tags
//   - general: Title, Body (free text), Tags
type Summary struct {
	Type      store.SummaryType `json:"type"`
	Title     string            `json:"title,omitempty"`
	Body      string            `json:"summary,omitempty"`
	Tags      []string          `json:"tags"`
	Sections  []CompanySection  `json:"summaries,omitempty"`
	Companies []string          `json:"companies,omitempty"`
}

// technologyLabels are the required line prefixes of a technology summary
// body, in order.
var technologyLabels = []string{"Topic:", "Tech:", "Insight:", "Takeaway:"}

// Validate checks the summary against the schema for its type.
func (s *Summary) Validate() error {
	switch s.Type {
	case store.SummaryCompanies:
		if len(s.Sections) == 0 {
			return fmt.Errorf("companies summary has no company sections")
		}
		for i, sec := range s.Sections {
			if strings.TrimSpace(sec.CompanyName) == "" {
				return fmt.Errorf("companies summary section %d has no company name", i)
			}
		}
	case store.SummaryTechnology:
		lines := strings.Split(strings.TrimSpace(s.Body), "\n")
		if len(lines) != len(technologyLabels) {
			return fmt.Errorf("technology summary must contain exactly %d labeled lines, got %d", len(technologyLabels), len(lines))
		}
		for i, label := range technologyLabels {
			line := strings.TrimSpace(lines[i])
			if !strings.HasPrefix(line, label) || strings.TrimSpace(strings.TrimPrefix(line, label)) == "" {
				return fmt.Errorf("technology summary line %d must start with %q and have content, got %q", i+1, label, line)
			}
		}
	case store.SummaryGeneral:
		if strings.TrimSpace(s.Body) == "" {
			return fmt.Errorf("general summary has no summary text")
		}
	default:
		return fmt.Errorf("unknown summary type %q", s.Type)
	}
	return nil
}
