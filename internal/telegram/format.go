package telegram

import (
	"fmt"
	"strings"

	"github.com/fpang/reel-digest/internal/store"
	"github.com/fpang/reel-digest/internal/summarize"
)

const notSpecified = "Not specified"

// markdownEscaper neutralizes the Markdown control characters that free-text
// model output may contain.
var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
)

// FormatSummary renders a summary as a Telegram Markdown message. The layout
// depends on the summary type.
func FormatSummary(s *summarize.Summary) string {
	switch s.Type {
	case store.SummaryCompanies:
		return formatCompanySummary(s)
	case store.SummaryTechnology:
		return formatTechnologySummary(s)
	default:
		return formatGeneralSummary(s)
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func formatCompanySummary(s *summarize.Summary) string {
	lines := []string{"*📢 Company Summaries*\n"}

	for i, company := range s.Sections {
		lines = append(lines,
			fmt.Sprintf("*%d. %s*", i+1, company.CompanyName),
			fmt.Sprintf("🏢 Location: %s", orDefault(company.Location, notSpecified)),
			fmt.Sprintf("🏭 Industry: %s", orDefault(company.Industry, notSpecified)),
			fmt.Sprintf("💰 Funding: %s", orDefault(company.Funding, notSpecified)),
			fmt.Sprintf("📝 Notes: %s\n", markdownEscaper.Replace(company.Notes)),
		)
	}

	if len(s.Tags) > 0 {
		lines = append(lines, fmt.Sprintf("*🏷️ Tags:* %s", strings.Join(s.Tags, ", ")))
	}
	if len(s.Companies) > 0 {
		lines = append(lines, fmt.Sprintf("\n*Companies Mentioned:* %s", strings.Join(s.Companies, ", ")))
	}

	return strings.Join(lines, "\n")
}

func formatGeneralSummary(s *summarize.Summary) string {
	lines := []string{
		"*🎬 Summary Created*\n",
		fmt.Sprintf("*Title:* _%s_\n", orDefault(s.Title, "No Title")),
		fmt.Sprintf("*Summary:*\n%s\n", orDefault(s.Body, "No Summary")),
	}
	lines = append(lines, fmt.Sprintf("*🏷️ Tags:* %s", tagList(s.Tags)))
	return strings.Join(lines, "\n")
}

func formatTechnologySummary(s *summarize.Summary) string {
	sections := make(map[string]string)
	for _, line := range strings.Split(s.Body, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		sections[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	lines := []string{
		"*🎬 Summary Created*\n",
		fmt.Sprintf("*Title:* _%s_\n", orDefault(s.Title, "No Title")),
	}

	if topic, ok := sections["Topic"]; ok {
		lines = append(lines, fmt.Sprintf("📌 *Topic:* %s", topic))
	}
	if tech, ok := sections["Tech"]; ok {
		lines = append(lines, fmt.Sprintf("⚙️ *Tech:* %s", tech))
	}
	if insight, ok := sections["Insight"]; ok {
		lines = append(lines, fmt.Sprintf("💡 *Insight:* %s", insight))
	}
	if takeaway, ok := sections["Takeaway"]; ok {
		lines = append(lines, fmt.Sprintf("🎯 *Takeaway:* %s", takeaway))
	}

	lines = append(lines, fmt.Sprintf("\n🏷️ *Tags:* %s", tagList(s.Tags)))
	return strings.Join(lines, "\n")
}

// tagList renders tags as backtick-quoted tokens separated by pipes, or
// "None" when there are no tags.
func tagList(tags []string) string {
	if len(tags) == 0 {
		return "None"
	}
	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = "`" + tag + "`"
	}
	return strings.Join(quoted, " | ")
}
