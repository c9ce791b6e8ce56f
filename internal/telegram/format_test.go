package telegram

import (
	"strings"
	"testing"

	"github.com/fpang/reel-digest/internal/store"
	"github.com/fpang/reel-digest/internal/summarize"
)

func TestFormatGeneralSummary(t *testing.T) {
	s := &summarize.Summary{
		Type:  store.SummaryGeneral,
		Title: "A Video",
		Body:  "Something happened.",
		Tags:  []string{"news", "fun"},
	}

	got := FormatSummary(s)
	want := "*🎬 Summary Created*\n\n" +
		"*Title:* _A Video_\n\n" +
		"*Summary:*\nSomething happened.\n\n" +
		"*🏷️ Tags:* `news` | `fun`"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatGeneralSummaryNoTags(t *testing.T) {
	s := &summarize.Summary{Type: store.SummaryGeneral, Title: "T", Body: "B"}
	got := FormatSummary(s)
	if !strings.Contains(got, "*🏷️ Tags:* None") {
		t.Errorf("missing tags placeholder:\n%s", got)
	}
}

func TestFormatTechnologySummary(t *testing.T) {
	s := &summarize.Summary{
		Type:  store.SummaryTechnology,
		Title: "Go Tips",
		Body:  "Topic: generics\nTech: Go\nInsight: constraints\nTakeaway: use them",
		Tags:  []string{"go"},
	}

	got := FormatSummary(s)
	for _, want := range []string{
		"*🎬 Summary Created*",
		"*Title:* _Go Tips_",
		"📌 *Topic:* generics",
		"⚙️ *Tech:* Go",
		"💡 *Insight:* constraints",
		"🎯 *Takeaway:* use them",
		"🏷️ *Tags:* `go`",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestFormatCompanySummary(t *testing.T) {
	s := &summarize.Summary{
		Type: store.SummaryCompanies,
		Sections: []summarize.CompanySection{
			{CompanyName: "Acme", Location: "Berlin", Industry: "Robotics", Funding: "Seed", Notes: "uses_snake_case"},
			{CompanyName: "Globex"},
		},
		Tags:      []string{"startups"},
		Companies: []string{"Acme", "Globex"},
	}

	got := FormatSummary(s)
	for _, want := range []string{
		"*📢 Company Summaries*",
		"*1. Acme*",
		"🏢 Location: Berlin",
		"🏭 Industry: Robotics",
		"💰 Funding: Seed",
		"📝 Notes: uses\\_snake\\_case",
		"*2. Globex*",
		"🏢 Location: Not specified",
		"*🏷️ Tags:* startups",
		"*Companies Mentioned:* Acme, Globex",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}
