package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/josephgoksu/codecrew/internal/agents/crew"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SummaryOptions selects the optional parts of the summary.
type SummaryOptions struct {
	ShowCode   bool
	ShowTests  bool
	ShowPlan   bool
	SavedPaths []string
}

var languageDisplayNames = map[string]string{
	crew.LangJavaScript: "JavaScript",
	crew.LangTypeScript: "TypeScript",
	crew.LangCSharp:     "C#",
	crew.LangCPP:        "C++",
}

var titleCaser = cases.Title(language.English)

// LanguageDisplayName returns a human-friendly language name.
func LanguageDisplayName(lang string) string {
	if name, ok := languageDisplayNames[lang]; ok {
		return name
	}
	if lang == "" {
		return "Unknown"
	}
	return titleCaser.String(lang)
}

// RenderSummary writes the end-of-run summary.
// Code and tests are written verbatim so the output can be copied as-is.
func RenderSummary(w io.Writer, res *crew.Result, opts SummaryOptions) {
	rule := strings.Repeat("=", 50)
	printer := message.NewPrinter(language.English)

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, StyleHeader.Render("📊 GENERATION COMPLETE"))
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "Language: %s\n", LanguageDisplayName(res.Language))
	fmt.Fprintf(w, "Quality Score: %s\n", ScoreStyle(res.QualityScore).Render(fmt.Sprintf("%d/10", res.QualityScore)))
	fmt.Fprintf(w, "Approved: %s\n", yesNo(res.Approved))
	fmt.Fprintf(w, "Issues: %d\n", len(res.Review.Issues))

	usage := printer.Sprintf("%d tokens", res.Usage.TotalTokens())
	if res.Usage.Estimated {
		usage += " (estimated)"
	}
	if res.EstimatedCostUSD > 0 {
		usage += printer.Sprintf(" • ~$%.4f", res.EstimatedCostUSD)
	}
	fmt.Fprintln(w, StyleSubtle.Render(fmt.Sprintf("Usage: %s • %s/%s", usage, res.Provider, res.Model)))

	if opts.ShowPlan && len(res.Tasks) > 0 {
		fmt.Fprintf(w, "\n%s\n", StyleSectionTitle.Render("📋 Plan:"))
		RenderTasks(w, res.Tasks)
	}

	if opts.ShowCode {
		fmt.Fprintf(w, "\n%s\n%s\n", StyleSectionTitle.Render("🔧 Generated Code:"), strings.Repeat("-", 30))
		fmt.Fprintln(w, res.Code)
	}

	if opts.ShowTests {
		fmt.Fprintf(w, "\n%s\n%s\n", StyleSectionTitle.Render("🧪 Generated Tests:"), strings.Repeat("-", 30))
		fmt.Fprintln(w, res.Tests)
	}

	if len(res.Review.Issues) > 0 {
		fmt.Fprintf(w, "\n%s\n", StyleWarning.Render("⚠️  Issues Found:"))
		for _, issue := range res.Review.Issues {
			fmt.Fprintf(w, "  - %s\n", issue)
		}
	}

	if len(res.Review.Suggestions) > 0 {
		fmt.Fprintf(w, "\n%s\n", StylePrimary.Render("💡 Suggestions:"))
		for _, s := range res.Review.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}

	if len(opts.SavedPaths) > 0 {
		fmt.Fprintf(w, "\n%s %s\n", StyleSuccess.Render("💾 Saved:"), strings.Join(opts.SavedPaths, ", "))
	}
}

// RenderTasks writes the planned tasks as a numbered list.
func RenderTasks(w io.Writer, tasks []crew.Task) {
	for i, t := range tasks {
		fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, t.Priority, Truncate(t.Task, 80))
	}
}

func yesNo(b bool) string {
	if b {
		return StyleSuccess.Render("yes")
	}
	return StyleError.Render("no")
}
