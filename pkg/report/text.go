// Package report renders analyses as terminal text and JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xrsl/wfx/pkg/score"
	"github.com/xrsl/wfx/pkg/style"
)

const (
	ruleWidth     = 80
	barWidth      = 20
	excerptRunes  = 300
	maxReasons    = 3
	altStrengths  = 2
	indent        = "   "
	bulletIndent  = "      • "
	noSignalsText = "No strong requirements detected"
)

// Options controls the text report.
type Options struct {
	// Top limits the number of workflow entries shown. Zero shows all.
	Top int
}

// printer keeps the first write error so rendering code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) f(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) ln(s string) { p.f("%s\n", s) }

// Text writes the human-readable report for a.
func Text(w io.Writer, a *score.Analysis, opts Options) error {
	p := &printer{w: w}
	rule := style.Rule("=", ruleWidth)

	p.ln(rule)
	p.ln(style.B("WORKFLOW SELECTION ANALYSIS"))
	p.ln(rule)

	p.f("\n%s\n", style.C(style.Cyan, "Project Brief:"))
	p.f("%s%s\n", indent, Excerpt(a.Brief, excerptRunes))

	writeRequirements(p, a)

	p.f("\n%s\n\n", style.C(style.Cyan, "Workflow Recommendations:"))
	shown := 0
	for i, s := range a.Scores {
		if s.Total <= 0 {
			continue
		}
		if opts.Top > 0 && shown >= opts.Top {
			break
		}
		writeScore(p, i+1, s, a.Policy.MaxScore)
		shown++
	}
	if shown == 0 {
		p.f("%s%s No workflow scored above zero. Add more detail to the brief.\n\n", indent, style.Warn())
	}

	writeSummary(p, a)
	p.f("\n%s\n", rule)
	return p.err
}

func writeRequirements(p *printer, a *score.Analysis) {
	req := a.Requirements
	p.f("\n%s\n", style.C(style.Cyan, "Detected Requirements:"))
	detected := req.Detected()
	if len(detected) == 0 {
		p.f("%s%s  %s\n", indent, style.Warn(), noSignalsText)
	}
	for _, s := range detected {
		p.f("%s%s %s %s\n", indent, style.Check(), s.Label,
			style.C(style.Gray, fmt.Sprintf("[%s priority]", req.Priority(s.Name))))
	}

	if req.ProjectType != "" {
		p.f("\nProject Type: %s\n", req.ProjectType)
	}
	if req.ProjectScale != "" {
		p.f("Team Scale: %s\n", req.ProjectScale)
	}
	if len(req.Keywords) > 0 {
		p.f("Keywords: %s\n", strings.Join(req.Keywords, ", "))
	}
}

func writeScore(p *printer, rank int, s score.WorkflowScore, maxScore float64) {
	badge := ""
	if s.Recommended {
		badge = " " + style.C(style.Yellow, "★ RECOMMENDED")
	}
	barColor := style.Gray
	if s.Recommended {
		barColor = style.Green
	}

	p.f("%d. %s%s\n", rank, style.B(s.Workflow), badge)
	p.f("%sMatch Score: %.1f%% [%s]\n", indent, s.MatchPercentage,
		style.C(barColor, style.Bar(s.MatchPercentage, barWidth)))
	p.f("%sTotal Score: %.1f/%.0f\n", indent, s.Total, maxScore)

	p.f("\n%sScore Breakdown:\n", indent)
	for _, c := range score.Categories {
		if v := s.Detail[c]; v > 0 {
			p.f("%s%s: %.1f\n", bulletIndent, Title(string(c)), v)
		}
	}

	writeList(p, "Why this workflow:", head(s.Reasons, maxReasons))
	writeList(p, "Best For:", s.Strengths)
	writeList(p, "Considerations:", s.Considerations)
	p.ln("")
}

func writeList(p *printer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	p.f("\n%s%s\n", indent, title)
	for _, it := range items {
		p.f("%s%s\n", bulletIndent, it)
	}
}

func writeSummary(p *printer, a *score.Analysis) {
	recs := score.Recommended(a.Scores)
	if len(recs) == 0 {
		p.f("%s No workflow reached the %.0f%% recommendation threshold.\n", style.Warn(), a.Policy.Threshold)
		return
	}
	top := recs[0]

	rule := style.Rule("=", ruleWidth)
	p.ln(rule)
	p.f("%s %s\n", style.B("TOP RECOMMENDATION:"), style.C(style.Green, top.Workflow))
	p.ln(rule)
	p.f("\nWith a %.1f%% match score, %s\nis the best fit for your project brief.\n", top.MatchPercentage, top.Workflow)

	p.f("\n%s\n", style.C(style.Cyan, "Next Steps:"))
	p.f("%s1. Review documentation for %s\n", indent, top.Workflow)
	p.f("%s2. Check tech stack compatibility\n", indent)
	p.f("%s3. Consider team expertise and learning curve\n", indent)
	p.f("%s4. Start with recommended workflow\n", indent)

	if len(recs) > 1 {
		alt := recs[1]
		p.f("\nAlternative: %s (%.1f%% match)\n", alt.Workflow, alt.MatchPercentage)
		if len(alt.Strengths) > 0 {
			p.f("%sConsider this if you need: %s\n", indent, strings.Join(head(alt.Strengths, altStrengths), ", "))
		}
	}
}

// Excerpt returns the first n runes of s, with "..." appended when cut.
func Excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Title turns a snake_case name into "Title Case".
func Title(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
