package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/xrsl/wfx/pkg/brief"
	"github.com/xrsl/wfx/pkg/catalog"
	"github.com/xrsl/wfx/pkg/style"
)

var (
	catalogProfileFlag string
	catalogPathFlag    string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the workflow catalog",
	Long: `Inspect the workflows and signals used for scoring.

Examples:
  wfx catalog list
  wfx catalog show archon
  wfx catalog signals
  wfx catalog list --catalog team.toml`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog workflows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		writeCatalogList(cmd.OutOrStdout(), c)
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one workflow (name may be partial)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		wf, err := c.Find(args[0])
		if err != nil {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(c.Names(), ", "))
		}
		writeWorkflow(cmd.OutOrStdout(), wf)
		return nil
	},
}

var catalogSignalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "List detectable signals and their keywords",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		writeSignals(cmd.OutOrStdout())
	},
}

func init() {
	catalogCmd.PersistentFlags().StringVar(&catalogProfileFlag, "profile", "", "Profile whose built-in catalog to use (weighted, coarse)")
	catalogCmd.PersistentFlags().StringVar(&catalogPathFlag, "catalog", "", "Workflow catalog file (.yaml or .toml)")
	catalogCmd.AddCommand(catalogListCmd, catalogShowCmd, catalogSignalsCmd)
	rootCmd.AddCommand(catalogCmd)
}

func loadCatalog() (*catalog.Catalog, error) {
	p, err := loadProfile(catalogProfileFlag, catalogPathFlag, settings())
	if err != nil {
		return nil, err
	}
	return p.Engine.Catalog(), nil
}

func writeCatalogList(w io.Writer, c *catalog.Catalog) {
	rows := [][]string{}
	for _, wf := range c.Workflows() {
		rows = append(rows, []string{
			wf.Name,
			wf.Complexity,
			wf.SetupTime,
			wf.TeamSize,
			fmt.Sprint(len(wf.Features)),
		})
	}
	writeTable(w, []string{"NAME", "COMPLEXITY", "SETUP", "TEAM SIZE", "FEATURES"}, rows)
	fmt.Fprintf(w, "\n%s\n", style.C(style.Gray, fmt.Sprintf("catalog v%s  sha256:%s", c.Version(), shortDigest(c.Digest()))))
}

func writeWorkflow(w io.Writer, wf catalog.Workflow) {
	fmt.Fprintf(w, "%s\n", style.B(wf.Name))
	fmt.Fprintf(w, "  complexity %s · setup %s · team %s\n", wf.Complexity, wf.SetupTime, wf.TeamSize)

	fmt.Fprintf(w, "\n%s\n", style.C(style.Cyan, "Features:"))
	rows := [][]string{}
	for _, f := range wf.Features {
		rows = append(rows, []string{brief.Label(f.Signal), fmt.Sprintf("%g", f.Weight), f.Strength})
	}
	writeTable(w, nil, indentRows(rows))

	if len(wf.Tech) > 0 {
		fmt.Fprintf(w, "\n%s\n", style.C(style.Cyan, "Tech:"))
		rows = rows[:0]
		for _, t := range wf.Tech {
			mark := style.Check()
			if !t.Present {
				mark = style.Cross()
			}
			rows = append(rows, []string{brief.Label(t.Signal), fmt.Sprintf("%g", t.Weight), mark})
		}
		writeTable(w, nil, indentRows(rows))
	}

	if len(wf.ProjectTypeFit) > 0 {
		fmt.Fprintf(w, "\n%s\n", style.C(style.Cyan, "Project fit:"))
		for _, f := range wf.ProjectTypeFit {
			fmt.Fprintf(w, "  %s +%g  %s\n", f.Type, f.Bonus, style.C(style.Gray, f.Reason))
		}
	}

	writeBullets(w, "Best for:", wf.BestFor)
	writeBullets(w, "Not for:", wf.NotFor)
}

func writeSignals(w io.Writer) {
	rows := [][]string{}
	for _, s := range brief.Signals() {
		rows = append(rows, []string{s.Name, string(s.Kind), strings.Join(s.Keywords, ", ")})
	}
	writeTable(w, []string{"SIGNAL", "KIND", "KEYWORDS"}, rows)
}

func writeBullets(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", style.C(style.Cyan, title))
	for _, it := range items {
		fmt.Fprintf(w, "  • %s\n", it)
	}
}

// writeTable left-aligns columns by display width. ANSI sequences in cells
// are not measured, so color only the last column.
func writeTable(w io.Writer, header []string, rows [][]string) {
	all := rows
	if header != nil {
		all = append([][]string{header}, rows...)
	}

	widths := map[int]int{}
	for _, row := range all {
		for i, cell := range row[:max(len(row)-1, 0)] {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for n, row := range all {
		var b strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		line := strings.TrimRight(b.String(), " ")
		if n == 0 && header != nil {
			line = style.B(line)
		}
		fmt.Fprintln(w, line)
	}
}

func indentRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string{""}, r...)
	}
	return out
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
