package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xrsl/wfx/pkg/brief"
	"github.com/xrsl/wfx/pkg/config"
	clog "github.com/xrsl/wfx/pkg/log"
	"github.com/xrsl/wfx/pkg/report"
	"github.com/xrsl/wfx/pkg/score"
	"github.com/xrsl/wfx/pkg/style"
)

var (
	analyzeInteractiveFlag bool
	analyzeJSONFlag        bool
	analyzeOutputFlag      string
	analyzeFullFlag        bool
	analyzeProfileFlag     string
	analyzeCatalogFlag     string
	analyzeTopFlag         int
)

var errNoBrief = errors.New("a project brief is required: wfx analyze <brief> or wfx analyze -i")

var analyzeCmd = &cobra.Command{
	Use:   "analyze <brief...>",
	Short: "Recommend workflows for a project brief",
	Long: `Analyze a project brief and rank the catalog's workflows against it.

Arguments are joined with spaces into one brief. Detected requirements,
per-workflow scores and the top recommendation are printed; --json also
saves the analysis to a file.

Examples:
  wfx analyze "Build a knowledge management system with RAG search"
  wfx analyze -i                       # Prompt for the brief
  wfx analyze --json -o out.json "new agent project for a solo developer"
  wfx analyze --profile coarse "knowledge base for the team"
  wfx analyze --catalog team.toml --top 3 "crawl our docs site"`,
	Args: cobra.ArbitraryArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVarP(&analyzeInteractiveFlag, "interactive", "i", false, "Prompt for the brief on stdin")
	analyzeCmd.Flags().BoolVar(&analyzeJSONFlag, "json", false, "Save the analysis as JSON")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFlag, "output", "o", "", "JSON output path (default from config output_path)")
	analyzeCmd.Flags().BoolVar(&analyzeFullFlag, "full", false, "Include type, scale, keywords and priorities in JSON")
	analyzeCmd.Flags().StringVar(&analyzeProfileFlag, "profile", "", "Scoring profile (weighted, coarse)")
	analyzeCmd.Flags().StringVar(&analyzeCatalogFlag, "catalog", "", "Workflow catalog file (.yaml or .toml)")
	analyzeCmd.Flags().IntVar(&analyzeTopFlag, "top", 0, "Show only the first N workflows")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	s := settings()
	text := strings.Join(args, " ")

	if analyzeInteractiveFlag {
		var err error
		text, err = promptBrief(cmd.InOrStdin(), cmd.OutOrStdout(), style.IsTerminal(os.Stdin))
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(text) == "" {
		return errNoBrief
	}

	p, err := loadProfile(analyzeProfileFlag, analyzeCatalogFlag, s)
	if err != nil {
		return err
	}

	a, err := p.Analyze(text)
	if err != nil {
		if errors.Is(err, brief.ErrEmptyBrief) {
			return errNoBrief
		}
		return err
	}

	if err := report.Text(cmd.OutOrStdout(), a, report.Options{Top: analyzeTopFlag}); err != nil {
		return err
	}

	if analyzeJSONFlag {
		out := firstNonEmpty(analyzeOutputFlag, s.OutputPath)
		if err := report.WriteJSON(out, report.JSON(a, analyzeFullFlag)); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s%s\n", style.Success("Saved analysis"), out)
		}
	}
	return nil
}

// loadProfile resolves flag values over config settings.
func loadProfile(profileFlag, catalogFlag string, s config.Config) (*score.Profile, error) {
	name := firstNonEmpty(profileFlag, s.Profile)
	path := firstNonEmpty(catalogFlag, s.CatalogPath)
	p, err := score.LoadProfile(name, path)
	if err != nil {
		return nil, err
	}
	clog.Debug("profile_loaded", "profile", p.Name, "catalog_version", p.Engine.Catalog().Version(), "catalog_path", path)
	return p, nil
}

// promptBrief reads one line from in. The banner is printed only for a
// terminal so piped input stays clean.
func promptBrief(in io.Reader, out io.Writer, banner bool) (string, error) {
	if banner {
		rule := style.Rule("=", 80)
		fmt.Fprintln(out, rule)
		fmt.Fprintln(out, style.B("INTERACTIVE WORKFLOW SELECTOR"))
		fmt.Fprintln(out, rule)
		fmt.Fprintln(out, "\nPlease describe your project:")
		fmt.Fprint(out, "> ")
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read brief: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
