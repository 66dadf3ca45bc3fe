package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	clog "github.com/xrsl/wfx/pkg/log"
	"github.com/xrsl/wfx/pkg/report"
	"github.com/xrsl/wfx/pkg/score"
	"github.com/xrsl/wfx/pkg/style"
	"github.com/xrsl/wfx/pkg/utils"
)

var (
	batchOutDirFlag  string
	batchProfileFlag string
	batchCatalogFlag string
	batchFullFlag    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <glob>...",
	Short: "Analyze every brief file matching a pattern",
	Long: `Analyze brief files in bulk and write one JSON report per file.

Patterns support ** (any depth). Each file's trimmed content is one brief;
the report is written to <out-dir>/<file name without extension>.json.
Empty files are reported and skipped, and make the command exit non-zero.

Examples:
  wfx batch "briefs/*.txt"
  wfx batch "projects/**/BRIEF.md" --out-dir reports --full`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchOutDirFlag, "out-dir", "analyses", "Directory for JSON reports")
	batchCmd.Flags().StringVar(&batchProfileFlag, "profile", "", "Scoring profile (weighted, coarse)")
	batchCmd.Flags().StringVar(&batchCatalogFlag, "catalog", "", "Workflow catalog file (.yaml or .toml)")
	batchCmd.Flags().BoolVar(&batchFullFlag, "full", false, "Write the full JSON projection")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	files, err := expandGlobs(args)
	if err != nil {
		return err
	}

	p, err := loadProfile(batchProfileFlag, batchCatalogFlag, settings())
	if err != nil {
		return err
	}

	res, err := analyzeFiles(cmd.OutOrStdout(), p, files, batchOutDirFlag, batchFullFlag)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d analyzed, %d skipped → %s\n", res.analyzed, len(res.skipped), batchOutDirFlag)
	if len(res.skipped) > 0 {
		return fmt.Errorf("%d empty brief(s): %s", len(res.skipped), strings.Join(res.skipped, ", "))
	}
	return nil
}

// expandGlobs resolves every pattern, keeping first-seen order and dropping
// duplicates and directories. A pattern with no file matches is an error.
func expandGlobs(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}
		n := 0
		for _, m := range matches {
			if !utils.FileExists(m) {
				continue
			}
			n++
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
		if n == 0 {
			return nil, fmt.Errorf("no files match pattern: %s", pattern)
		}
	}
	return files, nil
}

type batchResult struct {
	analyzed int
	skipped  []string
}

// analyzeFiles analyzes each file in order and writes its JSON report.
// Two inputs that would share an output name are rejected up front.
func analyzeFiles(w io.Writer, p *score.Profile, files []string, outDir string, full bool) (batchResult, error) {
	var res batchResult

	owners := map[string]string{}
	for _, f := range files {
		stem := utils.Stem(f)
		if prev, ok := owners[stem]; ok {
			return res, fmt.Errorf("%s and %s would both write %s.json", prev, f, stem)
		}
		owners[stem] = f
	}

	for _, f := range files {
		data, err := utils.ReadFile(f)
		if err != nil {
			return res, fmt.Errorf("read %s: %w", f, err)
		}
		text := strings.TrimSpace(data)
		if text == "" {
			fmt.Fprintf(w, "%s %s: empty brief, skipped\n", style.Warn(), f)
			res.skipped = append(res.skipped, f)
			continue
		}

		a, err := p.Analyze(text)
		if err != nil {
			return res, fmt.Errorf("analyze %s: %w", f, err)
		}
		out := filepath.Join(outDir, utils.Stem(f)+".json")
		if err := report.WriteJSON(out, report.JSON(a, full)); err != nil {
			return res, err
		}
		res.analyzed++

		top, _ := a.Top()
		mark := style.Check()
		if !top.Recommended {
			mark = style.C(style.Gray, "·")
		}
		fmt.Fprintf(w, "%s %s → %s (%.1f%%)\n", mark, f, top.Workflow, top.MatchPercentage)
		clog.Debug("batch_item_analyzed", "file", f, "top_workflow", top.Workflow)
	}
	return res, nil
}
