package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xrsl/wfx/pkg/config"
	"github.com/xrsl/wfx/pkg/style"
)

var doctorCmd = &cobra.Command{
	Use:         "doctor",
	Short:       "Check wfx configuration and catalog",
	Long:        `Validate the configuration and load the configured workflow catalog.`,
	Annotations: map[string]string{skipConfigCheck: "true"},
	RunE:        runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s Checking wfx setup\n\n", style.C(style.Blue, "→"))

	allGood := true

	// Check 1: configuration
	c, err := config.Load()
	if err != nil {
		fmt.Fprintf(w, "%s %s is invalid\n", style.Cross(), config.Path())
		writeConfigErrors(w, err)
		allGood = false
	} else {
		fmt.Fprintf(w, "%s configuration valid (%s)\n", style.Check(), config.Path())
	}
	s := settings()
	if c != nil {
		s = *c
	}

	// Check 2: catalog loads for the configured profile
	if p, err := loadProfile("", "", s); err != nil {
		fmt.Fprintf(w, "%s catalog: %v\n", style.Cross(), err)
		allGood = false
	} else {
		cat := p.Engine.Catalog()
		source := "built-in"
		if s.CatalogPath != "" {
			source = s.CatalogPath
		}
		fmt.Fprintf(w, "%s catalog %s: %d workflows, v%s, sha256:%s (profile %s)\n",
			style.Check(), source, cat.Len(), cat.Version(), shortDigest(cat.Digest()), p.Name)
	}

	// Check 3: output locations are writable
	for _, path := range []string{s.OutputPath, s.LogFile} {
		if path == "" {
			continue
		}
		if err := checkWritableDir(filepath.Dir(path)); err != nil {
			fmt.Fprintf(w, "%s %s: %v\n", style.Cross(), path, err)
			allGood = false
		} else {
			fmt.Fprintf(w, "%s %s writable\n", style.Check(), path)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s Checking integrations\n\n", style.C(style.Blue, "→"))

	fmt.Fprintf(w, "%s service discovery: %s\n", style.Check(), s.ServiceDiscoveryMode)
	switch {
	case s.LogfireEnabled && s.LogfireToken != "":
		fmt.Fprintf(w, "%s logfire enabled\n", style.Check())
	case s.LogfireEnabled:
		fmt.Fprintf(w, "%s logfire enabled without logfire_token\n", style.Cross())
	default:
		fmt.Fprintf(w, "%s logfire disabled (optional)\n", style.C(style.Yellow, "○"))
	}

	fmt.Fprintln(w)
	if !allGood {
		return fmt.Errorf("setup issues detected")
	}
	fmt.Fprintf(w, "%s Setup OK\n", style.Check())
	return nil
}

// checkWritableDir reports whether files can be created in dir. A missing
// directory is fine as long as its nearest existing parent is a directory.
func checkWritableDir(dir string) error {
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}
			f, err := os.CreateTemp(dir, ".wfx-doctor-*")
			if err != nil {
				return err
			}
			f.Close()
			return os.Remove(f.Name())
		}
		if !os.IsNotExist(err) {
			return err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return err
		}
		dir = parent
	}
}
