package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnana997/twbracket/pkg/fixer"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [path...]",
		Short: "Rewrite shorthand tokens in existing files",
		Long: `Fix rewrites every shorthand token found in class attributes, JSX
className expressions and @apply lists.

Directories are walked with the include and exclude globs; files are fixed
as given. Without --write nothing is modified and the report shows what
would change.

Examples:
  twbracket fix                       # dry run over the working directory
  twbracket fix --write src           # rewrite files under src/
  twbracket fix --write index.html`,
		RunE: runFix,
	}
	cmd.Flags().Bool("write", false, "Write changes back to the files")
	cmd.Flags().StringSlice("include", nil, "Include globs (default from config)")
	cmd.Flags().StringSlice("exclude", nil, "Exclude globs (default from config)")
	cmd.Flags().Int("workers", 0, "Worker goroutines (default 2x CPUs, capped at 32)")
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	write, _ := cmd.Flags().GetBool("write")
	workers, _ := cmd.Flags().GetInt("workers")
	include := s.cfg.Fix.Include
	if v, _ := cmd.Flags().GetStringSlice("include"); len(v) > 0 {
		include = v
	}
	exclude := s.cfg.Fix.Exclude
	if v, _ := cmd.Flags().GetStringSlice("exclude"); len(v) > 0 {
		exclude = v
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	paths, err := collectFixPaths(args, include, exclude, s)
	if err != nil {
		return err
	}

	f := fixer.New(fixer.Options{Aliases: s.aliases(), Workers: workers, Logger: s.logger})
	defer f.Close()

	report, fixErr := f.FixFiles(paths, write)

	out := cmd.OutOrStdout()
	if s.json {
		if err := printJSON(out, report); err != nil {
			return err
		}
		return fixErr
	}

	for _, r := range report.Files {
		if !r.Changed {
			continue
		}
		verb := "would rewrite"
		if r.Written {
			verb = "rewrote"
		}
		fmt.Fprintf(out, "%s %s (%d)\n", verb, r.Path, r.Rewrites)
	}
	fmt.Fprintf(out, "%d files scanned, %d changed, %d rewrites, %d failed in %dms\n",
		report.FilesScanned, report.FilesChanged, report.Rewrites, report.FilesFailed, report.DurationMs)
	return fixErr
}

// collectFixPaths expands directory arguments with DiscoverFiles and keeps
// file arguments the fixer supports.
func collectFixPaths(args, include, exclude []string, s *settings) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			if !fixer.Supported(arg) {
				s.logger.Warn("unsupported file type, skipping", "path", arg)
				continue
			}
			paths = append(paths, arg)
			continue
		}

		found, err := fixer.DiscoverFiles(arg, include, exclude, s.logger)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			if fixer.Supported(p) {
				paths = append(paths, p)
			}
		}
	}

	for i, p := range paths {
		paths[i] = filepath.Clean(p)
	}
	return paths, nil
}
