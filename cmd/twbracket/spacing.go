package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gnana997/twbracket/pkg/twconfig"
)

func newSpacingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spacing [folder...]",
		Short: "Show the spacing overrides found in tailwind.config",
		Long: `Spacing scans the folders (default: the working directory) the same
way the server does and prints the theme.spacing entries it found.`,
		RunE: runSpacing,
	}
}

// spacingReport is the JSON shape of the spacing command.
type spacingReport struct {
	Source  string            `json:"source"`
	Entries map[string]string `json:"entries"`
}

func runSpacing(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	folders, err := absFolders(args)
	if err != nil {
		return err
	}

	scanner := twconfig.NewScanner(twconfig.NewOverrides(), nil, s.cfg.ConfigFiles, s.logger)
	result := scanner.Scan(folders)
	entries := scanner.Overrides().Snapshot()

	out := cmd.OutOrStdout()
	if s.json {
		return printJSON(out, spacingReport{Source: result.Path, Entries: entries})
	}

	if result.Path == "" {
		fmt.Fprintln(out, "no tailwind config found")
		return nil
	}
	fmt.Fprintf(out, "%s (%d entries)\n", result.Path, result.Entries)

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %s\n", k, entries[k])
	}
	return nil
}
