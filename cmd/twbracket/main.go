// Package main is the twbracket command: an MCP server and CLI that rewrites
// shorthand Tailwind tokens such as w20p into arbitrary-value classes.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnana997/twbracket/pkg/rewrite"
	"github.com/gnana997/twbracket/pkg/util"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "twbracket",
		Short: "Rewrite shorthand Tailwind tokens into arbitrary-value classes",
		Long: `twbracket turns shorthand tokens typed inside class attributes into
Tailwind arbitrary-value classes: w20p -> w-[20px], maxH40vh -> max-h-[40vh],
top-20p -> top-[-20px].

Run "twbracket serve" to expose completion over MCP, or "twbracket fix" to
rewrite existing files.`,
		Version:      version + " (commit=" + commit + ", built=" + date + ")",
		SilenceUsage: true,
	}
	root.SetVersionTemplate("twbracket version {{.Version}}\n")

	root.PersistentFlags().String("config", "", "Project config file (default .twbracket/config.yaml)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (env TWBRACKET_LOG_LEVEL)")
	root.PersistentFlags().String("log-format", "", "Log format: json or text")
	root.PersistentFlags().Bool("json", false, "Print results as JSON")

	root.AddCommand(
		newServeCmd(),
		newCompleteCmd(),
		newFixCmd(),
		newSpacingCmd(),
		newSetupCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "twbracket %s\n", cmd.Root().Version)
		},
	}
}

// settings is the merged result of the project config and the flags.
type settings struct {
	cfg    *ProjectConfig
	logger *slog.Logger
	json   bool
}

// loadSettings reads the project config and applies flag overrides. Logs go
// to stderr; stdout stays free for results and MCP traffic.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := loadProjectConfig(path)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.LogFormat = v
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	logger := util.NewLogger(util.LoggerConfig{
		Level:  util.ParseLogLevel(cfg.LogLevel),
		Format: util.ParseLogFormat(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
	util.SetDefault(logger)

	return &settings{cfg: cfg, logger: logger, json: asJSON}, nil
}

// aliases builds the property alias table with the project's extra aliases.
func (s *settings) aliases() *rewrite.AliasTable {
	if len(s.cfg.Aliases) == 0 {
		return rewrite.DefaultAliases()
	}
	return rewrite.NewAliasTable(s.cfg.Aliases)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
