package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnana997/twbracket/pkg/fixer"
	mcpserver "github.com/gnana997/twbracket/pkg/mcp"
	"github.com/gnana997/twbracket/pkg/mcplog"
	"github.com/gnana997/twbracket/pkg/provider"
	"github.com/gnana997/twbracket/pkg/twconfig"
	"github.com/gnana997/twbracket/pkg/util"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [folder...]",
		Short: "Serve completions and rewrites over MCP on stdio",
		Long: `Serve exposes the completion provider as MCP tools on stdin/stdout.

The given folders (default: the working directory) form the initial workspace.
Their tailwind.config.js or tailwind.config.ts is scanned at startup and
watched for changes; hosts can replace the folders with the
workspace_folders_changed tool.`,
		RunE: runServe,
	}
	cmd.Flags().Bool("no-watch", false, "Do not watch config files; rely on file_saved events")
	cmd.Flags().Int("debounce-ms", 0, "Config watcher debounce (default from config, 200)")
	cmd.Flags().String("log-file", "", "Append one JSONL line per tool call to this file")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetInt("debounce-ms"); v > 0 {
		s.cfg.DebounceMs = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		s.cfg.LogFile = v
	}
	noWatch, _ := cmd.Flags().GetBool("no-watch")

	folders, err := absFolders(args)
	if err != nil {
		return err
	}

	files := util.NewFileCache(&util.FileCacheConfig{MaxFiles: 64, Logger: s.logger})
	defer files.Close()

	scanner := twconfig.NewScanner(twconfig.NewOverrides(), files, s.cfg.ConfigFiles, s.logger)

	var watcher *twconfig.Watcher
	if !noWatch {
		watcher, err = twconfig.NewWatcher(scanner, twconfig.WatchOptions{DebounceMs: s.cfg.DebounceMs}, s.logger)
		if err != nil {
			return err
		}
		defer watcher.Stop()
	}

	opts := provider.Options{
		Aliases:           s.aliases(),
		Scanner:           scanner,
		Languages:         s.cfg.Languages,
		DocumentCacheSize: s.cfg.DocumentCacheSize,
		Logger:            s.logger,
	}
	if watcher != nil {
		opts.FoldersChanged = watcher.SetFolders
	}
	p, err := provider.New(opts)
	if err != nil {
		return err
	}

	if watcher != nil {
		if err := watcher.Start(nil); err != nil {
			return err
		}
	}
	p.WorkspaceFoldersChanged(folders)

	f := fixer.New(fixer.Options{Aliases: s.aliases(), Files: files, Logger: s.logger})
	defer f.Close()

	calls, err := mcplog.Open(s.cfg.LogFile)
	if err != nil {
		return err
	}
	defer calls.Close()

	s.logger.Info("twbracket MCP server starting",
		"version", version,
		"folders", len(folders),
		"watch", watcher != nil)

	srv := mcpserver.NewServer(p, f, calls, version)
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// absFolders resolves args to absolute paths, defaulting to the working
// directory.
func absFolders(args []string) ([]string, error) {
	if len(args) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		return []string{wd}, nil
	}

	folders := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", arg, err)
		}
		folders = append(folders, abs)
	}
	return folders, nil
}
