package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// serverName is the key of the twbracket entry in MCP host configs.
const serverName = "twbracket"

// host describes one MCP host twbracket can register itself with.
type host struct {
	Name string
	// Binary is set for hosts configured through their own CLI.
	Binary string
	// Marker is a project directory whose presence means the host is used.
	Marker string
	// ConfigPath resolves the JSON config file for file-based hosts.
	ConfigPath func() string
	// ServersKey is "servers" for VS Code and "mcpServers" elsewhere.
	ServersKey string
	Extra      map[string]string
}

func (h host) viaCLI() bool { return h.Binary != "" }

// foundHost is a host present on this machine.
type foundHost struct {
	host
	Config     string
	Configured bool
}

// Replaceable in tests.
var (
	lookPathFunc = exec.LookPath
	statFunc     = os.Stat
	runCLIFunc   = runHostCLI
)

var hosts = []host{
	{Name: "Claude Code", Binary: "claude"},
	{Name: "OpenAI Codex", Binary: "codex"},
	{
		Name:       "VS Code",
		Marker:     ".vscode",
		ConfigPath: func() string { return filepath.Join(".vscode", "mcp.json") },
		ServersKey: "servers",
		Extra:      map[string]string{"type": "stdio"},
	},
	{
		Name:       "Cursor",
		Marker:     ".cursor",
		ConfigPath: func() string { return filepath.Join(".cursor", "mcp.json") },
		ServersKey: "mcpServers",
	},
	{
		Name:       "Claude Desktop",
		ConfigPath: claudeDesktopConfigPath,
		ServersKey: "mcpServers",
	},
}

func claudeDesktopConfigPath() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Claude", "claude_desktop_config.json")
	default:
		return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json")
	}
}

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Register the MCP server with detected editors and agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auto, _ := cmd.Flags().GetBool("auto")
			return executeSetup(cmd.InOrStdin(), cmd.OutOrStdout(), auto)
		},
	}
	cmd.Flags().Bool("auto", false, "Configure every detected host without prompting")
	return cmd
}

// detectHosts returns the hosts found on this machine, in registry order.
func detectHosts() []foundHost {
	var found []foundHost
	for _, h := range hosts {
		if h.viaCLI() {
			if _, err := lookPathFunc(h.Binary); err == nil {
				found = append(found, foundHost{host: h, Configured: hasServerEntry(".mcp.json", "mcpServers")})
			}
			continue
		}

		config := h.ConfigPath()
		probe := filepath.Dir(config)
		if h.Marker != "" {
			probe = h.Marker
		}
		if _, err := statFunc(probe); err != nil {
			continue
		}
		found = append(found, foundHost{host: h, Config: config, Configured: hasServerEntry(config, h.ServersKey)})
	}
	return found
}

// hasServerEntry reports whether the JSON file at path already lists
// twbracket under serversKey.
func hasServerEntry(path, serversKey string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return false
	}
	servers, _ := config[serversKey].(map[string]any)
	_, ok := servers[serverName]
	return ok
}

// mergeServerEntry adds the twbracket entry under serversKey to the JSON
// document existing (empty for a new file). It returns nil, nil when the
// entry is already present.
func mergeServerEntry(existing []byte, serversKey string, extra map[string]string) ([]byte, error) {
	config := make(map[string]any)
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &config); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	servers, ok := config[serversKey].(map[string]any)
	if !ok {
		servers = make(map[string]any)
	}
	if _, exists := servers[serverName]; exists {
		return nil, nil
	}

	entry := map[string]any{"command": serverName, "args": []any{"serve"}}
	for k, v := range extra {
		entry[k] = v
	}
	servers[serverName] = entry
	config[serversKey] = servers

	out, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// writeServerEntry merges the entry into the host's config file.
func writeServerEntry(h foundHost) error {
	if err := os.MkdirAll(filepath.Dir(h.Config), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	existing, err := os.ReadFile(h.Config)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", h.Config, err)
	}
	merged, err := mergeServerEntry(existing, h.ServersKey, h.Extra)
	if err != nil || merged == nil {
		return err
	}
	return os.WriteFile(h.Config, merged, 0o644)
}

// runHostCLI runs `<binary> mcp add --scope <scope> twbracket -- twbracket serve`.
func runHostCLI(binary, scope string) error {
	args := []string{"mcp", "add"}
	if scope != "" {
		args = append(args, "--scope", scope)
	}
	args = append(args, serverName, "--", serverName, "serve")
	cmd := exec.Command(binary, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// prompter reads answers line by line from one buffered reader.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// answer prints question and returns the trimmed reply, "" on EOF.
func (p *prompter) answer(question string) string {
	fmt.Fprint(p.out, question)
	line, _ := p.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// yes defaults to true for an empty reply.
func (p *prompter) yes(question string) bool {
	switch strings.ToLower(p.answer(question + " [Y/n] ")) {
	case "", "y", "yes":
		return true
	}
	return false
}

// scope returns "project", "user" or "" to skip.
func (p *prompter) scope(name string) string {
	fmt.Fprintf(p.out, "\n%s: register twbracket?\n", name)
	fmt.Fprintln(p.out, "  [1] Project scope (shared with the repo)")
	fmt.Fprintln(p.out, "  [2] User scope")
	fmt.Fprintln(p.out, "  [3] Skip")
	switch p.answer("  > ") {
	case "", "1":
		return "project"
	case "2":
		return "user"
	}
	return ""
}

// executeSetup detects hosts and registers twbracket with each one that is
// not configured yet. Failures are reported per host and returned combined.
func executeSetup(r io.Reader, w io.Writer, auto bool) error {
	found := detectHosts()
	if len(found) == 0 {
		fmt.Fprintln(w, "No supported MCP hosts detected.")
		return nil
	}

	fmt.Fprintln(w, "Detected MCP hosts:")
	for _, h := range found {
		suffix := ""
		if h.Configured {
			suffix = " (already configured)"
		}
		fmt.Fprintf(w, "  * %s%s\n", h.Name, suffix)
	}
	fmt.Fprintln(w)

	p := &prompter{in: bufio.NewReader(r), out: w}
	if !auto && !p.yes("Configure hosts?") {
		return nil
	}

	var errs error
	for _, h := range found {
		if h.Configured {
			fmt.Fprintf(w, "  = %s already configured\n", h.Name)
			continue
		}
		if err := configureHost(p, h, auto); err != nil {
			fmt.Fprintf(w, "  ! %s: %v\n", h.Name, err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", h.Name, err))
		}
	}
	return errs
}

func configureHost(p *prompter, h foundHost, auto bool) error {
	if h.viaCLI() {
		scope := "project"
		if !auto {
			if scope = p.scope(h.Name); scope == "" {
				fmt.Fprintln(p.out, "  skipped")
				return nil
			}
		}
		if err := runCLIFunc(h.Binary, scope); err != nil {
			return err
		}
		fmt.Fprintf(p.out, "  + %s configured (scope: %s)\n", h.Name, scope)
		return nil
	}

	if !auto && !p.yes(fmt.Sprintf("\n%s: add to %s?", h.Name, h.Config)) {
		fmt.Fprintln(p.out, "  skipped")
		return nil
	}
	if err := writeServerEntry(h); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "  + %s configured (%s)\n", h.Name, h.Config)
	return nil
}
