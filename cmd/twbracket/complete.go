package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnana997/twbracket/pkg/provider"
	"github.com/gnana997/twbracket/pkg/rewrite"
)

var errNoSuggestion = errors.New("no suggestion")

func newCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete [text]",
		Short: "Print the suggestion for text, with the cursor at its end",
		Long: `Complete runs one completion request and prints the suggestion.

The text is read from the argument, or from stdin when no argument is given.
The cursor defaults to the end of the text.

Examples:
  twbracket complete '<div class="w20p'
  twbracket complete --language css --json 'className="maxH40vh'`,
		Args: cobra.MaximumNArgs(1),
		RunE: runComplete,
	}
	cmd.Flags().String("language", "html", "Document language identifier")
	cmd.Flags().Int("line", -1, "Zero-based cursor line (default: last line)")
	cmd.Flags().Int("character", -1, "Zero-based UTF-16 cursor column (default: end of line)")
	return cmd
}

func runComplete(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = strings.TrimRight(string(data), "\r\n")
	}

	language, _ := cmd.Flags().GetString("language")
	line, _ := cmd.Flags().GetInt("line")
	character, _ := cmd.Flags().GetInt("character")

	pos, err := cursorPosition(text, line, character)
	if err != nil {
		return err
	}

	p, err := provider.New(provider.Options{
		Aliases:   s.aliases(),
		Languages: s.cfg.Languages,
		Logger:    s.logger,
	})
	if err != nil {
		return err
	}

	items := p.Complete(provider.CompletionRequest{LanguageID: language, Text: text, Position: pos})

	out := cmd.OutOrStdout()
	if s.json {
		return printJSON(out, items)
	}
	if len(items) == 0 {
		return errNoSuggestion
	}
	for _, item := range items {
		fmt.Fprintf(out, "%s\t%s\n", item.Label, item.Detail)
	}
	return nil
}

// cursorPosition resolves the --line/--character flags against text. Negative
// values mean "last line" and "end of line".
func cursorPosition(text string, line, character int) (rewrite.Position, error) {
	if line < 0 {
		line = strings.Count(text, "\n")
	}
	lineText, ok := provider.LineText(text, line)
	if !ok {
		return rewrite.Position{}, fmt.Errorf("line %d is past the end of the text", line)
	}
	width := rewrite.UTF16Len(lineText)
	if character < 0 {
		character = width
	}
	if character > width {
		return rewrite.Position{}, fmt.Errorf("character %d is past the end of line %d", character, line)
	}
	return rewrite.Position{Line: line, Character: character}, nil
}
