package mcp

import "github.com/mark3labs/mcp-go/mcp"

func completeTool() mcp.Tool {
	return mcp.NewTool("complete",
		mcp.WithDescription("Suggest the bracketed arbitrary-value class for the shorthand token before the cursor, e.g. w20p -> w-[20px]. Returns {items: [...]}, empty when the cursor is not inside a class attribute."),
		mcp.WithString("language_id", mcp.Description("Document language: javascript, typescriptreact, javascriptreact, html, css or vue. Defaults to the open document's language when uri is given.")),
		mcp.WithString("text", mcp.Description("Document or line text. Takes precedence over uri.")),
		mcp.WithString("uri", mcp.Description("URI of a document previously reported with document_changed.")),
		mcp.WithNumber("line", mcp.Description("Zero-based line. Default 0.")),
		mcp.WithNumber("character", mcp.Description("Zero-based UTF-16 column. Defaults to the end of the line.")),
	)
}

func rewriteTokenTool() mcp.Tool {
	return mcp.NewTool("rewrite_token",
		mcp.WithDescription("Rewrite one shorthand fragment such as maxH40vh or top-20p into its bracketed class."),
		mcp.WithString("token", mcp.Required(), mcp.Description("The fragment to rewrite")),
	)
}

func rewriteSourceTool() mcp.Tool {
	return mcp.NewTool("rewrite_source",
		mcp.WithDescription("Rewrite every shorthand token in the class attributes of a source file (JSX/TSX, HTML, Vue, CSS @apply). Nothing is written to disk."),
		mcp.WithString("path", mcp.Required(), mcp.Description("File name or path; only the extension is used")),
		mcp.WithString("code", mcp.Required(), mcp.Description("Source text")),
	)
}

// documentArgs are the arguments shared by document_opened and
// document_changed.
func documentArgs(changesHelp string) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("uri", mcp.Required(), mcp.Description("Document URI")),
		mcp.WithString("language_id", mcp.Required(), mcp.Description("Document language")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Full document text")),
		mcp.WithNumber("version", mcp.Description("Document version; older versions are ignored")),
		mcp.WithNumber("content_changes", mcp.Description(changesHelp)),
		mcp.WithBoolean("active", mcp.Description("Whether the document is in the focused editor. Default true.")),
		mcp.WithNumber("line", mcp.Description("Cursor line")),
		mcp.WithNumber("character", mcp.Description("Cursor UTF-16 column")),
	}
}

func documentOpenedTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Report a document the editor just opened. Returns {retrigger: bool} like document_changed."),
	}, documentArgs("Number of edits applied. Default 0.")...)
	return mcp.NewTool("document_opened", opts...)
}

func documentChangedTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Report the full text of an edited document. Returns {retrigger: bool}: true when suggestions should be shown again at the cursor."),
	}, documentArgs("Number of edits applied. Default 1.")...)
	return mcp.NewTool("document_changed", opts...)
}

func documentClosedTool() mcp.Tool {
	return mcp.NewTool("document_closed",
		mcp.WithDescription("Forget a document."),
		mcp.WithString("uri", mcp.Required(), mcp.Description("Document URI")),
	)
}

func fileSavedTool() mcp.Tool {
	return mcp.NewTool("file_saved",
		mcp.WithDescription("Report a saved file. Saving tailwind.config.js or tailwind.config.ts reloads the spacing overrides."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Saved file path")),
	)
}

func workspaceFoldersChangedTool() mcp.Tool {
	return mcp.NewTool("workspace_folders_changed",
		mcp.WithDescription("Replace the workspace folder list and reload the spacing overrides from the first folder holding a tailwind config."),
		mcp.WithArray("folders", mcp.Required(), mcp.Description("Absolute folder paths in workspace order"), mcp.Items(map[string]any{"type": "string"})),
	)
}

func getSpacingTool() mcp.Tool {
	return mcp.NewTool("get_spacing",
		mcp.WithDescription("Return the spacing overrides scraped from the active tailwind config and the file they came from."),
	)
}
