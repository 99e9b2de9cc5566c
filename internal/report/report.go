// Package report renders a validation result for its consumers: colored
// terminal text, structured JSON, or a standalone HTML page.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/stratum-model/stratum/internal/validate"
)

// Format names an output renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// Write renders the result in the requested format.
func Write(w io.Writer, result *validate.Result, format Format) error {
	switch format {
	case FormatText, "":
		return writeText(w, result)
	case FormatJSON:
		return writeJSON(w, result)
	case FormatHTML:
		return writeHTML(w, result)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeText(w io.Writer, result *validate.Result) error {
	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow)
	okColor := color.New(color.FgGreen, color.Bold)
	dimColor := color.New(color.Faint)

	for _, issue := range result.Errors {
		errColor.Fprintf(w, "error")
		fmt.Fprintf(w, "   %s\n", issueLine(issue))
		if issue.Suggestion != "" {
			dimColor.Fprintf(w, "        hint: %s\n", issue.Suggestion)
		}
	}
	for _, issue := range result.Warnings {
		warnColor.Fprintf(w, "warning")
		fmt.Fprintf(w, " %s\n", issueLine(issue))
		if issue.Suggestion != "" {
			dimColor.Fprintf(w, "        hint: %s\n", issue.Suggestion)
		}
	}

	fmt.Fprintln(w)
	if result.IsValid() {
		okColor.Fprintf(w, "valid")
		fmt.Fprintf(w, " (%d warnings)\n", result.WarningCount())
	} else {
		errColor.Fprintf(w, "invalid")
		fmt.Fprintf(w, " (%d errors, %d warnings)\n", result.ErrorCount(), result.WarningCount())
	}
	return nil
}

func issueLine(issue validate.Issue) string {
	subject := issue.ElementID
	if subject == "" {
		subject = string(issue.Layer)
	}
	line := subject
	if line != "" {
		line += ": "
	}
	line += issue.Message
	if issue.Location != "" {
		line += " (" + issue.Location + ")"
	}
	return line
}

func writeJSON(w io.Writer, result *validate.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
