package ui

import (
	"fmt"
	"io"
	"os"
)

// Banner is printed once at startup
const Banner = `
  ╔═══════════════════════════════════════╗
  ║  DDG IMAGE SCRAPER :: bulk downloader ║
  ╚═══════════════════════════════════════╝
`

var (
	out   io.Writer = os.Stdout
	quiet bool
)

// SetOutput redirects all terminal output, mainly for tests
func SetOutput(w io.Writer) {
	out = w
}

// SetQuietMode suppresses everything except errors
func SetQuietMode(q bool) {
	quiet = q
}

// PrintBanner prints the startup banner
func PrintBanner() {
	if quiet {
		return
	}
	fmt.Fprint(out, labelStyle.Render(Banner)+"\n")
}

// PrintError prints an error message, optionally followed by a detail
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = fmt.Sprintf("%s: %v", msg, args[0])
	}
	fmt.Fprintln(out, errorStyle.Render(msg))
}

// PrintSuccess prints a success message
func PrintSuccess(msg string) {
	if quiet {
		return
	}
	fmt.Fprintln(out, successStyle.Render(msg))
}

// PrintInfo prints a label/value pair
func PrintInfo(label string, value string) {
	if quiet {
		return
	}
	fmt.Fprintf(out, "%s: %s\n", labelStyle.Render(label), valueStyle.Render(value))
}

// PrintWarning prints a warning message, optionally followed by a detail
func PrintWarning(msg string, args ...interface{}) {
	if quiet {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf("%s: %v", msg, args[0])
	}
	fmt.Fprintln(out, warningStyle.Render(msg))
}

// PrintHighlight prints a highlighted message
func PrintHighlight(msg string) {
	if quiet {
		return
	}
	fmt.Fprintln(out, highlightStyle.Render(msg))
}
