package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"classcheck/internal/export"
	"classcheck/internal/reconcile"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

var statusStyles = map[statusKind]struct {
	label  string
	colors text.Colors
}{
	statusInfo:  {"INFO", text.Colors{text.FgBlue}},
	statusOK:    {"OK", text.Colors{text.FgGreen}},
	statusWarn:  {"WARN", text.Colors{text.FgYellow}},
	statusError: {"ERROR", text.Colors{text.FgRed, text.Bold}},
}

var headerColors = text.Colors{text.FgCyan, text.Bold}

// renderStatusLine formats "  Label:   [KIND] message" for the run summary.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusInfo]
	}
	status := "[" + style.label + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	if colorize {
		return style.colors.Sprint(line)
	}
	return line
}

func renderSectionHeader(title string, colorize bool) []string {
	line := "== " + strings.TrimSpace(title) + " =="
	rule := strings.Repeat("-", text.StringWidthWithoutEscSequences(line))
	if colorize {
		return []string{headerColors.Sprint(line), headerColors.Sprint(rule)}
	}
	return []string{line, rule}
}

// verdictSymbol renders a matrix cell, colouring it for terminals.
func verdictSymbol(symbols export.Symbols, v reconcile.Verdict, colorize bool) string {
	s := symbols.Symbol(v)
	if !colorize {
		return s
	}
	switch v {
	case reconcile.Verified:
		return text.Colors{text.FgGreen}.Sprint(s)
	case reconcile.Flagged:
		return text.Colors{text.FgYellow}.Sprint(s)
	default:
		return text.Colors{text.Faint}.Sprint(s)
	}
}

func shouldColorize(writer io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
