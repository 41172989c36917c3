package output

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette — named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: component ids, target names, paths.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "built" task status (bright, high-visibility).
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "stale" task status and position markers (line:col).
	ColorYellow = lipgloss.Color("220")

	// colorRed is used for the "removed" status.
	colorRed = lipgloss.Color("196")

	// colorBoldRed is used for the "failed" task status (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// colorGreenCheck is used for the completion checkmark (✔).
	colorGreenCheck = lipgloss.Color("10")

	// colorDimGray is used for borders and other structural chrome.
	colorDimGray = lipgloss.Color("240")
)

// Semantic styles — map domain concepts to visual presentation.
var (
	// styleNoun styles identifiable nouns (component ids, target names, paths).
	styleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// styleDim styles structural chrome (scope prefixes, separators, timestamps).
	styleDim = lipgloss.NewStyle().Faint(true)
)

// Styles bundles the handful of named styles tree.go and other multi-line
// renderers need by value rather than by package-level var.
type Styles struct {
	Bold  lipgloss.Style
	Muted lipgloss.Style
}

// GetStyles returns the shared style bundle used by tree and table rendering.
func GetStyles() Styles {
	return Styles{
		Bold:  lipgloss.NewStyle().Bold(true),
		Muted: styleDim,
	}
}

// IsTTY reports whether stdout is attached to a terminal. Spinners and
// colorized output fall back to plain, line-buffered output when false.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the current terminal width, falling back to a
// conservative default when stdout isn't a TTY or the ioctl fails.
func TerminalWidth() int {
	if !IsTTY() {
		return 80
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// Task/component status constants.
const (
	StatusBuilt     = "built"
	StatusUnchanged = "unchanged"
	StatusStale     = "stale"
	StatusRemoved   = "removed"
	StatusValid     = "valid"
	statusFailed    = "failed"
)

// statusStyle returns the lipgloss style for a given status string.
// Unknown statuses return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusBuilt:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusValid:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusStale:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged:
		return lipgloss.NewStyle().Faint(true)
	case StatusRemoved:
		return lipgloss.NewStyle().Foreground(colorRed)
	case statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minPathColumnWidth is the minimum width for the path column before the
// status suffix. This ensures status words align consistently.
const minPathColumnWidth = 48

// FormatTargetLine renders a target identifier with a right-aligned,
// color-coded status suffix.
//
// Format: t:<path>  <status>
//
// The "t:" prefix is dim, the path is cyan, and the status uses statusStyle.
func FormatTargetLine(path, status string) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	prefix := styleDim.Render("t:")
	styledPath := styleNoun.Render(path)
	styledStatus := statusStyle(status).Render(status)

	return prefix + styledPath + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatNotice renders a yellow arrow with a message for action-required output.
// Use this for "next steps" guidance where user action is needed.
func FormatNotice(msg string) string {
	arrow := lipgloss.NewStyle().Foreground(ColorYellow).Render("▶")
	return arrow + " " + msg
}

// FormatComponentRef formats a fully qualified component reference for
// display by replacing the first "#" (registry#id separator) with " - "
// for readability. Any "#" inside the id itself is preserved.
//
// Example: "central#toolchains.gcc-arm@12#cc" → "central - toolchains.gcc-arm@12#cc"
func FormatComponentRef(ref string) string {
	return strings.Replace(ref, "#", " - ", 1)
}

// FormatBlueprintMatch renders a matched blueprint line.
//
// Format: ▸ <target> ← <blueprint ref>
//
// The bullet and target name are cyan. The arrow and ref are dim.
func FormatBlueprintMatch(target, ref string) string {
	bullet := styleNoun.Render("▸")
	t := styleNoun.Render(target)
	arrow := styleDim.Render("←")
	styledRef := styleDim.Render(FormatComponentRef(ref))
	return bullet + " " + t + " " + arrow + " " + styledRef
}

// FormatBlueprintUnmatched renders an unmatched target line.
//
// Format: ▸ <target> (no matching blueprint)
//
// The bullet is yellow. The target name is unstyled. The parenthetical is dim.
func FormatBlueprintUnmatched(target string) string {
	bullet := lipgloss.NewStyle().Foreground(ColorYellow).Render("▸")
	detail := styleDim.Render("(no matching blueprint)")
	return bullet + " " + target + " " + detail
}

// checkColumnWidth is the alignment column for detail text in FormatCheck.
const checkColumnWidth = 34

// FormatCheck renders a validation check result with a green checkmark, label,
// and optional right-aligned detail text.
//
// Format: ✔ <label>                      <detail>
//
// The checkmark is green. The detail text (if provided) is dim/faint and
// right-aligned at column 34 from the start of the label. If detail is empty,
// no trailing whitespace is added.
func FormatCheck(label, detail string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	result := check + " " + label

	if detail != "" {
		padding := checkColumnWidth - len(label)
		if padding < 2 {
			padding = 2
		}
		styledDetail := styleDim.Render(detail)
		result += strings.Repeat(" ", padding) + styledDetail
	}

	return result
}

// FormatFailure renders a bold-red cross with a message, for task-failure
// summaries printed after a build run.
func FormatFailure(msg string) string {
	cross := lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed).Render("✘")
	return cross + " " + msg
}
