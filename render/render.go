// Package render draws styled tree diagrams of grammars and parse
// results for debugging and equivalence display. It consumes the
// grammar package's output and contains no matching logic.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/cling/grammar"
)

var (
	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6"))

	argumentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

const (
	branchMid  = "├── "
	branchLast = "└── "
	pipe       = "│   "
	gap        = "    "
)

// Grammar renders the declared symbol tree.
func Grammar(g *grammar.Grammar) string {
	var sb strings.Builder

	symbols := g.Symbols()
	for i, sym := range symbols {
		writeSymbol(&sb, sym, "", i == len(symbols)-1)
	}

	return sb.String()
}

func writeSymbol(
	sb *strings.Builder,
	sym *grammar.Symbol,
	prefix string,
	last bool,
) {
	branch := branchMid
	if last {
		branch = branchLast
	}

	sb.WriteString(prefix + branch + symbolLabel(sym) + "\n")

	childPrefix := prefix + pipe
	if last {
		childPrefix = prefix + gap
	}

	children := sym.Children()
	for i, child := range children {
		writeSymbol(sb, child, childPrefix, i == len(children)-1)
	}
}

func symbolLabel(sym *grammar.Symbol) string {
	style := optionStyle
	if sym.Kind() == grammar.KindCommand {
		style = commandStyle
	}

	label := style.Render(strings.Join(sym.Aliases(), "|"))

	if arity := arityLabel(sym.Rule()); arity != "" {
		label += " " + mutedStyle.Render(arity)
	}

	return label
}

func arityLabel(rule *grammar.Rule) string {
	switch {
	case rule.Max() == 0:
		return ""

	case len(rule.Allowed()) > 0:
		return "<" + strings.Join(rule.Allowed(), "|") + ">"

	case rule.Max() == grammar.Unbounded:
		if rule.Min() == 0 {
			return "[value...]"
		}

		return "<value...>"

	case rule.Min() == 0:
		return "[value]"

	default:
		return "<value>"
	}
}

// Result renders the applied occurrences, claimed arguments, leftover
// tokens, and diagnostics of one parse.
func Result(r *grammar.ParseResult) string {
	var sb strings.Builder

	applied := r.Applied()
	for i, a := range applied {
		writeApplied(&sb, a, "", i == len(applied)-1)
	}

	if unparsed := r.UnparsedTokens(); len(unparsed) > 0 {
		sb.WriteString(mutedStyle.Render(
			"unparsed: "+strings.Join(unparsed, " ")) + "\n")
	}

	for _, err := range r.Errors() {
		sb.WriteString(errorStyle.Render("error: "+err.Message) + "\n")
	}

	return sb.String()
}

func writeApplied(
	sb *strings.Builder,
	a *grammar.AppliedOption,
	prefix string,
	last bool,
) {
	branch := branchMid
	if last {
		branch = branchLast
	}

	label := optionStyle.Render(a.Name())
	if a.Symbol().Kind() == grammar.KindCommand {
		label = commandStyle.Render(a.Name())
	}

	if args := a.Arguments(); len(args) > 0 {
		label += " " + argumentStyle.Render(strings.Join(args, " "))
	}

	sb.WriteString(prefix + branch + label + "\n")

	childPrefix := prefix + pipe
	if last {
		childPrefix = prefix + gap
	}

	children := a.Children()
	for i, child := range children {
		writeApplied(sb, child, childPrefix, i == len(children)-1)
	}
}
