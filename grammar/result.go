package grammar

import (
	"strings"
)

// AppliedOption is one matched occurrence of a symbol within a single
// parse. It holds a non-owning back-reference to the symbol it matched,
// the ordered argument values actually claimed, and the child
// occurrences matched under it in encounter order. Repeated occurrences
// of the same symbol within one scope collate into a single
// AppliedOption whose argument list concatenates across occurrences.
// AppliedOptions are never mutated after the parse completes.
type AppliedOption struct {
	symbol    *Symbol
	arguments []string
	children  []*AppliedOption
}

// Symbol returns the grammar symbol this occurrence matched. The
// Grammar outlives every ParseResult derived from it, so the reference
// is always valid.
func (a *AppliedOption) Symbol() *Symbol { return a.symbol }

// Name returns the matched symbol's canonical name.
func (a *AppliedOption) Name() string { return a.symbol.name }

// Arguments returns the claimed argument values in claim order.
func (a *AppliedOption) Arguments() []string {
	out := make([]string, len(a.arguments))
	copy(out, a.arguments)

	return out
}

// Children returns the nested occurrences in encounter order.
func (a *AppliedOption) Children() []*AppliedOption {
	out := make([]*AppliedOption, len(a.children))
	copy(out, a.children)

	return out
}

// HasOption reports whether a direct child occurrence matches the given
// alias, bare or prefixed. Lookup never recurses into grandchildren;
// callers navigate level by level to mirror the grammar's nesting.
func (a *AppliedOption) HasOption(alias string) bool {
	_, ok := a.Option(alias)

	return ok
}

// Option returns the direct child occurrence matching the given alias.
// Returns (nil, false) when no such child was matched.
func (a *AppliedOption) Option(alias string) (*AppliedOption, bool) {
	return findApplied(a.children, alias)
}

// findApplied resolves an alias, bare or prefixed, among a list of
// occurrences.
func findApplied(
	applied []*AppliedOption,
	alias string,
) (*AppliedOption, bool) {
	for _, a := range applied {
		if a.symbol.Matches(alias) {
			return a, true
		}
	}

	return nil, false
}

// ParseResult is the root of the output of one parse: the top-level
// matched occurrences, the accumulated diagnostics, and the normalized
// leftover tokens following the raw-args delimiter. It is a pure value
// object living exactly as long as the caller holds it.
type ParseResult struct {
	grammar  *Grammar
	applied  []*AppliedOption
	errors   []*ParseError
	unparsed []string
	args     []string
}

// Grammar returns the grammar that produced this result.
func (r *ParseResult) Grammar() *Grammar { return r.grammar }

// Applied returns the top-level matched occurrences in encounter order.
func (r *ParseResult) Applied() []*AppliedOption {
	out := make([]*AppliedOption, len(r.applied))
	copy(out, r.applied)

	return out
}

// HasOption reports whether a top-level occurrence matches the given
// alias, bare or prefixed.
func (r *ParseResult) HasOption(alias string) bool {
	_, ok := r.Option(alias)

	return ok
}

// Option returns the top-level occurrence matching the given alias.
// Returns (nil, false) when absent; callers check HasOption first or
// tolerate the miss.
func (r *ParseResult) Option(alias string) (*AppliedOption, bool) {
	return findApplied(r.applied, alias)
}

// Errors returns the accumulated diagnostics in emission order.
func (r *ParseResult) Errors() []*ParseError {
	out := make([]*ParseError, len(r.errors))
	copy(out, r.errors)

	return out
}

// UnparsedTokens returns the leftover values following the raw-args
// delimiter, in input order.
func (r *ParseResult) UnparsedTokens() []string {
	out := make([]string, len(r.unparsed))
	copy(out, r.unparsed)

	return out
}

// Suggestions computes the sorted set of legal next tokens at the point
// the parsed input left off. It re-runs matching in a non-erroring mode
// over the same argument sequence.
func (r *ParseResult) Suggestions() []string {
	return r.grammar.suggest(r.args, "")
}

// CommandString reconstructs a parseable command line from the applied
// occurrences and their arguments. Reparsing the reconstruction yields
// an equivalent result tree. Arguments containing whitespace are
// quoted.
func (r *ParseResult) CommandString() string {
	var sb strings.Builder

	writeApplied(&sb, r.applied)

	return strings.TrimSpace(sb.String())
}

// String renders a terse single-line summary of the result.
func (r *ParseResult) String() string {
	var sb strings.Builder

	sb.WriteString(r.CommandString())

	for _, e := range r.errors {
		sb.WriteString("\n!  ")
		sb.WriteString(e.Message)
	}

	return sb.String()
}

// writeApplied renders occurrences depth-first into sb.
func writeApplied(sb *strings.Builder, applied []*AppliedOption) {
	for _, a := range applied {
		sb.WriteString(spelling(a.symbol))
		sb.WriteByte(' ')

		for _, arg := range a.arguments {
			sb.WriteString(quoteArgument(arg))
			sb.WriteByte(' ')
		}

		writeApplied(sb, a.children)
	}
}

// spelling renders a symbol's canonical token: commands appear bare,
// single-letter options with a short prefix, longer options with a
// long prefix.
func spelling(s *Symbol) string {
	if s.kind == KindCommand {
		return s.name
	}

	if len(s.name) == 1 {
		return "-" + s.name
	}

	return "--" + s.name
}

// quoteArgument wraps values containing whitespace in double quotes so
// the reconstruction survives re-tokenizing.
func quoteArgument(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}

	return s
}
