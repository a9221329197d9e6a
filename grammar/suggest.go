package grammar

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Suggest computes the sorted set of legal next tokens for a partially
// typed command line. Input ending mid-word treats the trailing word as
// a not-yet-committed partial token: committed tokens are matched
// normally and candidates are filtered by the partial's prefix.
// Results are deduplicated and returned in ascending lexical order.
func (g *Grammar) Suggest(input string) []string {
	args, partial := splitPartial(input)

	return g.suggest(args, partial)
}

// SuggestFuzzy ranks the legal next tokens against the trailing partial
// word using fuzzy matching, best match first. With no partial word it
// degrades to the strict sorted suggestion set. This is the variant
// interactive completers consume.
func (g *Grammar) SuggestFuzzy(input string) []string {
	args, partial := splitPartial(input)

	candidates := g.suggest(args, "")
	if partial == "" {
		return candidates
	}

	matches := fuzzy.Find(bareAlias(partial), candidates)

	out := make([]string, len(matches))
	for i, match := range matches {
		out[i] = match.Str
	}

	return out
}

// splitPartial divides raw input into committed arguments and a
// trailing partial word. The final word is committed only when the
// input ends in whitespace.
func splitPartial(input string) (args []string, partial string) {
	args = Split(input)

	if len(args) == 0 {
		return args, ""
	}

	if strings.HasSuffix(input, " ") || strings.HasSuffix(input, "\t") {
		return args, ""
	}

	return args[:len(args)-1], args[len(args)-1]
}

// suggest re-runs the matching walk in a non-erroring mode and returns
// the union of the open scope chain's still-legal child aliases and,
// when the last matched option remains open for arguments, its
// allowed-value set.
func (g *Grammar) suggest(args []string, partial string) []string {
	m := g.newMatcher(args)
	m.suggesting = true

	m.matchRoot()
	m.run()

	// Everything after the raw-args delimiter is outside the grammar.
	if m.sawDelimiter {
		return nil
	}

	set := make(map[string]struct{})

	if m.open != nil {
		for _, v := range m.open.rule.allowed {
			set[v] = struct{}{}
		}
	}

	for _, fr := range m.chain {
		children := g.symbols
		if fr.symbol != nil {
			children = fr.symbol.children
		}

		blocked := subcommandBlocked(fr)

		for _, child := range children {
			if child.kind == KindCommand && blocked {
				continue
			}

			for _, alias := range child.aliases {
				set[alias] = struct{}{}
			}
		}
	}

	prefix := bareAlias(partial)

	out := make([]string, 0, len(set))
	for s := range set {
		if prefix != "" && !strings.HasPrefix(s, prefix) {
			continue
		}

		out = append(out, s)
	}

	sort.Strings(out)

	return out
}

// subcommandBlocked reports whether an exclusive command scope has
// already matched a child command, making sibling commands illegal.
func subcommandBlocked(fr frame) bool {
	if fr.symbol == nil || !fr.symbol.exclusive || fr.applied == nil {
		return false
	}

	return len(subcommandNames(fr.applied)) > 0
}
