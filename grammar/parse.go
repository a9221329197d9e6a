package grammar

import (
	"log/slog"
	"slices"
	"strings"
)

// ParseString tokenizes raw command-line text and parses it against the
// grammar. All diagnostics are accumulated on the result; a malformed
// option never prevents validation of the rest of the tree.
func (g *Grammar) ParseString(input string) *ParseResult {
	return g.Parse(Split(input))
}

// Parse matches a pre-split argument list against the grammar and
// returns the result tree. The grammar itself is never mutated; each
// parse allocates its own token sequence and result.
func (g *Grammar) Parse(args []string) *ParseResult {
	m := g.newMatcher(args)

	m.matchRoot()
	m.run()
	m.finalize()

	g.logger.Trace("parse complete",
		slog.Int("applied", len(m.result.applied)),
		slog.Int("errors", len(m.result.errors)))

	return m.result
}

// frame is one open scope on the matching chain: the command whose
// children are currently reachable, and the applied occurrence its
// matches attach to. The root frame has a nil symbol and resolves
// against the grammar's top-level symbols.
type frame struct {
	symbol  *Symbol
	applied *AppliedOption
}

// matcher walks the token sequence against the grammar tree. It keeps a
// scope chain (the path of commands matched so far) and a cursor into
// the tokens; the cursor only advances, so a parse of bounded input
// always terminates.
type matcher struct {
	grammar *Grammar
	tokens  []Token
	cursor  int
	chain   []frame
	result  *ParseResult

	// suggesting suppresses diagnostics and tracks the state needed to
	// compute legal next tokens instead.
	suggesting   bool
	sawDelimiter bool
	open         *Symbol // last matched option still accepting values
}

func (g *Grammar) newMatcher(args []string) *matcher {
	return &matcher{
		grammar: g,
		tokens:  Tokenize(args),
		chain:   []frame{{}},
		result: &ParseResult{
			grammar: g,
			args:    slices.Clone(args),
		},
	}
}

// lookupKey normalizes a token into the bare alias used for symbol
// resolution.
func lookupKey(tok Token) string {
	if tok.Kind == TokenOption {
		return bareAlias(tok.Text)
	}

	return tok.Text
}

// matchRoot resolves the root symbol against the first token. The token
// may name a top-level symbol exactly (left to the main loop), spell a
// filesystem path to the executable whose base name matches a top-level
// command, or be omitted entirely when the grammar declares exactly one
// top-level command.
func (m *matcher) matchRoot() {
	if len(m.tokens) == 0 {
		return
	}

	first := m.tokens[0]
	if first.Kind == TokenDelimiter {
		return
	}

	if _, ok := m.grammar.topLevel(lookupKey(first)); ok {
		return
	}

	if base, ok := executableBase(first.Text); ok {
		if sym, found := m.grammar.topLevel(base); found &&
			sym.kind == KindCommand {
			m.cursor = 1
			m.push(0, sym)

			m.grammar.logger.Trace("root matched by path",
				slog.String("path", first.Text),
				slog.String("command", sym.name))

			return
		}
	}

	if sole, ok := m.grammar.soleCommand(); ok {
		m.push(0, sole)

		m.grammar.logger.Trace("root command implied",
			slog.String("command", sole.name))
	}
}

// executableBase extracts the final path component of a path-like
// token, stripping any executable extension. Plain tokens without a
// path separator are not treated as paths.
func executableBase(text string) (string, bool) {
	if !strings.ContainsAny(text, `/\`) {
		return "", false
	}

	base := text
	if idx := strings.LastIndexAny(base, `/\`); idx >= 0 {
		base = base[idx+1:]
	}

	if dot := strings.LastIndexByte(base, '.'); dot > 0 {
		base = base[:dot]
	}

	if base == "" {
		return "", false
	}

	return base, true
}

// run is the main matching loop. Per scope level the machine cycles
// Idle → MatchingSymbol → ConsumingArguments → Idle.
func (m *matcher) run() {
	for m.cursor < len(m.tokens) {
		tok := m.tokens[m.cursor]

		if tok.Kind == TokenDelimiter {
			m.collectUnparsed(m.cursor + 1)

			return
		}

		if idx, sym, ok := m.resolve(lookupKey(tok)); ok {
			m.cursor++
			m.apply(idx, sym)

			continue
		}

		if tok.Kind == TokenOption {
			if m.expandBundle(tok) {
				continue
			}

			m.addError(unrecognizedError(tok.Text))
			m.cursor++

			continue
		}

		if m.claimFree(tok) {
			m.cursor++

			continue
		}

		m.addError(unrecognizedError(tok.Text))
		m.cursor++
	}
}

// resolve looks a bare alias up along the scope chain. Resolution
// always prefers the outermost (root-most) scope over an inner scope
// offering the same alias, independent of token position relative to
// entering the inner scope.
func (m *matcher) resolve(bare string) (int, *Symbol, bool) {
	for i, fr := range m.chain {
		if fr.symbol == nil {
			if sym, ok := m.grammar.topLevel(bare); ok {
				return i, sym, true
			}

			continue
		}

		if sym, ok := fr.symbol.child(bare); ok {
			return i, sym, true
		}
	}

	return 0, nil, false
}

// resolvesAnywhere reports whether a token matches some symbol's alias
// on the currently-open scope chain. Argument consumption never
// swallows such a token.
func (m *matcher) resolvesAnywhere(tok Token) bool {
	_, _, ok := m.resolve(lookupKey(tok))

	return ok
}

// apply records a symbol match at chain level idx. Commands become the
// new current scope; options transition to argument consumption.
func (m *matcher) apply(idx int, sym *Symbol) {
	m.open = nil

	if sym.kind == KindCommand {
		m.push(idx, sym)

		m.grammar.logger.Trace("command matched",
			slog.String("command", sym.name),
			slog.Int("depth", len(m.chain)-1))

		return
	}

	applied := m.appliedFor(idx, sym)
	m.consumeArguments(applied)

	m.grammar.logger.Trace("option matched",
		slog.String("option", sym.name),
		slog.Int("arguments", len(applied.arguments)))
}

// push truncates the chain to level idx and opens a new scope for a
// matched child command of that level.
func (m *matcher) push(idx int, sym *Symbol) {
	applied := m.appliedFor(idx, sym)

	m.chain = m.chain[:idx+1]
	m.chain = append(m.chain, frame{symbol: sym, applied: applied})
}

// container returns the applied-occurrence list that matches at chain
// level idx attach to.
func (m *matcher) container(idx int) *[]*AppliedOption {
	if m.chain[idx].symbol == nil {
		return &m.result.applied
	}

	return &m.chain[idx].applied.children
}

// appliedFor returns the existing occurrence of sym at chain level idx,
// collating repeats, or records a new one in encounter order.
func (m *matcher) appliedFor(idx int, sym *Symbol) *AppliedOption {
	list := m.container(idx)

	for _, a := range *list {
		if a.symbol == sym {
			return a
		}
	}

	a := &AppliedOption{symbol: sym}
	*list = append(*list, a)

	return a
}

// consumeArguments greedily claims value tokens for an applied option,
// up to its rule's maximum. Consumption stops early at end of input,
// at the raw-args delimiter, or at a token matching an alias anywhere
// on the open scope chain. Synthetic values carved from an inline
// delimiter are always claimed.
func (m *matcher) consumeArguments(applied *AppliedOption) {
	rule := applied.symbol.rule

	for m.cursor < len(m.tokens) {
		if rule.capacity(len(applied.arguments)) == 0 {
			return
		}

		tok := m.tokens[m.cursor]

		if tok.Kind == TokenDelimiter {
			return
		}

		if !tok.synthetic && m.resolvesAnywhere(tok) {
			return
		}

		applied.arguments = append(applied.arguments, tok.Text)
		m.cursor++
	}

	// Ran off the end of input with capacity remaining: the option is
	// still open, which feeds allowed-value suggestions.
	if rule.capacity(len(applied.arguments)) > 0 {
		m.open = applied.symbol
	}
}

// claimFree claims a free value token for an open command scope whose
// own rule still has capacity, innermost scope first. Relative ordering
// of a command's options and free arguments is immaterial to the
// claimed sets.
func (m *matcher) claimFree(tok Token) bool {
	for i := len(m.chain) - 1; i >= 0; i-- {
		fr := m.chain[i]
		if fr.symbol == nil {
			continue
		}

		if fr.symbol.rule.capacity(len(fr.applied.arguments)) > 0 {
			fr.applied.arguments = append(fr.applied.arguments, tok.Text)

			m.grammar.logger.Trace("free value claimed",
				slog.String("command", fr.symbol.name),
				slog.String("value", tok.Text))

			return true
		}
	}

	return false
}

// expandBundle applies a bundled short-flag token of the form "-xyz"
// where every letter independently resolves to a zero-argument option
// at the current scope. If any letter does not, bundling is not
// applied and the token stands as a single (likely unrecognized)
// option.
func (m *matcher) expandBundle(tok Token) bool {
	text := tok.Text
	if !strings.HasPrefix(text, "-") || strings.HasPrefix(text, "--") {
		return false
	}

	bare := text[1:]
	if len(bare) < 2 {
		return false
	}

	type hit struct {
		idx int
		sym *Symbol
	}

	hits := make([]hit, 0, len(bare))

	for _, r := range bare {
		idx, sym, ok := m.resolve(string(r))
		if !ok || sym.kind != KindOption || sym.rule.max != 0 {
			return false
		}

		hits = append(hits, hit{idx: idx, sym: sym})
	}

	m.cursor++

	for _, h := range hits {
		m.appliedFor(h.idx, h.sym)
	}

	m.grammar.logger.Trace("bundle expanded",
		slog.String("token", text),
		slog.Int("flags", len(hits)))

	return true
}

// collectUnparsed gathers tokens following the raw-args delimiter.
// Bare values are collected verbatim in order; tokens carrying an
// option prefix are discarded, never checked against the grammar.
func (m *matcher) collectUnparsed(from int) {
	m.sawDelimiter = true

	for _, tok := range m.tokens[from:] {
		if tok.Kind == TokenValue && !tok.synthetic {
			m.result.unparsed = append(m.result.unparsed, tok.Text)
		}
	}

	m.cursor = len(m.tokens)
}

// addError records a diagnostic unless the matcher is running in
// suggestion mode.
func (m *matcher) addError(err *ParseError) {
	if m.suggesting {
		return
	}

	m.result.errors = append(m.result.errors, err)
}

// finalize walks the completed result tree, emitting the
// exclusive-subcommand diagnostic for commands that matched more than
// one child command, and validating every occurrence's rule. All
// errors accumulate; nothing short-circuits.
func (m *matcher) finalize() {
	if m.suggesting {
		return
	}

	var walk func(applied []*AppliedOption)

	walk = func(applied []*AppliedOption) {
		for _, a := range applied {
			if a.symbol.kind == KindCommand && a.symbol.exclusive {
				names := subcommandNames(a)
				if len(names) > 1 {
					m.result.errors = append(m.result.errors,
						exclusiveSubcommandError(a.symbol, names))
				}
			}

			if err := a.symbol.rule.validate(a); err != nil {
				m.result.errors = append(m.result.errors, err)
			}

			walk(a.children)
		}
	}

	walk(m.result.applied)
}

// subcommandNames lists the child commands matched under an occurrence,
// in encounter order.
func subcommandNames(a *AppliedOption) []string {
	var names []string

	for _, c := range a.children {
		if c.symbol.kind == KindCommand {
			names = append(names, c.symbol.name)
		}
	}

	return names
}
