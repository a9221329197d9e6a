package grammar

import (
	"log/slog"
	"strings"

	"github.com/ardnew/cling/log"
)

// Kind tags the variant of a Symbol.
type Kind int

const (
	// KindOption is a leaf or flag symbol.
	KindOption Kind = iota

	// KindCommand is a symbol that opens a matching scope and may carry
	// child symbols.
	KindCommand
)

// String returns a string representation of the symbol kind.
func (k Kind) String() string {
	switch k {
	case KindOption:
		return "Option"

	case KindCommand:
		return "Command"

	default:
		return "Unknown"
	}
}

// Symbol is one declared grammar node, a tagged variant over {Command,
// Option}. Every Symbol carries a canonical name, a non-empty bare
// alias set (the canonical name included), a description, a Rule, and
// an ordered child list (empty for leaf options). Symbols are immutable
// once their Grammar is constructed and safely shared across parses.
type Symbol struct {
	kind        Kind
	name        string
	aliases     []string
	description string
	rule        *Rule
	children    []*Symbol
	childIndex  map[string]*Symbol

	// exclusive restricts a command to at most one matched child
	// command per parse. It has no meaning for options.
	exclusive bool
}

// Kind returns the symbol's variant tag.
func (s *Symbol) Kind() Kind { return s.kind }

// Name returns the canonical (primary) alias, without prefix.
func (s *Symbol) Name() string { return s.name }

// Aliases returns the bare alias set, canonical name first.
func (s *Symbol) Aliases() []string {
	out := make([]string, len(s.aliases))
	copy(out, s.aliases)

	return out
}

// Description returns the human-readable description.
func (s *Symbol) Description() string { return s.description }

// Rule returns the arguments rule configuring the symbol.
func (s *Symbol) Rule() *Rule { return s.rule }

// Children returns the ordered child symbols.
func (s *Symbol) Children() []*Symbol {
	out := make([]*Symbol, len(s.children))
	copy(out, s.children)

	return out
}

// Matches reports whether alias resolves to this symbol. The alias may
// be given bare or with any recognized prefix.
func (s *Symbol) Matches(alias string) bool {
	bare := bareAlias(alias)

	for _, a := range s.aliases {
		if a == bare {
			return true
		}
	}

	return false
}

// child resolves a bare alias among the symbol's direct children.
func (s *Symbol) child(bare string) (*Symbol, bool) {
	c, ok := s.childIndex[bare]

	return c, ok
}

// NewOption declares an Option symbol. The aliases string lists one or
// more prefixed or bare aliases separated by '|', optionally wrapped in
// parentheses: "-o|--one" or "(-o|--one)". The first alias, stripped of
// its prefix, becomes the canonical name. A nil rule defaults to
// NoArguments.
func NewOption(aliases, description string, rule *Rule) (*Symbol, error) {
	names, err := splitAliases(aliases)
	if err != nil {
		return nil, err
	}

	if rule == nil {
		rule = NoArguments()
	}

	return &Symbol{
		kind:        KindOption,
		name:        names[0],
		aliases:     names,
		description: description,
		rule:        rule,
	}, nil
}

// NewCommand declares a Command symbol with the given child symbols.
// A nil rule means the command claims no free argument values of its
// own. Alias collisions among the direct children are a fatal
// construction error, never deferred into a parse result. Commands
// accept at most one matched child command per parse until relaxed
// with Nonexclusive.
func NewCommand(
	name, description string,
	rule *Rule,
	children ...*Symbol,
) (*Symbol, error) {
	names, err := splitAliases(name)
	if err != nil {
		return nil, err
	}

	if rule == nil {
		rule = NoArguments()
	}

	s := &Symbol{
		kind:        KindCommand,
		name:        names[0],
		aliases:     names,
		description: description,
		rule:        rule,
		exclusive:   true,
	}

	err = s.adopt(children)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Nonexclusive relaxes a command's sibling-subcommand exclusivity,
// permitting any number of its child commands to match in one parse.
// It must only be called during grammar construction.
func (s *Symbol) Nonexclusive() *Symbol {
	s.exclusive = false

	return s
}

// adopt attaches children to a command, validating that no two direct
// children share an alias.
func (s *Symbol) adopt(children []*Symbol) error {
	s.childIndex = make(map[string]*Symbol)

	for _, c := range children {
		if c == nil {
			return ErrNilSymbol.With(slog.String("parent", s.name))
		}

		for _, alias := range c.aliases {
			if _, used := s.childIndex[alias]; used {
				return aliasInUseError(alias)
			}

			s.childIndex[alias] = c
		}

		s.children = append(s.children, c)
	}

	return nil
}

// splitAliases parses an alias declaration string into the bare alias
// list, canonical name first. Duplicate spellings collapse; an empty
// declaration is an error.
func splitAliases(decl string) ([]string, error) {
	decl = strings.TrimSpace(decl)
	decl = strings.TrimPrefix(decl, "(")
	decl = strings.TrimSuffix(decl, ")")

	seen := make(map[string]struct{})
	names := make([]string, 0, 2)

	for _, part := range strings.Split(decl, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		bare := bareAlias(part)
		if bare == "" {
			continue
		}

		if _, dup := seen[bare]; dup {
			continue
		}

		seen[bare] = struct{}{}
		names = append(names, bare)
	}

	if len(names) == 0 {
		return nil, ErrNoAlias.With(slog.String("declaration", decl))
	}

	return names, nil
}

// Grammar is the root of an immutable symbol tree: an unordered
// collection of top-level symbols, alias-unique among themselves, and
// the entry point for a parse. Once constructed it may be shared
// read-only across any number of concurrent parses.
type Grammar struct {
	symbols []*Symbol
	index   map[string]*Symbol
	logger  log.Logger
}

// New constructs a Grammar from the given top-level symbols, validating
// alias uniqueness among them. Construction errors are hard failures of
// grammar setup, reported immediately.
func New(symbols ...*Symbol) (*Grammar, error) {
	g := &Grammar{index: make(map[string]*Symbol)}

	for _, s := range symbols {
		if s == nil {
			return nil, ErrNilSymbol
		}

		for _, alias := range s.aliases {
			if _, used := g.index[alias]; used {
				return nil, aliasInUseError(alias)
			}

			g.index[alias] = s
		}

		g.symbols = append(g.symbols, s)
	}

	return g, nil
}

// Symbols returns the top-level symbols.
func (g *Grammar) Symbols() []*Symbol {
	out := make([]*Symbol, len(g.symbols))
	copy(out, g.symbols)

	return out
}

// WithLogger returns a copy of the Grammar that emits trace-level
// records through logger while matching. The zero-value logger keeps
// all logging a no-op.
func (g *Grammar) WithLogger(logger log.Logger) *Grammar {
	out := *g
	out.logger = logger

	return &out
}

// topLevel resolves a bare alias among the top-level symbols.
func (g *Grammar) topLevel(bare string) (*Symbol, bool) {
	s, ok := g.index[bare]

	return s, ok
}

// soleCommand returns the single top-level command when the grammar
// declares exactly one top-level symbol and it is a command. The root
// token may then be omitted entirely from the input.
func (g *Grammar) soleCommand() (*Symbol, bool) {
	if len(g.symbols) == 1 && g.symbols[0].kind == KindCommand {
		return g.symbols[0], true
	}

	return nil, false
}
