// Package grammar parses raw command-line invocations against a
// declared grammar of commands and options, producing a structured,
// queryable result tree plus diagnostics and context-sensitive
// completion suggestions. It recognizes shape and arity only; what a
// tool does with parsed values is the caller's business.
//
// # Model
//
// A grammar is an immutable tree of symbols. Each symbol is either a
// Command (opens a matching scope, may carry children) or an Option
// (a leaf), and carries a canonical name, an alias set, a Rule bounding
// how many argument values it claims, and optionally an allowed-value
// set, a default supplier, and a predicate. Alias collisions among
// sibling symbols fail grammar construction immediately; they are never
// deferred into a parse result.
//
//	one, _ := grammar.NewOption("-o|--one", "first option", grammar.ExactlyOne())
//	two, _ := grammar.NewOption("-t|--two", "second option", grammar.ExactlyOne())
//	g, err := grammar.New(one, two)
//
// # Parsing
//
// Parsing never returns a Go error: every diagnostic is accumulated on
// the result, and one malformed option never prevents validation of
// the rest of the tree.
//
//	result := g.ParseString(`-o "some stuff" --two value`)
//	if result.HasOption("one") {
//		applied, _ := result.Option("o") // any alias, bare or prefixed
//		_ = applied.Arguments()
//	}
//
// Matching walks the token sequence against the symbol tree with a
// scope chain of the commands matched so far. An alias declared on both
// a command and its subcommand always binds to the outermost
// declaration, wherever the token appears in the input. Option tokens
// accept "-", "--", and "/" prefixes interchangeably, inline arguments
// with "=" or ":", and bundled zero-argument short flags ("-xyz").
// Everything after a bare "--" bypasses the grammar entirely.
//
// # Suggestions
//
// The same walk runs in a non-erroring mode to answer "what is legal
// next": Suggest returns the sorted alias and allowed-value candidates
// at the point a partial input leaves off, and SuggestFuzzy ranks them
// for interactive completion.
//
// # Grammar documents
//
// A grammar can also be declared as data and decoded from YAML or TOML
// with DecodeYAML and DecodeTOML; the result is validated exactly like
// one assembled through the builder API.
package grammar
