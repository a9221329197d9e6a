package grammar

import (
	"io"
	"log/slog"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Document is the declarative form of a grammar, decodable from YAML or
// TOML. It exists so tools can ship their command surface as data; the
// built Grammar is validated exactly like one assembled through the
// builder API.
type Document struct {
	Symbols []SymbolSpec `yaml:"symbols" toml:"symbols"`
}

// SymbolSpec declares one symbol of a Document. Exactly one of Command
// or Option names the symbol; both hold an alias declaration string
// such as "-o|--one".
type SymbolSpec struct {
	Command     string       `yaml:"command"     toml:"command"`
	Option      string       `yaml:"option"      toml:"option"`
	Description string       `yaml:"description" toml:"description"`
	Arity       string       `yaml:"arity"       toml:"arity"`
	Min         *int         `yaml:"min"         toml:"min"`
	Max         *int         `yaml:"max"         toml:"max"`
	Values      []string     `yaml:"values"      toml:"values"`
	Default     string       `yaml:"default"     toml:"default"`
	Predicate   string       `yaml:"predicate"   toml:"predicate"`
	Multiple    bool         `yaml:"multiple"    toml:"multiple"`
	Children    []SymbolSpec `yaml:"children"    toml:"children"`
}

// Named arity presets accepted by SymbolSpec.Arity.
const (
	ArityNone       = "none"
	ArityExactlyOne = "exactly-one"
	ArityZeroOrMore = "zero-or-more"
	ArityOneOrMore  = "one-or-more"
)

// DecodeYAML builds a Grammar from a YAML grammar document.
func DecodeYAML(r io.Reader) (*Grammar, error) {
	var doc Document

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil && err != io.EOF {
		return nil, NewError("yaml grammar document").Wrap(err)
	}

	return doc.Build()
}

// DecodeTOML builds a Grammar from a TOML grammar document.
func DecodeTOML(r io.Reader) (*Grammar, error) {
	var doc Document

	_, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, NewError("toml grammar document").Wrap(err)
	}

	return doc.Build()
}

// Build assembles and validates the Grammar a Document declares.
// Duplicate aliases, malformed arity bounds, and bad predicates are
// construction errors, reported before any parse is attempted.
func (d Document) Build() (*Grammar, error) {
	symbols, err := buildSpecs(d.Symbols)
	if err != nil {
		return nil, err
	}

	return New(symbols...)
}

func buildSpecs(specs []SymbolSpec) ([]*Symbol, error) {
	symbols := make([]*Symbol, 0, len(specs))

	for _, spec := range specs {
		sym, err := spec.build()
		if err != nil {
			return nil, err
		}

		symbols = append(symbols, sym)
	}

	return symbols, nil
}

func (spec SymbolSpec) build() (*Symbol, error) {
	rule, err := spec.rule()
	if err != nil {
		return nil, err
	}

	if spec.Command != "" {
		children, err := buildSpecs(spec.Children)
		if err != nil {
			return nil, err
		}

		sym, err := NewCommand(
			spec.Command, spec.Description, rule, children...,
		)
		if err != nil {
			return nil, err
		}

		if spec.Multiple {
			sym.Nonexclusive()
		}

		return sym, nil
	}

	if len(spec.Children) > 0 {
		return nil, ErrNilSymbol.
			With(slog.String("option", spec.Option)).
			Wrap(NewError("options cannot declare children"))
	}

	return NewOption(spec.Option, spec.Description, rule)
}

// rule resolves the arity declaration of a spec: a named preset, an
// explicit {min, max} pair, or an allowed-value set implying
// exactly-one. Name, default, and predicate are applied on top.
func (spec SymbolSpec) rule() (*Rule, error) {
	var (
		rule *Rule
		err  error
	)

	switch {
	case spec.Arity == ArityNone:
		rule = NoArguments()

	case spec.Arity == ArityExactlyOne:
		rule = ExactlyOne()

	case spec.Arity == ArityZeroOrMore:
		rule = ZeroOrMore()

	case spec.Arity == ArityOneOrMore:
		rule = OneOrMore()

	case spec.Arity != "":
		return nil, ErrInvalidArity.
			With(slog.String("arity", spec.Arity))

	case spec.Min != nil || spec.Max != nil:
		minArgs, maxArgs := 0, Unbounded
		if spec.Min != nil {
			minArgs = *spec.Min
		}

		if spec.Max != nil {
			maxArgs = *spec.Max
		}

		rule, err = Arity(minArgs, maxArgs)
		if err != nil {
			return nil, err
		}

	case len(spec.Values) > 0:
		rule = ExactlyOne()

	default:
		rule = NoArguments()
	}

	if len(spec.Values) > 0 {
		rule = rule.withAllowed(spec.Values)
	}

	cfg := Config{Predicate: spec.Predicate}
	if spec.Default != "" {
		value := spec.Default
		cfg.Default = func() string { return value }
	}

	return rule.With(cfg)
}
