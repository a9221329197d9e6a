package grammar

import (
	"log/slog"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Unbounded marks a Rule with no upper limit on claimed arguments.
const Unbounded = -1

// Rule describes how many argument values a symbol accepts, optionally
// constrained to an enumerated set of allowed literals and optionally
// backed by a default-value supplier. A Rule is immutable once built
// and shared by reference across the symbol it configures.
type Rule struct {
	min, max    int
	name        string
	description string
	allowed     []string
	allowedSet  map[string]struct{}
	supply      func() string
	predicate   *vm.Program
}

// NoArguments returns a Rule accepting no argument values.
func NoArguments() *Rule {
	return &Rule{min: 0, max: 0}
}

// ExactlyOne returns a Rule requiring exactly one argument value.
func ExactlyOne() *Rule {
	return &Rule{min: 1, max: 1}
}

// ZeroOrMore returns a Rule accepting any number of argument values.
func ZeroOrMore() *Rule {
	return &Rule{min: 0, max: Unbounded}
}

// OneOrMore returns a Rule requiring at least one argument value.
func OneOrMore() *Rule {
	return &Rule{min: 1, max: Unbounded}
}

// OneOf returns a Rule requiring exactly one argument value drawn from
// the given literal set.
func OneOf(values ...string) *Rule {
	r := &Rule{min: 1, max: 1}

	return r.withAllowed(values)
}

// Arity returns a Rule with an explicit {min, max} bound. A negative
// max means unbounded. Returns an error when min exceeds a bounded max.
func Arity(minArgs, maxArgs int) (*Rule, error) {
	if maxArgs < 0 {
		maxArgs = Unbounded
	}

	if minArgs < 0 || (maxArgs != Unbounded && minArgs > maxArgs) {
		return nil, ErrInvalidArity.
			With(slog.Int("min", minArgs)).
			With(slog.Int("max", maxArgs))
	}

	return &Rule{min: minArgs, max: maxArgs}, nil
}

// Min returns the minimum number of argument values the Rule requires.
func (r *Rule) Min() int { return r.min }

// Max returns the maximum number of argument values the Rule claims,
// or Unbounded.
func (r *Rule) Max() int { return r.max }

// Name returns the human-readable argument name, if configured.
func (r *Rule) Name() string { return r.name }

// Description returns the human-readable description, if configured.
func (r *Rule) Description() string { return r.description }

// Allowed returns the enumerated set of allowed literal values, or nil
// when any value is accepted.
func (r *Rule) Allowed() []string {
	return slices.Clone(r.allowed)
}

// Config carries the independently optional fields applied by With to
// produce a new Rule. Zero-valued fields leave the receiver's values
// in place.
type Config struct {
	// Name is a human-readable name for the argument values.
	Name string
	// Description is a human-readable description of the values.
	Description string
	// Default supplies a value used when no argument was claimed.
	Default func() string
	// Predicate is an expr-lang boolean expression over "value",
	// compiled when the Config is applied. A claimed value failing the
	// predicate is treated identically to an allowed-set miss.
	Predicate string
}

// With applies cfg to produce a new immutable Rule; the receiver is
// never mutated. Predicate compilation failure is a construction
// error, reported before any parse is attempted.
func (r *Rule) With(cfg Config) (*Rule, error) {
	out := *r

	if cfg.Name != "" {
		out.name = cfg.Name
	}

	if cfg.Description != "" {
		out.description = cfg.Description
	}

	if cfg.Default != nil {
		out.supply = cfg.Default
	}

	if cfg.Predicate != "" {
		program, err := expr.Compile(
			cfg.Predicate,
			expr.Env(predicateEnv{}),
			expr.AsBool(),
		)
		if err != nil {
			return nil, ErrBadPredicate.Wrap(err).
				With(slog.String("predicate", cfg.Predicate))
		}

		out.predicate = program
	}

	return &out, nil
}

// withAllowed returns a copy of the Rule constrained to the given
// literal set.
func (r *Rule) withAllowed(values []string) *Rule {
	out := *r
	out.allowed = slices.Clone(values)
	out.allowedSet = make(map[string]struct{}, len(values))

	for _, v := range values {
		out.allowedSet[v] = struct{}{}
	}

	return &out
}

// predicateEnv is the expr-lang environment a Rule predicate evaluates
// against. The claimed argument is exposed as "value".
type predicateEnv struct {
	Value string `expr:"value"`
}

// capacity returns how many further values the Rule can claim given the
// number already claimed.
func (r *Rule) capacity(claimed int) int {
	if r.max == Unbounded {
		return int(^uint(0) >> 1)
	}

	if claimed >= r.max {
		return 0
	}

	return r.max - claimed
}

// accepts reports whether a single claimed value satisfies the
// allowed-value set and the predicate, when either is configured.
func (r *Rule) accepts(value string) bool {
	if r.allowedSet != nil {
		if _, ok := r.allowedSet[value]; !ok {
			return false
		}
	}

	if r.predicate != nil {
		out, err := vm.Run(r.predicate, predicateEnv{Value: value})
		if err != nil {
			return false
		}

		ok, isBool := out.(bool)

		return isBool && ok
	}

	return true
}

// validate finalizes an applied occurrence against the Rule. When no
// value was claimed and a default supplier exists, the default is
// filled in before checking, regardless of the arity minimum; only a
// Rule claiming no values at all ignores its supplier. A claimed count
// below the minimum and a value outside the allowed set report the
// same diagnostic; validation is local and never short-circuits
// siblings.
func (r *Rule) validate(applied *AppliedOption) *ParseError {
	if len(applied.arguments) == 0 && r.supply != nil && r.max != 0 {
		applied.arguments = append(applied.arguments, r.supply())
	}

	if len(applied.arguments) < r.min {
		return missingArgumentError(applied.symbol)
	}

	for _, value := range applied.arguments {
		if !r.accepts(value) {
			return missingArgumentError(applied.symbol)
		}
	}

	return nil
}
