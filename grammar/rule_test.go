package grammar

import (
	"errors"
	"slices"
	"testing"
)

func TestRulePresets(t *testing.T) {
	tests := []struct {
		name string
		rule *Rule
		min  int
		max  int
	}{
		{name: "no arguments", rule: NoArguments(), min: 0, max: 0},
		{name: "exactly one", rule: ExactlyOne(), min: 1, max: 1},
		{name: "zero or more", rule: ZeroOrMore(), min: 0, max: Unbounded},
		{name: "one or more", rule: OneOrMore(), min: 1, max: Unbounded},
		{name: "one of set", rule: OneOf("a", "b"), min: 1, max: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.rule.Min() != tt.min {
				t.Errorf("Min() = %d, want %d", tt.rule.Min(), tt.min)
			}

			if tt.rule.Max() != tt.max {
				t.Errorf("Max() = %d, want %d", tt.rule.Max(), tt.max)
			}
		})
	}
}

func TestOneOf_AllowedValues(t *testing.T) {
	rule := OneOf("red", "green", "blue")

	want := []string{"red", "green", "blue"}
	if got := rule.Allowed(); !slices.Equal(got, want) {
		t.Errorf("Allowed() = %q, want %q", got, want)
	}

	if !rule.accepts("green") {
		t.Error("accepts(green) = false, want true")
	}

	if rule.accepts("purple") {
		t.Error("accepts(purple) = true, want false")
	}
}

func TestArity(t *testing.T) {
	tests := []struct {
		name    string
		min     int
		max     int
		wantErr bool
	}{
		{name: "bounded", min: 1, max: 3},
		{name: "unbounded", min: 2, max: -1},
		{name: "min exceeds max", min: 3, max: 1, wantErr: true},
		{name: "negative min", min: -1, max: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := Arity(tt.min, tt.max)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArity) {
					t.Fatalf("Arity(%d, %d) error = %v, want ErrInvalidArity",
						tt.min, tt.max, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("Arity(%d, %d) error = %v", tt.min, tt.max, err)
			}

			if rule.Min() != tt.min {
				t.Errorf("Min() = %d, want %d", rule.Min(), tt.min)
			}
		})
	}
}

func TestRuleWith(t *testing.T) {
	base := ExactlyOne()

	rule, err := base.With(Config{
		Name:        "color",
		Description: "a color name",
		Default:     func() string { return "red" },
	})
	if err != nil {
		t.Fatalf("With error: %v", err)
	}

	if rule.Name() != "color" {
		t.Errorf("Name() = %q, want %q", rule.Name(), "color")
	}

	if rule.Description() != "a color name" {
		t.Errorf("Description() = %q", rule.Description())
	}

	// The receiver is never mutated.
	if base.Name() != "" || base.supply != nil {
		t.Error("With mutated the receiver")
	}
}

func TestRuleWith_Predicate(t *testing.T) {
	rule, err := ExactlyOne().With(Config{
		Predicate: `value matches "^[0-9]+$"`,
	})
	if err != nil {
		t.Fatalf("With error: %v", err)
	}

	if !rule.accepts("12345") {
		t.Error("accepts(12345) = false, want true")
	}

	if rule.accepts("abc") {
		t.Error("accepts(abc) = true, want false")
	}
}

func TestRuleWith_BadPredicate(t *testing.T) {
	_, err := ExactlyOne().With(Config{Predicate: "value +"})
	if !errors.Is(err, ErrBadPredicate) {
		t.Fatalf("error = %v, want ErrBadPredicate", err)
	}
}

func TestRuleValidate_DefaultFill(t *testing.T) {
	rule, err := ExactlyOne().With(Config{
		Default: func() string { return "fallback" },
	})
	if err != nil {
		t.Fatalf("With error: %v", err)
	}

	sym := &Symbol{kind: KindOption, name: "opt", rule: rule}
	applied := &AppliedOption{symbol: sym}

	if verr := rule.validate(applied); verr != nil {
		t.Fatalf("validate error: %v", verr)
	}

	want := []string{"fallback"}
	if !slices.Equal(applied.arguments, want) {
		t.Errorf("arguments = %q, want %q", applied.arguments, want)
	}
}

func TestRuleValidate_DefaultWithoutMinimum(t *testing.T) {
	// The supplier fires whenever no value was claimed, even when the
	// arity minimum alone would be satisfied.
	rule, err := ZeroOrMore().With(Config{
		Default: func() string { return "fallback" },
	})
	if err != nil {
		t.Fatalf("With error: %v", err)
	}

	sym := &Symbol{kind: KindOption, name: "opt", rule: rule}
	applied := &AppliedOption{symbol: sym}

	if verr := rule.validate(applied); verr != nil {
		t.Fatalf("validate error: %v", verr)
	}

	want := []string{"fallback"}
	if !slices.Equal(applied.arguments, want) {
		t.Errorf("arguments = %q, want %q", applied.arguments, want)
	}

	// A Rule that claims no values at all never consults a supplier.
	none, err := NoArguments().With(Config{
		Default: func() string { return "never" },
	})
	if err != nil {
		t.Fatalf("With error: %v", err)
	}

	bare := &AppliedOption{symbol: &Symbol{kind: KindOption, name: "flag", rule: none}}

	if verr := none.validate(bare); verr != nil {
		t.Fatalf("validate error: %v", verr)
	}

	if len(bare.arguments) != 0 {
		t.Errorf("arguments = %q, want none", bare.arguments)
	}
}

func TestRuleValidate_DefaultOutsideAllowedSet(t *testing.T) {
	// A default that requests a value the allowed set rejects fails the
	// same way a missing argument does.
	rule, err := OneOf("a", "b").With(Config{
		Default: func() string { return "z" },
	})
	if err != nil {
		t.Fatalf("With error: %v", err)
	}

	sym := &Symbol{kind: KindOption, name: "pick", rule: rule}
	applied := &AppliedOption{symbol: sym}

	verr := rule.validate(applied)
	if verr == nil {
		t.Fatal("validate = nil, want error")
	}

	want := "Required argument missing for option: pick"
	if verr.Message != want {
		t.Errorf("message = %q, want %q", verr.Message, want)
	}
}
