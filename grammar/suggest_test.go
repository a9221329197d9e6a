package grammar

import (
	"slices"
	"testing"
)

func TestSuggest_RootScope(t *testing.T) {
	got := twoOptionGrammar(t).Suggest("")

	want := []string{"o", "one", "t", "two"}
	if !slices.Equal(got, want) {
		t.Errorf("Suggest(\"\") = %q, want %q", got, want)
	}
}

func TestSuggest_PartialPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "-o", want: []string{"o", "one"}},
		{input: "--on", want: []string{"one"}},
		{input: "/t", want: []string{"t", "two"}},
		{input: "-q", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := twoOptionGrammar(t).Suggest(tt.input)

			if !slices.Equal(got, tt.want) {
				t.Errorf("Suggest(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSuggest_ScopeChainUnion(t *testing.T) {
	inner := mustCommand(t, "inner", "", nil,
		mustOption(t, "-d|--deep", "", nil),
	)

	outer := mustCommand(t, "outer", "", nil,
		mustOption(t, "-s|--shallow", "", nil),
		inner,
	)

	g := mustGrammar(t, outer, mustOption(t, "-g|--global", "", nil))

	got := g.Suggest("outer inner ")

	// Options from every open scope remain reachable.
	for _, want := range []string{"d", "deep", "s", "shallow", "g", "global"} {
		if !slices.Contains(got, want) {
			t.Errorf("Suggest missing %q: %q", want, got)
		}
	}
}

func TestSuggest_ExclusiveSiblingBlocked(t *testing.T) {
	g := mustGrammar(t, mustCommand(t, "outer", "", nil,
		mustCommand(t, "inner1", "", nil),
		mustCommand(t, "inner2", "", nil),
		mustOption(t, "-v|--verbose", "", nil),
	))

	got := g.Suggest("outer inner1 ")

	for _, banned := range []string{"inner1", "inner2"} {
		if slices.Contains(got, banned) {
			t.Errorf("Suggest offers %q after sibling already matched: %q",
				banned, got)
		}
	}

	// Non-command children stay legal.
	if !slices.Contains(got, "verbose") {
		t.Errorf("Suggest missing verbose: %q", got)
	}
}

func TestSuggest_OpenOptionAllowedValues(t *testing.T) {
	g := mustGrammar(t, mustOption(t, "-p|--pick", "", OneOf("alpha", "beta")))

	got := g.Suggest("-p ")

	for _, want := range []string{"alpha", "beta"} {
		if !slices.Contains(got, want) {
			t.Errorf("Suggest missing allowed value %q: %q", want, got)
		}
	}

	// A partial narrows the allowed-value set too.
	got = g.Suggest("-p al")

	if want := []string{"alpha"}; !slices.Equal(got, want) {
		t.Errorf("Suggest(\"-p al\") = %q, want %q", got, want)
	}
}

func TestSuggest_NothingAfterDelimiter(t *testing.T) {
	if got := twoOptionGrammar(t).Suggest("-o -- "); len(got) != 0 {
		t.Errorf("Suggest after delimiter = %q, want none", got)
	}
}

func TestSuggest_IgnoresEarlierErrors(t *testing.T) {
	// An unrecognized committed token does not poison the suggestion
	// walk for what follows.
	got := twoOptionGrammar(t).Suggest("-q --on")

	if want := []string{"one"}; !slices.Equal(got, want) {
		t.Errorf("Suggest = %q, want %q", got, want)
	}
}

func TestSuggestFuzzy(t *testing.T) {
	g := mustGrammar(t,
		mustOption(t, "-v|--verbose", "", nil),
		mustOption(t, "-f|--file", "", nil),
	)

	got := g.SuggestFuzzy("vrb")

	if !slices.Contains(got, "verbose") {
		t.Fatalf("SuggestFuzzy(%q) = %q, want verbose ranked", "vrb", got)
	}

	if slices.Contains(got, "file") {
		t.Errorf("SuggestFuzzy(%q) = %q, file should not match", "vrb", got)
	}

	// Without a partial word it degrades to the strict sorted set.
	got = g.SuggestFuzzy("")

	want := []string{"f", "file", "v", "verbose"}
	if !slices.Equal(got, want) {
		t.Errorf("SuggestFuzzy(\"\") = %q, want %q", got, want)
	}
}
