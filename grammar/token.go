package grammar

import (
	"strings"
)

// TokenKind classifies a lexical token.
type TokenKind int

const (
	// TokenValue is a bare value token with no recognized prefix.
	TokenValue TokenKind = iota

	// TokenOption is an option-like token, beginning with one of the
	// recognized prefixes "-", "--", or "/".
	TokenOption

	// TokenDelimiter is the bare "--" raw-args delimiter. Every token
	// after it is excluded from grammar matching.
	TokenDelimiter
)

// String returns a string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenValue:
		return "Value"

	case TokenOption:
		return "Option"

	case TokenDelimiter:
		return "Delimiter"

	default:
		return "Unknown"
	}
}

// Token is one lexical unit of a command-line invocation. Tokens are
// produced once per parse and never mutated afterward.
type Token struct {
	// Text is the raw token text. Option tokens keep their prefix.
	Text string
	// Kind classifies the token.
	Kind TokenKind
	// Pos is the index of the originating argument in the split input.
	Pos int
	// synthetic marks a value token carved out of an option token by an
	// inline "=" or ":" delimiter. Synthetic values are always claimable
	// as arguments, even when their text collides with an alias.
	synthetic bool
}

// rawDelimiter is the token switching all subsequent input out of
// grammar matching.
const rawDelimiter = "--"

// Split divides raw command-line text into arguments on whitespace,
// except inside double-quoted spans. A quoted span is preserved
// verbatim, including embedded spaces and backslashes, as a single
// argument with the quotes stripped. Absolute filesystem paths on
// either path-separator convention therefore survive quoting intact.
func Split(raw string) []string {
	args := make([]string, 0, 8)

	var (
		sb       strings.Builder
		inQuote  bool
		captured bool
	)

	flush := func() {
		if captured {
			args = append(args, sb.String())
			sb.Reset()

			captured = false
		}
	}

	for _, r := range raw {
		switch {
		case r == '"':
			// Opening quote begins a capture even when empty ("").
			inQuote = !inQuote
			captured = true

		case !inQuote && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()

		default:
			sb.WriteRune(r)

			captured = true
		}
	}

	flush()

	return args
}

// Tokenize classifies a pre-split argument list into an ordered token
// sequence. Option tokens embedding an argument with "=" or ":" are
// split into an option-name token immediately followed by a synthetic
// value token.
func Tokenize(args []string) []Token {
	tokens := make([]Token, 0, len(args))

	for i, arg := range args {
		if arg == rawDelimiter {
			tokens = append(tokens, Token{
				Text: arg,
				Kind: TokenDelimiter,
				Pos:  i,
			})

			continue
		}

		if !optionLike(arg) {
			tokens = append(tokens, Token{
				Text: arg,
				Kind: TokenValue,
				Pos:  i,
			})

			continue
		}

		name, value, found := splitInline(arg)

		tokens = append(tokens, Token{
			Text: name,
			Kind: TokenOption,
			Pos:  i,
		})

		if found {
			tokens = append(tokens, Token{
				Text:      value,
				Kind:      TokenValue,
				Pos:       i,
				synthetic: true,
			})
		}
	}

	return tokens
}

// optionLike reports whether a token starts with a recognized option
// prefix. A lone "-" or "/" is a value, not an option.
func optionLike(s string) bool {
	if len(s) < 2 {
		return false
	}

	return s[0] == '-' || s[0] == '/'
}

// splitInline separates an option token embedding its argument with an
// inline "=" or ":" delimiter. The delimiter search begins past the
// prefix so the prefix characters themselves are never mistaken for
// delimiters.
func splitInline(s string) (name, value string, found bool) {
	start := prefixLen(s)

	idx := strings.IndexAny(s[start:], "=:")
	if idx < 0 {
		return s, "", false
	}

	idx += start

	return s[:idx], s[idx+1:], true
}

// prefixLen returns the length of the option prefix decorating s.
func prefixLen(s string) int {
	switch {
	case strings.HasPrefix(s, "--"):
		return 2
	case strings.HasPrefix(s, "-"), strings.HasPrefix(s, "/"):
		return 1
	default:
		return 0
	}
}

// bareAlias strips any option prefix from s, normalizing "-x", "--x",
// and "/x" to "x". A single "/x" may therefore match either a short or
// long alias x; the prefix style carries no meaning beyond lexing.
func bareAlias(s string) string {
	return s[prefixLen(s):]
}
