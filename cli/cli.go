package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/cling/grammar"
	"github.com/ardnew/cling/log"
	"github.com/ardnew/cling/pkg"
	"github.com/ardnew/cling/render"
)

// Run executes the cling CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon
// completion.
//
// The surface is split at the subcommand: leading global flags and the
// subcommand itself are parsed with the cling grammar engine, while
// everything after the subcommand is the target invocation and reaches
// the engine under inspection verbatim.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	tool, err := toolGrammar()
	if err != nil {
		return err
	}

	head, rest := splitInvocation(tool, args)

	result := tool.Parse(head)
	if errs := result.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Message)
		}

		exit(2)

		return nil
	}

	logger := loggerFrom(result)
	log.SetDefault(logger)

	if result.HasOption("version") {
		fmt.Println(pkg.Name, strings.TrimSpace(pkg.Version))

		return nil
	}

	stop := startProfile(result)
	defer stop()

	switch {
	case result.HasOption("parse"):
		return runParse(ctx, result, rest, logger)

	case result.HasOption("complete"):
		return runComplete(result, rest, logger)

	case result.HasOption("repl"):
		return runREPL(ctx, result, logger)

	default:
		fmt.Println(pkg.Name, "-", pkg.Description)
		fmt.Println()
		fmt.Print(render.Grammar(tool))

		return nil
	}
}

// subcommands recognized by splitInvocation.
var subcommands = map[string]struct{}{
	"parse":    {},
	"complete": {},
	"repl":     {},
}

// splitInvocation divides the arguments at the first subcommand token:
// the head (global flags plus the subcommand) is parsed by the tool's
// own grammar, the rest is the target invocation handed through
// untouched. A token claimed as the argument of a preceding global
// flag is never treated as the subcommand, so `-g parse` names a file.
func splitInvocation(
	tool *grammar.Grammar,
	args []string,
) (head, rest []string) {
	for i := 0; i < len(args); i++ {
		if _, ok := subcommands[args[i]]; ok {
			return args[:i+1], args[i+1:]
		}

		if flagTakesArgument(tool, args[i]) {
			i++
		}
	}

	return args, nil
}

// flagTakesArgument reports whether arg names a top-level option that
// claims a following argument token. Inline forms like -g=file carry
// their value within the token and claim nothing further.
func flagTakesArgument(tool *grammar.Grammar, arg string) bool {
	if strings.ContainsAny(arg, "=:") {
		return false
	}

	for _, sym := range tool.Symbols() {
		if sym.Kind() == grammar.KindOption && sym.Matches(arg) {
			return sym.Rule().Max() != 0
		}
	}

	return false
}

// toolGrammar declares the cling binary's own command surface, built
// with the library it ships.
func toolGrammar() (*grammar.Grammar, error) {
	grammarFile, err := grammar.NewOption(
		"-g|--grammar", "grammar document (YAML or TOML)",
		grammar.ExactlyOne(),
	)
	if err != nil {
		return nil, err
	}

	logLevel, err := grammar.NewOption(
		"--log-level", "minimum log level",
		grammar.OneOf("trace", "debug", "info", "warn", "error"),
	)
	if err != nil {
		return nil, err
	}

	logFormat, err := grammar.NewOption(
		"--log-format", "log output format",
		grammar.OneOf("text", "json"),
	)
	if err != nil {
		return nil, err
	}

	profileMode, err := grammar.NewOption(
		"--profile", "write a profile for this run",
		grammar.OneOf("cpu", "mem"),
	)
	if err != nil {
		return nil, err
	}

	version, err := grammar.NewOption(
		"-v|--version", "print version and exit", nil,
	)
	if err != nil {
		return nil, err
	}

	parse, err := grammar.NewCommand(
		"parse", "parse a target invocation and print the result tree",
		nil,
	)
	if err != nil {
		return nil, err
	}

	complete, err := grammar.NewCommand(
		"complete", "print completion suggestions for a partial invocation",
		nil,
	)
	if err != nil {
		return nil, err
	}

	repl, err := grammar.NewCommand(
		"repl", "interactive completion explorer", nil,
	)
	if err != nil {
		return nil, err
	}

	// Flags and subcommands are top-level symbols so the parse result
	// answers HasOption for them directly; a wrapping root command
	// would bury them one level down.
	return grammar.New(
		grammarFile, logLevel, logFormat, profileMode, version,
		parse, complete, repl,
	)
}

// loggerFrom builds the process logger from parsed global flags.
func loggerFrom(result *grammar.ParseResult) log.Logger {
	level := log.DefaultLevel
	format := log.DefaultFormat

	if opt, ok := result.Option("log-level"); ok {
		if args := opt.Arguments(); len(args) > 0 {
			level = log.ParseLevel(args[0])
		}
	}

	if opt, ok := result.Option("log-format"); ok {
		if args := opt.Arguments(); len(args) > 0 {
			format = log.ParseFormat(args[0])
		}
	}

	return log.Make(os.Stderr,
		log.WithLevel(level),
		log.WithFormat(format),
	)
}

// loadTarget reads the grammar document named by the --grammar flag.
// The decoder is chosen by file extension; anything that is not TOML is
// treated as YAML.
func loadTarget(result *grammar.ParseResult) (*grammar.Grammar, error) {
	opt, ok := result.Option("grammar")
	if !ok || len(opt.Arguments()) == 0 {
		return nil, fmt.Errorf("no grammar document given (use --grammar)")
	}

	path := opt.Arguments()[0]

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decodeByExtension(f, path)
}

func decodeByExtension(r io.Reader, path string) (*grammar.Grammar, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return grammar.DecodeTOML(r)
	}

	return grammar.DecodeYAML(r)
}

func runParse(
	ctx context.Context,
	result *grammar.ParseResult,
	rest []string,
	logger log.Logger,
) error {
	target, err := loadTarget(result)
	if err != nil {
		return err
	}

	parsed := target.WithLogger(logger).Parse(rest)

	fmt.Print(render.Result(parsed))

	return nil
}

func runComplete(
	result *grammar.ParseResult,
	rest []string,
	logger log.Logger,
) error {
	target, err := loadTarget(result)
	if err != nil {
		return err
	}

	input := strings.Join(rest, " ")

	for _, s := range target.WithLogger(logger).Suggest(input) {
		fmt.Println(s)
	}

	return nil
}
