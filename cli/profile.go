package cli

import (
	"github.com/pkg/profile"

	"github.com/ardnew/cling/grammar"
)

// startProfile begins profiling when the --profile flag was given and
// returns the function that stops it. Without the flag the returned
// function is a no-op.
func startProfile(result *grammar.ParseResult) func() {
	opt, ok := result.Option("profile")
	if !ok || len(opt.Arguments()) == 0 {
		return func() {}
	}

	mode := profile.CPUProfile
	if opt.Arguments()[0] == "mem" {
		mode = profile.MemProfile
	}

	p := profile.Start(mode, profile.ProfilePath("."), profile.Quiet)

	return p.Stop
}
