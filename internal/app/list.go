package app

import (
	"fmt"
	"io"

	"fixturectl/internal/fixture"
	"fixturectl/internal/runner"
)

// listFixtures discovers every registered fixture that passes the filter and prints what a run
// would do with it. Discovery errors are printed and do not stop the listing.
func listFixtures(w io.Writer, reg *fixture.Registry, config runner.Configuration) error {
	types := runner.New(config, nil).FilterTypes(reg.Types())
	if len(types) == 0 {
		fmt.Fprintf(w, "⚠️  No fixtures registered\n")
		return nil
	}

	broken := 0
	for _, t := range types {
		desc, err := fixture.Scan(t, fixture.WithOrder(config.Order))
		if err != nil {
			broken++
			fmt.Fprintf(w, "💥 %s: %v\n", t.Name, err)
			continue
		}

		tests := desc.Tests()
		if desc.Ignored() {
			fmt.Fprintf(w, "⏭️  %s (%d tests) ignored: %s\n", desc.Name(), len(tests), stringOrDefault(desc.IgnoreReason(), "no reason given"))
			continue
		}
		fmt.Fprintf(w, "📋 %s (%d tests, %d runnable)\n", desc.Name(), len(tests), desc.CountRunnable())
		for _, test := range tests {
			if test.Ignored {
				fmt.Fprintf(w, "   ⏭️  %s ignored: %s\n", test.Name, stringOrDefault(test.IgnoreReason, "no reason given"))
				continue
			}
			fmt.Fprintf(w, "   • %s\n", test.Name)
		}
	}

	fmt.Fprintf(w, "\n%d fixtures, %d with discovery errors\n", len(types), broken)
	return nil
}

func stringOrDefault(s, defaultValue string) string {
	if s == "" {
		return defaultValue
	}
	return s
}
