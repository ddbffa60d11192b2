// Package main provides the CLI entrypoint for remapper.
//
// remapper converts, inverts, composes and checks the name mappings of
// compiled JVM archives:
//   - convert rewrites mappings from one format into another
//   - invert swaps obfuscated and readable names
//   - compose chains two mapping sets into one
//   - check validates mappings against the jar they describe
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	rerrors "remapper/internal/errors"
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps the failure class of err to a process exit status.
func exitCode(err error) int {
	var e *rerrors.Error
	if !errors.As(err, &e) {
		return 1
	}

	switch e.Code {
	case rerrors.ConfigError:
		return 2
	case rerrors.ParseError:
		return 3
	case rerrors.ConsistencyError:
		return 4
	case rerrors.IOError:
		return 5
	default:
		return 1
	}
}
