package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"remapper/internal/diagnostic"
	rerrors "remapper/internal/errors"
	"remapper/internal/session"
)

var checkCmd = &cobra.Command{
	Use:   "check <jar> <mappings> [spec]",
	Short: "Validate mappings against a jar",
	Long: `Check that every class and member named by the mappings exists in the jar.
Unknown names are reported with the closest known names.

spec defaults to the format named in the profile (formats.default).`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runCheck,
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the registered formats",
	Args:  cobra.NoArgs,
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(formatsCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	spec := s.Config.Formats.Default
	if len(args) == 3 {
		spec = args[2]
	}

	res, err := s.Check(cmd.Context(), session.Source{Spec: spec, Path: args[1]}, args[0])
	if err != nil {
		return err
	}

	printDiagnostics(cmd.OutOrStdout(), res)

	if res.HasErrors() {
		return rerrors.Consistency(fmt.Sprintf("%d problems in %s", len(res.Errors), args[1]), res.Error())
	}

	fmt.Fprintln(cmd.OutOrStdout(), "mappings are consistent with", args[0])

	return nil
}

func printDiagnostics(w io.Writer, res *diagnostic.Diagnostics) {
	for _, d := range res.All() {
		fmt.Fprintln(w, d.String())
	}
}

func runFormats(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()

	for _, f := range s.Describe() {
		fmt.Fprintln(out, f.Name)
		printVariants(out, "reader", f.Readers)
		printVariants(out, "writer", f.Writers)
	}

	return nil
}

func printVariants(w io.Writer, kind string, variants []session.VariantInfo) {
	for _, v := range variants {
		fmt.Fprintf(w, "  %s %s %s\n", kind, v.Name, v.PathTypes)

		for _, opt := range v.Options {
			var notes []string
			if opt.Required {
				notes = append(notes, "required")
			}

			if opt.Default != "" {
				notes = append(notes, "default "+opt.Default)
			}

			line := fmt.Sprintf("    option %s: %s", opt.Name, opt.Description)
			if len(notes) > 0 {
				line += " [" + strings.Join(notes, ", ") + "]"
			}

			fmt.Fprintln(w, line)
		}
	}
}
