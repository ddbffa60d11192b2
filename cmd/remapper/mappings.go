package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"remapper/internal/mappingops"
	"remapper/internal/session"
)

var (
	deltaFrom     string
	deltaFromSpec string
)

var convertCmd = &cobra.Command{
	Use:   "convert <in-spec> <in> <out-spec> <out>",
	Short: "Rewrite mappings in another format",
	Long: `Read mappings in one format and write them in another.

With --delta-from only the changes relative to the given mappings are handed
to the writer; delta writers such as mcp:delta then record just those.

Examples:
  remapper convert yaml mappings.yaml tiny mappings.tiny
  remapper convert yaml mappings.yaml mcp:delta mcp/ --delta-from mcp/`,
	Args: cobra.ExactArgs(4),
	RunE: runConvert,
}

var invertCmd = &cobra.Command{
	Use:   "invert <in-spec> <in> <out-spec> <out>",
	Short: "Swap obfuscated and readable names",
	Args:  cobra.ExactArgs(4),
	RunE:  runInvert,
}

var composeCmd = &cobra.Command{
	Use:   "compose <left-spec> <left> <right-spec> <right> <out-spec> <out> <keep>",
	Short: "Chain two mapping sets",
	Long: `Compose left then right: the result maps what left maps from to what right
maps left's output to.

keep selects which one-sided records survive: none, left, right or both.`,
	Args: cobra.ExactArgs(7),
	RunE: runCompose,
}

func init() {
	convertCmd.Flags().StringVar(&deltaFrom, "delta-from", "",
		"Write only the changes relative to the mappings at this path")
	convertCmd.Flags().StringVar(&deltaFromSpec, "delta-from-format", "",
		"Format of the --delta-from mappings (default: the input format)")

	for _, cmd := range []*cobra.Command{convertCmd, invertCmd, composeCmd} {
		addJarFlag(cmd)
		rootCmd.AddCommand(cmd)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	req := session.ConvertRequest{
		In:      session.Source{Spec: args[0], Path: args[1]},
		Out:     session.Source{Spec: args[2], Path: args[3]},
		JarPath: jarPath,
	}

	if deltaFrom != "" {
		spec := deltaFromSpec
		if spec == "" {
			spec = args[0]
		}

		req.DeltaFrom = &session.Source{Spec: spec, Path: deltaFrom}
	}

	if err := s.Convert(cmd.Context(), req); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[3])

	return nil
}

func runInvert(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	err = s.Invert(cmd.Context(), session.InvertRequest{
		In:      session.Source{Spec: args[0], Path: args[1]},
		Out:     session.Source{Spec: args[2], Path: args[3]},
		JarPath: jarPath,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[3])

	return nil
}

func runCompose(cmd *cobra.Command, args []string) error {
	keep, err := mappingops.ParseKeepMode(args[6])
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	err = s.Compose(cmd.Context(), session.ComposeRequest{
		Left:    session.Source{Spec: args[0], Path: args[1]},
		Right:   session.Source{Spec: args[2], Path: args[3]},
		Out:     session.Source{Spec: args[4], Path: args[5]},
		Keep:    keep,
		JarPath: jarPath,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[5])

	return nil
}
