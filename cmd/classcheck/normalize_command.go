package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"classcheck/internal/textutil"
)

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "normalize <text>...",
		Short: "Print the matching key of names or submission text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			normalizer := textutil.NewNormalizer(cfg.Matching.Prefixes, cfg.Matching.StripChars)

			type keyed struct {
				Input string `json:"input"`
				Key   string `json:"key"`
			}
			results := make([]keyed, 0, len(args))
			for _, arg := range args {
				results = append(results, keyed{Input: arg, Key: normalizer.Normalize(arg)})
			}
			if jsonOutput {
				return writeJSON(cmd, results)
			}
			out := cmd.OutOrStdout()
			for _, r := range results {
				if len(results) == 1 {
					fmt.Fprintln(out, r.Key)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", r.Input, r.Key)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
