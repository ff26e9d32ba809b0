package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asuai-cs/secverify/internal/invariant"
)

// NewInvariantsCommand creates the invariants command.
func NewInvariantsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "invariants",
		Short:         "List the registered security invariants in evaluation order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInvariants(cmd, rootOpts)
		},
	}
}

type invariantInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func runInvariants(cmd *cobra.Command, opts *RootOptions) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	defs := invariant.Default().Definitions()
	infos := make([]invariantInfo, len(defs))
	for i, d := range defs {
		infos[i] = invariantInfo{Name: d.Name, Description: d.Description}
	}

	if opts.Format == "json" {
		return formatter.Success("", infos)
	}

	out := cmd.OutOrStdout()
	for _, info := range infos {
		fmt.Fprintf(out, "%-26s %s\n", info.Name, info.Description)
	}
	return nil
}
