package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asuai-cs/secverify/internal/vector"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <vectors.json>",
		Short: "Check that a vectors file parses and validates, without evaluating",
		Long: `Parse a test-vectors file through the vector store only.

Reports every malformed record at once, so a whole batch can be fixed
in a single pass. No invariants are evaluated.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command, opts *RootOptions, vectorsPath string) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	data, err := os.ReadFile(vectorsPath)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, fmt.Sprintf("cannot read %s", vectorsPath), err.Error())
		return WrapExitError(ExitCommandError, "failed to read vectors file", err)
	}

	var raws []vector.RawVector
	if err := json.Unmarshal(data, &raws); err != nil {
		_ = formatter.Error(ErrCodeBadRequest, "file is not a JSON array of vector records", err.Error())
		return WrapExitError(ExitFailure, "malformed vectors file", err)
	}

	vectors, err := vector.Ingest(raws)
	if err != nil {
		if errs, ok := vector.AsValidationErrors(err); ok {
			_ = formatter.Error(ErrCodeValidation, fmt.Sprintf("%d record(s) rejected", len(errs)), errs)
		} else {
			_ = formatter.Error(ErrCodeGeneric, "validation error", err.Error())
		}
		return WrapExitError(ExitFailure, "validation failed", err)
	}

	if err := formatter.Success("", fmt.Sprintf("%d vector(s) valid", len(vectors))); err != nil {
		return WrapExitError(ExitCommandError, "failed to encode output", err)
	}
	return nil
}
