package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/asuai-cs/secverify/internal/invariant"
	"github.com/asuai-cs/secverify/internal/tracegen"
)

// Output file names, matching what the offline toolchain consumes.
const (
	vectorsFileName    = "test_vectors.json"
	propertiesFileName = "additional_properties.sva"
)

// GenOptions holds flags for the gen command.
type GenOptions struct {
	*RootOptions
	OutDir     string
	ProfileDir string
}

// NewGenCommand creates the gen command.
func NewGenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gen <trace.json>",
		Short: "Generate test vectors and supplementary properties from an instruction trace",
		Long: `Convert a captured RISC-V instruction trace into the test-vector and
SVA property files consumed by the offline verification toolchain.

The trace is a JSON array of {"instr", "pc"} samples; field values may
be numbers or hex strings. Writes ` + vectorsFileName + ` and
` + propertiesFileName + ` into the output directory.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&opts.ProfileDir, "profile", "", "directory of CUE profile files")

	return cmd
}

func runGen(cmd *cobra.Command, opts *GenOptions, tracePath string) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	data, err := os.ReadFile(tracePath)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, fmt.Sprintf("cannot read %s", tracePath), err.Error())
		return WrapExitError(ExitCommandError, "failed to read trace file", err)
	}

	trace, err := tracegen.ParseTrace(data)
	if err != nil {
		_ = formatter.Error(ErrCodeBadRequest, "malformed trace file", err.Error())
		return WrapExitError(ExitFailure, "malformed trace file", err)
	}

	profile := invariant.DefaultProfile()
	if opts.ProfileDir != "" {
		if profile, err = LoadProfile(opts.ProfileDir); err != nil {
			_ = formatter.Error(ErrCodeProfile, "failed to load profile", err.Error())
			return WrapExitError(ExitCommandError, "failed to load profile", err)
		}
	}

	vectorsJSON, err := tracegen.VectorsJSON(trace)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to render vectors", err)
	}

	vectorsPath := filepath.Join(opts.OutDir, vectorsFileName)
	if err := os.WriteFile(vectorsPath, vectorsJSON, 0o644); err != nil {
		_ = formatter.Error(ErrCodeWrite, fmt.Sprintf("cannot write %s", vectorsPath), err.Error())
		return WrapExitError(ExitCommandError, "failed to write vectors", err)
	}

	propsPath := filepath.Join(opts.OutDir, propertiesFileName)
	props := tracegen.SupplementaryProperties(profile)
	if err := os.WriteFile(propsPath, []byte(props), 0o644); err != nil {
		_ = formatter.Error(ErrCodeWrite, fmt.Sprintf("cannot write %s", propsPath), err.Error())
		return WrapExitError(ExitCommandError, "failed to write properties", err)
	}

	slog.Debug("trace generated", "entries", len(trace), "vectors", vectorsPath, "properties", propsPath)
	return formatter.Success("", fmt.Sprintf("wrote %d vector(s) to %s and properties to %s",
		len(trace), vectorsPath, propsPath))
}
