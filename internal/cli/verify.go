package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/asuai-cs/secverify/internal/boundary"
	"github.com/asuai-cs/secverify/internal/invariant"
	"github.com/asuai-cs/secverify/internal/report"
	"github.com/asuai-cs/secverify/internal/store"
	"github.com/asuai-cs/secverify/internal/vector"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	ProfileDir string
	Archive    string
	Parallel   int

	// TokenGenerator overrides the run-token generator (for testing).
	TokenGenerator boundary.TokenGenerator
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <vectors.json>",
		Short: "Check test vectors against every registered invariant",
		Long: `Run the verification pipeline over a JSON file of test vectors.

The file holds an ordered array of records with hex-encoded fields:

  [{"instr": "0x13", "pc": "0x0", "mem_data_in": "0x0"}]

Exit code 0 means every invariant passed, 1 means at least one failed
or the input was rejected, 2 means a command error.

Example:
  secverify verify test_vectors.json
  secverify verify test_vectors.json --profile ./profiles/hifive1 --archive runs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.ProfileDir, "profile", "", "directory of CUE profile files (defaults to the built-in RV32I profile)")
	cmd.Flags().StringVar(&opts.Archive, "archive", "", "path to a SQLite archive to record the run in")
	cmd.Flags().IntVar(&opts.Parallel, "parallel", 1, "max concurrent invariant checks per run")

	return cmd
}

func runVerify(cmd *cobra.Command, opts *VerifyOptions, vectorsPath string) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	request, err := os.ReadFile(vectorsPath)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, fmt.Sprintf("cannot read %s", vectorsPath), err.Error())
		return WrapExitError(ExitCommandError, "failed to read vectors file", err)
	}

	profile := invariant.DefaultProfile()
	if opts.ProfileDir != "" {
		profile, err = LoadProfile(opts.ProfileDir)
		if err != nil {
			_ = formatter.Error(ErrCodeProfile, "failed to load profile", err.Error())
			return WrapExitError(ExitCommandError, "failed to load profile", err)
		}
		slog.Debug("profile loaded", "dir", opts.ProfileDir, "reset_vector", profile.ResetVector)
	}

	adapterOpts := []boundary.Option{boundary.WithParallelism(opts.Parallel)}
	if opts.TokenGenerator != nil {
		adapterOpts = append(adapterOpts, boundary.WithTokenGenerator(opts.TokenGenerator))
	}
	adapter := boundary.New(profile, invariant.Default(), adapterOpts...)

	pending := adapter.Submit(cmd.Context(), request)
	resp, err := pending.Wait(cmd.Context())
	if err != nil {
		return reportRunError(formatter, err)
	}

	run := buildRun(resp, profile, request)
	if opts.Archive != "" {
		if err := archiveRun(cmd, opts.Archive, run); err != nil {
			_ = formatter.Error(ErrCodeArchive, "failed to archive run", err.Error())
			return WrapExitError(ExitCommandError, "failed to archive run", err)
		}
	}

	if opts.Format == "json" {
		if err := formatter.Success(resp.RunID, resp.Results); err != nil {
			return WrapExitError(ExitCommandError, "failed to encode output", err)
		}
	} else {
		printResults(cmd, resp)
	}

	if !run.Passed() {
		return NewExitError(ExitFailure, "one or more invariants failed")
	}
	return nil
}

// reportRunError renders a pipeline failure and maps it to an exit
// code: rejected input is a failure (1), anything else a command error.
func reportRunError(formatter *OutputFormatter, err error) error {
	if errs, ok := vector.AsValidationErrors(err); ok {
		_ = formatter.Error(ErrCodeValidation, "test vectors rejected", errs)
		return WrapExitError(ExitFailure, "test vectors rejected", err)
	}
	if boundary.IsBoundaryError(err) {
		_ = formatter.Error(ErrCodeBadRequest, "request rejected", err.Error())
		return WrapExitError(ExitFailure, "request rejected", err)
	}
	_ = formatter.Error(ErrCodeGeneric, "verification error", err.Error())
	return WrapExitError(ExitCommandError, "verification error", err)
}

func buildRun(resp *boundary.Response, profile invariant.Profile, request []byte) *report.Run {
	results := make([]invariant.Result, len(resp.Results))
	for i, tuple := range resp.Results {
		r := invariant.Result{Name: tuple.Name, Status: tuple.Status}
		if tuple.Status == invariant.StatusFail {
			r.Counterexample = &invariant.Counterexample{Message: tuple.Counterexample}
		}
		results[i] = r
	}
	return report.New(resp.RunID, profile, countVectors(request), results)
}

// countVectors re-decodes the request purely for the archive record;
// by this point the body is known to be well-formed.
func countVectors(request []byte) int {
	var raws []vector.RawVector
	if err := json.Unmarshal(request, &raws); err != nil {
		return 0
	}
	return len(raws)
}

func archiveRun(cmd *cobra.Command, path string, run *report.Run) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing archive", "error", closeErr)
		}
	}()
	return st.WriteRun(cmd.Context(), run)
}

func printResults(cmd *cobra.Command, resp *boundary.Response) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s\n", resp.RunID)
	for _, tuple := range resp.Results {
		if tuple.Status == invariant.StatusFail {
			fmt.Fprintf(out, "  %-26s %s  %s\n", tuple.Name, tuple.Status, tuple.Counterexample)
		} else {
			fmt.Fprintf(out, "  %-26s %s\n", tuple.Name, tuple.Status)
		}
	}
}
