package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/polkiloo/loandesk/internal/fallback"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "loandesk-convert",
		Short:         "Prepare fallback loan data for the loan desk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCSV2JSONCmd(time.Now), newValidateCmd())
	return root
}

func newCSV2JSONCmd(now func() time.Time) *cobra.Command {
	var (
		inputs []string
		output string
	)

	cmd := &cobra.Command{
		Use:   "csv2json",
		Short: "Convert CSV loan exports into the fallback JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(inputs) == 0 {
				return errors.New("at least one --in file is required")
			}
			if output == "" {
				return errors.New("--out is required")
			}

			records, err := convertFiles(fallback.NewConverter(now), inputs)
			if err != nil {
				return err
			}
			if err := writeAtomically(output, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(records), output)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&inputs, "in", nil, "CSV export to convert (repeatable)")
	cmd.Flags().StringVar(&output, "out", "", "Destination JSON file")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a fallback JSON file can be served",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open fallback file: %w", err)
			}
			defer f.Close()

			records, err := fallback.ReadRecords(f)
			if err != nil {
				return err
			}
			seen := make(map[string]struct{}, len(records))
			for i, r := range records {
				if r.ID == "" {
					return fmt.Errorf("record %d has no id", i+1)
				}
				if _, dup := seen[r.ID]; dup {
					return fmt.Errorf("duplicate id %q", r.ID)
				}
				seen[r.ID] = struct{}{}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records ok\n", args[0], len(records))
			return nil
		},
	}
}

func convertFiles(conv *fallback.Converter, paths []string) ([]fallback.Record, error) {
	inputs := make([]fallback.Input, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		inputs = append(inputs, fallback.Input{Name: path, Reader: f})
	}
	return conv.Convert(inputs...)
}

// writeAtomically replaces path in one rename so the running server never reloads a partial file.
func writeAtomically(path string, records []fallback.Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".loandesk-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := fallback.WriteRecords(tmp, records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}
