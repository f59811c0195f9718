package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/pxtools/pxkit/px"
	"github.com/pxtools/pxkit/px/reader"
)

func init() {
	rootCmd.AddCommand(newValidateCmd())
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check every data token against the PX value grammar",
		Long: `The validate command scans the whole data section, checks each token
against the numeric and sentinel grammar, and compares the number of cells
with the shape declared by STUB, HEADING and VALUES.

Example:
  pxctl validate population.px
  pxctl validate population.px --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), args)
		},
	}
	return cmd
}

var errInvalid = errors.New("validation failed")

func runValidate(ctx context.Context, args []string) error {
	path := args[0]
	printVerbose("Validating PX file: %s\n", path)

	f, err := px.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cells, verr := f.Validate(ctx, reader.WithBufferSize(cfg.BufferSize))

	result := map[string]any{
		"file":  path,
		"cells": cells,
		"valid": verr == nil,
	}
	if verr != nil {
		result["error"] = verr.Error()
	}
	if jsonOut {
		if err := printJSON(result); err != nil {
			return err
		}
	} else {
		printInfo("\nValidating %s...\n\n", path)
		printInfo("  Cells: %d\n", cells)
		if verr == nil {
			printInfo("  ✓ Data section valid\n")
		} else {
			printInfo("  ✗ %v\n", verr)
		}
	}
	if verr != nil {
		return errInvalid
	}
	return nil
}
