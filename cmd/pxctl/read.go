package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pxtools/pxkit/px"
	"github.com/pxtools/pxkit/px/coords"
	"github.com/pxtools/pxkit/px/datavalue"
	"github.com/pxtools/pxkit/px/reader"
)

var (
	readSel   []string
	readOrder string
	readMode  string
)

func init() {
	cmd := newReadCmd()
	cmd.Flags().StringArrayVar(&readSel, "sel", nil,
		"Coordinates for the next dimension in storage order, e.g. 0,2 or 1:4 or * (repeatable)")
	cmd.Flags().StringVar(&readOrder, "order", "", "Processing order as dimension positions, outermost first (e.g. 1,0,2)")
	cmd.Flags().StringVar(&readMode, "mode", "", "Output mode: decimal, float or numeric (default from config, else decimal)")
	rootCmd.AddCommand(cmd)
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Read a sub-selection of data cells",
		Long: `The read command decodes the cells addressed by one --sel value per
dimension (stub dimensions first, then heading dimensions). Dimensions without
a --sel value are read in full. Cells are printed in processing order, which
defaults to storage order.

Modes:
  decimal - exact decimal values, tokens validated
  float   - float64 values, tokens validated
  numeric - plain numbers with sentinels mapped through the config, not validated

Example:
  pxctl read population.px --sel 1,2 --sel 0,1 --sel 3
  pxctl read population.px --sel 1,2 --sel '*' --sel 3 --order 1,0,2 --mode float
  pxctl read population.px --sel 0 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(cmd.Context(), args)
		},
	}
	return cmd
}

type cellOut struct {
	Labels []string `json:"labels"`
	Value  string   `json:"value"`
}

type readOut struct {
	File       string    `json:"file"`
	Mode       string    `json:"mode"`
	Dimensions []string  `json:"dimensions"`
	Cells      []cellOut `json:"cells"`
}

func runRead(ctx context.Context, args []string) error {
	path := args[0]

	mode := cfg.Mode
	if readMode != "" {
		mode = readMode
	}
	mode, err := parseMode(mode)
	if err != nil {
		return err
	}
	order, err := parseOrder(readOrder)
	if err != nil {
		return err
	}

	f, err := px.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sel, err := parseSelection(readSel, f.Dims())
	if err != nil {
		return err
	}
	req := px.Request{Selection: sel, Order: order}
	printVerbose("Reading %d cells from %s (mode %s)\n", sel.Count(), path, mode)

	values, err := readValues(ctx, f, req, mode)
	if err != nil {
		return err
	}
	dims, err := f.Header().Dimensions(cfg.Language)
	if err != nil {
		return fmt.Errorf("dimensions for language %q: %w", cfg.Language, err)
	}

	out := readOut{File: path, Mode: mode}
	for _, d := range dims {
		out.Dimensions = append(out.Dimensions, d.Name)
	}
	ix, err := coords.New(f.Dims(), sel, order)
	if err != nil {
		return err
	}
	var pos []int
	for i, v := range values {
		if i > 0 {
			ix.Next()
		}
		pos = ix.Coords(pos)
		labels := make([]string, len(pos))
		for d, c := range pos {
			if c < len(dims[d].Values) {
				labels[d] = dims[d].Values[c]
			} else {
				labels[d] = strconv.Itoa(c)
			}
		}
		out.Cells = append(out.Cells, cellOut{Labels: labels, Value: v})
	}

	if jsonOut {
		return printJSON(out)
	}
	printVerbose("%s\n", strings.Join(out.Dimensions, " | "))
	for _, c := range out.Cells {
		printInfo("%s\t%s\n", strings.Join(c.Labels, " | "), c.Value)
	}
	return nil
}

// readValues runs the read in the requested mode and renders every cell as text.
func readValues(ctx context.Context, f *px.File, req px.Request, mode string) ([]string, error) {
	opts := []reader.Option{reader.WithBufferSize(cfg.BufferSize)}
	switch mode {
	case modeFloat:
		cells, err := f.ReadFloat(ctx, req, opts...)
		if err != nil {
			return nil, err
		}
		return render(cells), nil
	case modeNumeric:
		// The numeric path does not classify tokens, so reject a malformed
		// data section before handing it over.
		if _, err := f.Validate(ctx, opts...); err != nil {
			return nil, err
		}
		m := cfg.sentinelMap()
		nums, err := f.ReadNumbers(ctx, req, &m, opts...)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(nums))
		for i, n := range nums {
			out[i] = strconv.FormatFloat(n, 'f', -1, 64)
		}
		return out, nil
	default:
		cells, err := f.ReadDecimal(ctx, req, opts...)
		if err != nil {
			return nil, err
		}
		return render(cells), nil
	}
}

func render[T datavalue.Number](cells []datavalue.Value[T]) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.String()
	}
	return out
}
