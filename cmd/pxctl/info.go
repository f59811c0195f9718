package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pxtools/pxkit/px"
)

var infoLang string

func init() {
	cmd := newInfoCmd()
	cmd.Flags().StringVar(&infoLang, "lang", "", "Language for dimension names (default: file default or config)")
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Show codepage, languages and dimensions of a PX file",
		Long: `The info command parses the header of a PX file and reports its codepage,
languages, data section offset and the size of every dimension.

Example:
  pxctl info population.px
  pxctl info population.px --lang en --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type dimensionInfo struct {
	Name   string   `json:"name"`
	Role   string   `json:"role"`
	Size   int      `json:"size"`
	Values []string `json:"values,omitempty"`
}

type fileInfo struct {
	File       string          `json:"file"`
	Codepage   string          `json:"codepage"`
	Languages  []string        `json:"languages"`
	DataOffset int64           `json:"data_offset"`
	Cells      int             `json:"cells"`
	Dimensions []dimensionInfo `json:"dimensions"`
}

func runInfo(args []string) error {
	path := args[0]
	printVerbose("Opening PX file: %s\n", path)

	f, err := px.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	lang := infoLang
	if lang == "" {
		lang = cfg.Language
	}
	hdr := f.Header()
	dims, err := hdr.Dimensions(lang)
	if err != nil {
		return fmt.Errorf("dimensions for language %q: %w", lang, err)
	}

	info := fileInfo{
		File:       path,
		Codepage:   hdr.Codepage,
		Languages:  hdr.Languages(),
		DataOffset: hdr.DataOffset,
		Cells:      1,
	}
	for i, d := range dims {
		role := "heading"
		if i < f.StubLen() {
			role = "stub"
		}
		info.Dimensions = append(info.Dimensions, dimensionInfo{Name: d.Name, Role: role, Size: d.Size(), Values: d.Values})
		info.Cells *= d.Size()
	}

	if jsonOut {
		return printJSON(info)
	}

	codepage := info.Codepage
	if codepage == "" {
		codepage = "(default)"
	}
	printInfo("\nPX File Information:\n")
	printInfo("  File: %s\n", path)
	printInfo("  Codepage: %s\n", codepage)
	printInfo("  Languages: %v\n", info.Languages)
	printInfo("  Data offset: %d\n", info.DataOffset)
	printInfo("  Cells: %d\n", info.Cells)
	printInfo("\nDimensions:\n")
	for i, d := range info.Dimensions {
		printInfo("  %d. %s (%s, %d values)\n", i, d.Name, d.Role, d.Size)
		printVerbose("     %v\n", d.Values)
	}
	return nil
}
