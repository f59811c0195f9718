package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pxtools/pxkit/px/locate"
)

func init() {
	rootCmd.AddCommand(newLocateCmd())
}

func newLocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate <file> <KEYWORD>",
		Short: "Print the byte offset of a header keyword's value",
		Long: `The locate command scans the raw header bytes for KEYWORD= and prints the
offset of the first byte after '='. A keyword that is absent or occurs more
than once is reported as not found.

Example:
  pxctl locate population.px CODEPAGE
  pxctl locate population.px DATA --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocate(args)
		},
	}
	return cmd
}

func runLocate(args []string) error {
	path, keyword := args[0], strings.ToUpper(args[1])

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	off, err := locate.Find(file, keyword)
	if err != nil {
		return fmt.Errorf("locate %s: %w", keyword, err)
	}

	if jsonOut {
		result := map[string]any{"file": path, "keyword": keyword, "found": off != locate.NotFound}
		if off != locate.NotFound {
			result["offset"] = off
		}
		return printJSON(result)
	}
	if off == locate.NotFound {
		printInfo("%s: not found\n", keyword)
		return nil
	}
	printInfo("%s: %d\n", keyword, off)
	return nil
}
