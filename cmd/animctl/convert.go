package main

import (
	"fmt"

	"github.com/milk9111/spriteanim/document"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Rewrite a document as JSON or YAML, chosen by the output extension",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := convertFile(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", args[1], document.FormatFromPath(args[1]))
		return nil
	},
}

func convertFile(in, out string) error {
	doc, err := document.LoadFile(in)
	if err != nil {
		return err
	}
	return document.SaveFile(out, doc)
}
