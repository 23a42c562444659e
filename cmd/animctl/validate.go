package main

import (
	"fmt"

	"github.com/milk9111/spriteanim/document"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <doc>...",
	Short: "Check documents for malformed animations",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		doc, err := document.LoadFile(path)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", path, err)
			failed++
			continue
		}
		if err := document.Validate(doc); err != nil {
			fmt.Fprintf(out, "%s:\n%v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "%s: ok (%d animations)\n", path, doc.Animations.Len())
	}
	if failed > 0 {
		return fmt.Errorf("validation failed for %d of %d document(s)", failed, len(args))
	}
	return nil
}
