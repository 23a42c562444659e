package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/milk9111/spriteanim/document"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <doc>",
	Short: "List the animations in a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	doc, err := document.LoadFile(args[0])
	if err != nil {
		return err
	}
	return writeList(cmd.OutOrStdout(), doc, verbose(cmd))
}

// writeList prints one row per animation in document order. With frames
// set every frame is listed under its animation.
func writeList(w io.Writer, doc *document.Document, frames bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if sheet := doc.Sheet(); sheet != "" {
		fmt.Fprintf(tw, "sheet: %s\n", sheet)
	}
	fmt.Fprintln(tw, "NAME\tFRAMES\tFPS\tLOOP\tDURATION")
	lib := document.ToLibrary(doc)
	for _, name := range lib.Names() {
		a, _ := lib.Get(name)
		fmt.Fprintf(tw, "%s\t%d\t%s\t%t\t%sms\n",
			name, len(a.Frames), strconv.FormatFloat(a.FrameRate, 'f', -1, 64), a.Loop,
			strconv.FormatFloat(a.TotalDuration(), 'f', -1, 64))
		if !frames {
			continue
		}
		for i, f := range a.Frames {
			fmt.Fprintf(tw, "  %d\t%d,%d\t%dx%d\t\t%sms\n",
				i, f.X, f.Y, f.Width, f.Height, strconv.FormatFloat(a.DurationOf(i), 'f', -1, 64))
		}
	}
	return tw.Flush()
}
