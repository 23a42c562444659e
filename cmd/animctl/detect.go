package main

import (
	"errors"
	"fmt"
	"image"
	"io/fs"

	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/detect"
	"github.com/milk9111/spriteanim/document"
	"github.com/milk9111/spriteanim/render"
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect <sheet>",
	Short: "Find the sprites on a sheet by flood-filling opaque pixels",
	Long:  "detect prints the bounding box of every opaque region in scan order. With --doc and --name the regions are saved as a new animation.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

func init() {
	f := detectCmd.Flags()
	f.Int("threshold", -1, "alpha threshold (default alpha_threshold from config)")
	f.Int("min-size", 0, "drop regions narrower or shorter than this (default min_frame_size from config)")
	f.String("doc", "", "document to add the regions to")
	f.String("name", "", "animation name for the regions")
	f.Float64("fps", 0, "frame rate (default default_fps from config)")
}

func runDetect(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	threshold, _ := f.GetInt("threshold")
	if threshold < 0 {
		threshold = cfg.AlphaThreshold
	}
	if threshold > 255 {
		threshold = 255
	}
	minSize, _ := f.GetInt("min-size")
	if minSize <= 0 {
		minSize = cfg.MinFrameSize
	}

	img, err := render.DecodeFile(args[0])
	if err != nil {
		return err
	}
	regions := detect.Regions(img, uint8(threshold), minSize)
	out := cmd.OutOrStdout()
	for i, r := range regions {
		fmt.Fprintf(out, "%d\t%d,%d\t%dx%d\n", i, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	}

	docPath, _ := f.GetString("doc")
	name, _ := f.GetString("name")
	if docPath == "" || name == "" {
		return nil
	}
	fps, _ := f.GetFloat64("fps")
	if fps <= 0 {
		fps = cfg.DefaultFPS
	}
	doc, err := document.LoadFile(docPath)
	if errors.Is(err, fs.ErrNotExist) {
		doc = document.New()
	} else if err != nil {
		return err
	}
	if doc.Sheet() == "" {
		doc.SetSheet(args[0])
	}
	lib := anim.NewLibrary()
	lib.Register(name, regionFrames(regions, img.Bounds().Min), fps, true)
	a, _ := lib.Get(name)
	doc.Animations.Set(name, document.RecordOf(a))
	if err := document.SaveFile(docPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(out, "saved %s with %d frames to %s\n", name, len(regions), docPath)
	return nil
}

// regionFrames converts regions found in image space into frames relative
// to the sheet's top-left corner.
func regionFrames(regions []image.Rectangle, origin image.Point) []anim.Frame {
	frames := make([]anim.Frame, len(regions))
	for i, r := range regions {
		r = r.Sub(origin)
		frames[i] = anim.Frame{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
	}
	return frames
}
