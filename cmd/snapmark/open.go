package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"time"
)

var loadImageFn = loadImage

type openCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	output string
	hold   time.Duration
}

func (o *openCmd) FlagSet() *flag.FlagSet {
	return o.fs
}

func (o *openCmd) Template() string {
	return "open.txt"
}

func parseOpenCmd(args []string, r *root) (*openCmd, error) {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	cmd := &openCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "image to open")
	fs.StringVar(&cmd.output, "output", "", "also save the finished region to this PNG file")
	fs.DurationVar(&cmd.hold, "hold", 0, "after copying, keep serving the clipboard this long or until it is replaced")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	// A bare path is accepted in place of -file.
	if cmd.file == "" && fs.NArg() == 1 {
		cmd.file = fs.Arg(0)
	} else if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	if strings.TrimSpace(cmd.file) == "" {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (o *openCmd) Run() error {
	img, err := loadImageFn(o.file)
	if err != nil {
		return fmt.Errorf("open %s: %w", o.file, err)
	}
	return o.annotate(img, delivery{output: o.output, hold: o.hold})
}

func loadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba, nil
	}
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return rgba, nil
}
