package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/example/snapmark/internal/clipboard"
	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/overlay"
)

var (
	runOverlayFn = runOverlay
	copyImageFn  = clipboard.CopyImage
	nowFn        = time.Now
)

// delivery says where a finished region goes.
type delivery struct {
	// output forces a save to this path whatever the chosen action.
	output string
	// hold keeps the process alive this long, or until another program
	// takes the clipboard, after a copy.
	hold time.Duration
}

func (r *root) windowOptions() windowOptions {
	opts := windowOptions{
		title:  r.program,
		theme:  r.activeTheme,
		logger: r.debug,
	}
	if r.config != nil {
		opts.settings = overlaySettings(r.config.Overlay)
	}
	return opts
}

// annotate runs the overlay over bg and hands the result on.
func (r *root) annotate(bg *image.RGBA, d delivery) error {
	res, err := runOverlayFn(bg, r.windowOptions())
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	if res.Status != overlay.StatusCommitted || res.Image == nil {
		fmt.Fprintln(os.Stderr, "cancelled")
		return nil
	}
	r.notifyCapture(res.Image)

	if res.Action == overlay.ActionSave || d.output != "" {
		path := d.output
		if path == "" {
			path, err = r.nextSavePath()
			if err != nil {
				return err
			}
		}
		if err := writePNG(path, res.Image); err != nil {
			return err
		}
		r.notifySave(path)
		fmt.Fprintln(os.Stdout, path)
		if res.Action == overlay.ActionSave {
			return nil
		}
	}
	return r.copyImage(res.Image, d.hold)
}

func (r *root) copyImage(img *image.RGBA, hold time.Duration) error {
	lost, err := copyImageFn(img)
	if err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	b := img.Bounds()
	r.notifyCopy(fmt.Sprintf("%d×%d image", b.Dx(), b.Dy()))
	if hold <= 0 || lost == nil {
		return nil
	}
	fmt.Fprintf(os.Stderr, "holding clipboard for %s\n", hold)
	select {
	case <-lost:
	case <-time.After(hold):
	}
	return nil
}

// nextSavePath names a new file in the save directory from the pattern's
// time layout, adding a counter when the name is taken.
func (r *root) nextSavePath() (string, error) {
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
	}
	dir := cfg.SaveDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve save dir: %w", err)
		}
		dir = wd
	}
	if strings.HasPrefix(dir, "~"+string(filepath.Separator)) || dir == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve save dir: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}
	return uniquePath(dir, savedName(cfg.FilePattern, nowFn()))
}

func savedName(pattern string, at time.Time) string {
	if strings.TrimSpace(pattern) == "" {
		pattern = config.DefaultFilePattern
	}
	name := at.Format(pattern)
	if filepath.Ext(name) == "" {
		name += ".png"
	}
	return name
}

func uniquePath(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	path := filepath.Join(dir, name)
	for n := 1; ; n++ {
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("check %s: %w", path, err)
		}
		path = filepath.Join(dir, stem+"-"+strconv.Itoa(n)+ext)
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
