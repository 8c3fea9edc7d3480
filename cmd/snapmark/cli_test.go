package main

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/snapmark/internal/capture"
	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/notify"
	"github.com/example/snapmark/internal/overlay"
	"github.com/example/snapmark/internal/platform"
)

type sentNote struct{ title, body string }

// testRoot returns a root with an in-memory config and a recording
// notifier, so nothing touches the user's files or desktop.
func testRoot(t *testing.T) (*root, *[]sentNote) {
	t.Helper()
	var notes []sentNote
	n := notify.New(notify.DefaultPreferences(), func(title, body string, _ platform.Options) error {
		notes = append(notes, sentNote{title, body})
		return nil
	})
	n.Enable(notify.EventCapture, true)
	n.Enable(notify.EventSave, true)
	n.Enable(notify.EventCopy, true)
	cfg := config.New()
	cfg.SaveDir = t.TempDir()
	return &root{program: "snapmark", config: cfg, notifier: n}, &notes
}

func stubOverlay(t *testing.T, res overlay.Result, runErr error) *int {
	t.Helper()
	calls := 0
	original := runOverlayFn
	runOverlayFn = func(*image.RGBA, windowOptions) (overlay.Result, error) {
		calls++
		return res, runErr
	}
	t.Cleanup(func() { runOverlayFn = original })
	return &calls
}

func stubCopy(t *testing.T, err error) *[]image.Image {
	t.Helper()
	var copied []image.Image
	original := copyImageFn
	copyImageFn = func(img image.Image) (<-chan struct{}, error) {
		if err != nil {
			return nil, err
		}
		copied = append(copied, img)
		lost := make(chan struct{})
		close(lost)
		return lost, nil
	}
	t.Cleanup(func() { copyImageFn = original })
	return &copied
}

func stubNow(t *testing.T, at time.Time) {
	t.Helper()
	original := nowFn
	nowFn = func() time.Time { return at }
	t.Cleanup(func() { nowFn = original })
}

func committed(action overlay.Action) overlay.Result {
	img := image.NewRGBA(image.Rect(0, 0, 30, 20))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	return overlay.Result{Status: overlay.StatusCommitted, Rect: image.Rect(5, 5, 35, 25), Action: action, Image: img}
}

func TestCaptureRunCaptureError(t *testing.T) {
	original := captureScreenFn
	sentinel := errors.New("portal offline")
	captureScreenFn = func(capture.Options) (*capture.Shot, error) { return nil, sentinel }
	t.Cleanup(func() { captureScreenFn = original })
	calls := stubOverlay(t, overlay.Result{}, nil)

	r, _ := testRoot(t)
	cmd := &captureCmd{root: r.subcommand("capture"), display: "HDMI"}
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "snapmark capture display HDMI"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
	if *calls != 0 {
		t.Fatalf("overlay should not open without an image")
	}
}

func TestCaptureRunDelaysThenCopies(t *testing.T) {
	shot := &capture.Shot{Image: image.NewRGBA(image.Rect(0, 0, 100, 80)), Source: "test"}
	var gotOpts capture.Options
	originalCapture, originalSleep := captureScreenFn, sleepFn
	captureScreenFn = func(opts capture.Options) (*capture.Shot, error) {
		gotOpts = opts
		return shot, nil
	}
	var slept time.Duration
	sleepFn = func(d time.Duration) { slept += d }
	t.Cleanup(func() { captureScreenFn, sleepFn = originalCapture, originalSleep })
	stubOverlay(t, committed(overlay.ActionCopy), nil)
	copied := stubCopy(t, nil)

	r, notes := testRoot(t)
	cmd, err := parseCaptureCmd([]string{"-delay", "2s", "-cursor"}, r.subcommand("capture"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if slept != 2*time.Second {
		t.Errorf("slept %v, want 2s", slept)
	}
	if !gotOpts.IncludeCursor {
		t.Errorf("cursor flag not passed to capture")
	}
	if len(*copied) != 1 {
		t.Fatalf("copied %d images, want 1", len(*copied))
	}
	if len(*notes) != 2 {
		t.Fatalf("notifications = %+v, want capture and copy", *notes)
	}
	if !strings.Contains((*notes)[1].body, "30×20") {
		t.Errorf("copy notification = %q", (*notes)[1].body)
	}
}

func TestParseCaptureRejectsNegativeDelay(t *testing.T) {
	r, _ := testRoot(t)
	if _, err := parseCaptureCmd([]string{"-delay", "-1s"}, r); err == nil {
		t.Fatalf("expected error")
	}
}

func TestAnnotateSaveAction(t *testing.T) {
	stubOverlay(t, committed(overlay.ActionSave), nil)
	copied := stubCopy(t, nil)
	stubNow(t, time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC))

	r, notes := testRoot(t)
	if err := r.annotate(image.NewRGBA(image.Rect(0, 0, 50, 50)), delivery{}); err != nil {
		t.Fatalf("annotate: %v", err)
	}
	want := filepath.Join(r.config.SaveDir, "snapmark-20240309-140507.png")
	f, err := os.Open(want)
	if err != nil {
		t.Fatalf("saved file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode saved file: %v", err)
	}
	if img.Bounds().Size() != image.Pt(30, 20) {
		t.Errorf("saved size = %v", img.Bounds().Size())
	}
	if len(*copied) != 0 {
		t.Errorf("save should not copy")
	}
	if len(*notes) != 2 || !strings.Contains((*notes)[1].body, want) {
		t.Errorf("notifications = %+v, want capture then save of %s", *notes, want)
	}
}

func TestAnnotateCopyWithOutputDoesBoth(t *testing.T) {
	stubOverlay(t, committed(overlay.ActionCopy), nil)
	copied := stubCopy(t, nil)

	r, _ := testRoot(t)
	out := filepath.Join(t.TempDir(), "region.png")
	if err := r.annotate(image.NewRGBA(image.Rect(0, 0, 50, 50)), delivery{output: out, hold: time.Second}); err != nil {
		t.Fatalf("annotate: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if len(*copied) != 1 {
		t.Fatalf("copied %d images, want 1", len(*copied))
	}
}

func TestAnnotateCancelled(t *testing.T) {
	stubOverlay(t, overlay.Result{Status: overlay.StatusCancelled}, nil)
	copied := stubCopy(t, nil)

	r, notes := testRoot(t)
	if err := r.annotate(image.NewRGBA(image.Rect(0, 0, 50, 50)), delivery{}); err != nil {
		t.Fatalf("cancel is not an error: %v", err)
	}
	if len(*copied) != 0 || len(*notes) != 0 {
		t.Fatalf("cancel should do nothing, copied %d, notes %+v", len(*copied), *notes)
	}
}

func TestAnnotateErrors(t *testing.T) {
	sentinel := errors.New("no display")
	stubOverlay(t, overlay.Result{}, sentinel)
	r, _ := testRoot(t)
	if err := r.annotate(image.NewRGBA(image.Rect(0, 0, 5, 5)), delivery{}); !errors.Is(err, sentinel) {
		t.Fatalf("expected overlay error, got %v", err)
	}

	stubOverlay(t, committed(overlay.ActionCopy), nil)
	denied := errors.New("denied")
	stubCopy(t, denied)
	err := r.annotate(image.NewRGBA(image.Rect(0, 0, 5, 5)), delivery{})
	if !errors.Is(err, denied) || !strings.Contains(err.Error(), "copy to clipboard") {
		t.Fatalf("expected clipboard error, got %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	calls := stubOverlay(t, overlay.Result{}, nil)
	r, _ := testRoot(t)
	missing := filepath.Join(t.TempDir(), "missing.png")
	cmd, err := parseOpenCmd([]string{missing}, r.subcommand("open"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "open "+missing) {
		t.Fatalf("expected open error context, got %v", err)
	}
	if *calls != 0 {
		t.Fatalf("overlay should not open")
	}
}

func TestLoadImageRebases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	src.Set(1, 1, color.NRGBA{0, 0, 255, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := loadImage(path)
	if err != nil {
		t.Fatalf("loadImage: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{0, 0, 255, 255}) {
		t.Fatalf("pixel = %v", got)
	}
}

func TestParseOpenRequiresFile(t *testing.T) {
	r, _ := testRoot(t)
	_, err := parseOpenCmd(nil, r.subcommand("open"))
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "snapmark open") {
		t.Fatalf("usage should name the command, got %q", uerr.Error())
	}
}

func TestSavedName(t *testing.T) {
	at := time.Date(2024, 12, 31, 23, 59, 1, 0, time.UTC)
	tests := []struct {
		pattern string
		want    string
	}{
		{"", "snapmark-20241231-235901.png"},
		{"shot-2006-01-02", "shot-2024-12-31.png"},
		{"fixed.jpg", "fixed.jpg"},
	}
	for _, tt := range tests {
		if got := savedName(tt.pattern, at); got != tt.want {
			t.Errorf("savedName(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestUniquePathAddsCounter(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "a-1.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := uniquePath(dir, "a.png")
	if err != nil {
		t.Fatalf("uniquePath: %v", err)
	}
	if want := filepath.Join(dir, "a-2.png"); got != want {
		t.Fatalf("uniquePath = %q, want %q", got, want)
	}
}

func TestRootUnknownCommand(t *testing.T) {
	r := newRoot()
	r.config = config.New()
	r.notifier = notify.New(notify.DefaultPreferences(), func(string, string, platform.Options) error { return nil })
	err := r.Run([]string{"bogus"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	help := uerr.Error()
	for _, want := range []string{"capture", "open", "monitors", "-theme"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
}

func TestRootNotifyDefaultsFromConfig(t *testing.T) {
	r := newRoot()
	r.config = config.New()
	r.config.Notify.Save = true
	r.config.Notify.Copy = true
	r.notifier = notify.New(notify.DefaultPreferences(), func(string, string, platform.Options) error { return nil })
	if err := r.Run([]string{"-notify-copy=false", "version"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !r.saveAlerts {
		t.Errorf("save alerts should come from config")
	}
	if r.copyAlerts {
		t.Errorf("flag should override config")
	}
	if r.activeTheme == nil {
		t.Errorf("theme should be resolved")
	}
}
