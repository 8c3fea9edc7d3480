package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/snapmark/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func recorder(log *[]sent) Sender {
	return func(title, body string, opts platform.Options) error {
		s := sent{title: title, body: body, opts: opts}
		if opts.IconPath != "" {
			_, err := os.Stat(opts.IconPath)
			s.iconExisted = err == nil
		}
		*log = append(*log, s)
		return nil
	}
}

func TestDisabledEventsAreSilent(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), recorder(&got))
	n.Copy("")
	n.Save("x.png")
	n.Capture(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(got) != 0 {
		t.Fatalf("nothing is enabled, sent %+v", got)
	}
	var nilNotifier *Notifier
	nilNotifier.Enable(EventCopy, true)
	nilNotifier.Copy("x")
}

func TestCopyAndSave(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), recorder(&got))
	n.Enable(EventCopy, true)
	n.Enable(EventSave, true)

	n.Copy("")
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n.Save(path)

	if len(got) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(got))
	}
	if got[0].title != "snapmark" || got[0].body != "Copied image to clipboard" {
		t.Errorf("copy notification = %+v", got[0])
	}
	if got[1].body != "Saved "+path || got[1].opts.IconPath != path {
		t.Errorf("save notification = %+v", got[1])
	}
}

func TestCapturePreviewIsTemporary(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), recorder(&got))
	n.Enable(EventCapture, true)
	n.Capture(image.NewRGBA(image.Rect(0, 0, 30, 20)))
	if len(got) != 1 {
		t.Fatalf("sent %d notifications", len(got))
	}
	if got[0].body != "Captured 30×20 region" {
		t.Errorf("body = %q", got[0].body)
	}
	if !got[0].iconExisted {
		t.Errorf("preview should exist while sending")
	}
	if _, err := os.Stat(got[0].opts.IconPath); !os.IsNotExist(err) {
		t.Errorf("preview should be removed afterwards, stat err = %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("SNAPMARK_NOTIFY_TITLE", "Shots")
	t.Setenv("SNAPMARK_NOTIFY_COPY_TEXT", "%s ready")
	t.Setenv("SNAPMARK_NOTIFY_SAVE_TEXT", "")
	var got []sent
	n := New(LoadPreferences(), recorder(&got))
	n.Enable(EventCopy, true)
	n.Copy("region")
	if len(got) != 1 || got[0].title != "Shots" || got[0].body != "region ready" {
		t.Fatalf("sent %+v", got)
	}
}

func TestSendErrorIsLoggedOnly(t *testing.T) {
	calls := 0
	n := New(DefaultPreferences(), func(string, string, platform.Options) error {
		calls++
		return errors.New("no notification daemon")
	})
	n.Enable(EventCopy, true)
	n.Copy("x")
	if calls != 1 {
		t.Fatalf("calls = %d", calls)
	}
}
