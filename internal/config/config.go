package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/snapmark/internal/theme"
)

// DefaultFilePattern names saved images. It is a time layout.
const DefaultFilePattern = "snapmark-20060102-150405.png"

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Overlay holds interaction tuning. Zero values mean "use the built-in
// default".
type Overlay struct {
	MinSelection      int
	HandleSize        int
	LongPressMS       int
	DoubleClickMS     int
	TextDragThreshold int
	DefaultColor      color.RGBA
	DefaultWidth      int
}

// Config holds the application configuration.
type Config struct {
	Theme       string
	SaveDir     string
	FilePattern string
	Notify      Notify
	Overlay     Overlay
	Themes      map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		FilePattern: DefaultFilePattern,
		Themes:      make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.FilePattern != "" && c.FilePattern != DefaultFilePattern {
		fmt.Fprintf(&sb, "file_pattern = %s\n", c.FilePattern)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	if c.Overlay != (Overlay{}) {
		sb.WriteString("[overlay]\n")
		writeInt(&sb, "min_selection", c.Overlay.MinSelection)
		writeInt(&sb, "handle_size", c.Overlay.HandleSize)
		writeInt(&sb, "long_press_ms", c.Overlay.LongPressMS)
		writeInt(&sb, "double_click_ms", c.Overlay.DoubleClickMS)
		writeInt(&sb, "text_drag_threshold", c.Overlay.TextDragThreshold)
		if c.Overlay.DefaultColor.A != 0 {
			fmt.Fprintf(&sb, "default_color = %s\n", toHex(c.Overlay.DefaultColor))
		}
		writeInt(&sb, "default_width", c.Overlay.DefaultWidth)
		sb.WriteString("\n")
	}

	// Sorted for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range themeFields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.name, toHex(f.color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeInt(sb *strings.Builder, key string, v int) {
	if v != 0 {
		fmt.Fprintf(sb, "%s = %d\n", key, v)
	}
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
