package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/example/snapmark/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				// Start with defaults so missing keys are fine
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		// "key = value" wins over "Key: value" so colons inside values survive.
		sep := "="
		if !strings.Contains(line, "=") {
			sep = ":"
		}
		key, value, ok := strings.Cut(line, sep)
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = unquote(strings.TrimSpace(value))

		var err error
		switch {
		case current != nil:
			err = setThemeField(current, key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "overlay":
			err = setOverlayField(&cfg.Overlay, key, value)
		}
		if err != nil {
			name := section
			if name == "" {
				name = "root"
			}
			return nil, fmt.Errorf("line %d [%s]: %w", lineNo, name, err)
		}
	}

	return cfg, scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, "\"") && strings.HasSuffix(v, "\"") {
		return v[1 : len(v)-1]
	}
	return v
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "file_pattern":
		if value == "" {
			return fmt.Errorf("file_pattern must not be empty")
		}
		cfg.FilePattern = value
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "capture":
		n.Capture = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func setOverlayField(o *Overlay, key, value string) error {
	key = strings.ToLower(key)
	if key == "default_color" {
		c, err := theme.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		o.DefaultColor = c
		return nil
	}
	var dst *int
	switch key {
	case "min_selection":
		dst = &o.MinSelection
	case "handle_size":
		dst = &o.HandleSize
	case "long_press_ms":
		dst = &o.LongPressMS
	case "double_click_ms":
		dst = &o.DoubleClickMS
	case "text_drag_threshold":
		dst = &o.TextDragThreshold
	case "default_width":
		dst = &o.DefaultWidth
	default:
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	if n < 0 {
		return fmt.Errorf("key %s must not be negative", key)
	}
	*dst = n
	return nil
}

var rgbaType = reflect.TypeOf(color.RGBA{})

type themeField struct {
	name  string
	color color.RGBA
}

// themeFields lists the colour fields of t in declaration order.
func themeFields(t *theme.Theme) []themeField {
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	var out []themeField
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type != rgbaType {
			continue
		}
		out = append(out, themeField{typ.Field(i).Name, val.Field(i).Interface().(color.RGBA)})
	}
	return out
}

func setThemeField(t *theme.Theme, key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !strings.EqualFold(f.Name, key) || f.Type != rgbaType {
			continue
		}
		col, err := theme.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		val.Field(i).Set(reflect.ValueOf(col))
		return nil
	}
	// Unknown keys are ignored
	return nil
}
