package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "SNAPMARK_"

type envKey struct {
	name    string
	section string
	key     string
}

var envKeys = []envKey{
	{"THEME", "", "theme"},
	{"SAVE_DIR", "", "save_dir"},
	{"FILE_PATTERN", "", "file_pattern"},
	{"NOTIFY_CAPTURE", "notify", "capture"},
	{"NOTIFY_SAVE", "notify", "save"},
	{"NOTIFY_COPY", "notify", "copy"},
	{"MIN_SELECTION", "overlay", "min_selection"},
	{"HANDLE_SIZE", "overlay", "handle_size"},
	{"LONG_PRESS_MS", "overlay", "long_press_ms"},
	{"DOUBLE_CLICK_MS", "overlay", "double_click_ms"},
	{"TEXT_DRAG_THRESHOLD", "overlay", "text_drag_threshold"},
	{"DEFAULT_COLOR", "overlay", "default_color"},
	{"DEFAULT_WIDTH", "overlay", "default_width"},
}

// ApplyEnv overrides cfg from SNAPMARK_* variables. Values from envFile
// (or SNAPMARK_ENV_FILE, or ./.env) fill in variables the process
// environment does not set.
func ApplyEnv(cfg *Config, envFile string) error {
	dotenv, err := readDotenv(envFile)
	if err != nil {
		return err
	}
	for _, k := range envKeys {
		name := EnvPrefix + k.name
		value, ok := os.LookupEnv(name)
		if !ok {
			value, ok = dotenv[name]
		}
		if !ok || value == "" {
			continue
		}
		var err error
		switch k.section {
		case "":
			err = setRootField(cfg, k.key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, k.key, value)
		case "overlay":
			err = setOverlayField(&cfg.Overlay, k.key, value)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func readDotenv(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvPrefix + "ENV_FILE")
		explicit = path != ""
	}
	if !explicit {
		path = ".env"
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}
