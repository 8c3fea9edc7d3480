package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// Embedded toolbar icons. Each is a 24px alpha mask named after the
// button it decorates.
//
//go:embed icons/*.png
var embeddedIcons embed.FS

// IconSize is the side of the embedded icons in pixels.
const IconSize = 24

var (
	loadIconsOnce sync.Once
	loadIconsErr  error

	icons = map[string]image.Image{}

	scaledMu sync.Mutex
	scaled   = map[scaledKey]image.Image{}
)

type scaledKey struct {
	name string
	size int
}

func loadIcons() {
	entries, err := fs.ReadDir(embeddedIcons, "icons")
	if err != nil {
		loadIconsErr = err
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".png") {
			continue
		}
		data, err := embeddedIcons.ReadFile(path.Join("icons", name))
		if err != nil {
			loadIconsErr = err
			return
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			loadIconsErr = fmt.Errorf("decode %s: %w", name, err)
			return
		}
		icons[strings.TrimSuffix(name, ".png")] = img
	}
}

func ensureIcons() error {
	loadIconsOnce.Do(loadIcons)
	return loadIconsErr
}

// Icon returns the embedded icon called name at its native size.
func Icon(name string) (image.Image, error) {
	if err := ensureIcons(); err != nil {
		return nil, err
	}
	img, ok := icons[name]
	if !ok {
		return nil, fmt.Errorf("icon %q not embedded", name)
	}
	return img, nil
}

// IconAt returns the icon scaled to size×size. Scaled copies are cached.
func IconAt(name string, size int) (image.Image, error) {
	img, err := Icon(name)
	if err != nil {
		return nil, err
	}
	if size <= 0 || size == img.Bounds().Dx() {
		return img, nil
	}
	key := scaledKey{name, size}
	scaledMu.Lock()
	defer scaledMu.Unlock()
	if out, ok := scaled[key]; ok {
		return out, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	scaled[key] = out
	return out, nil
}

// IconNames lists the embedded icons.
func IconNames() []string {
	if err := ensureIcons(); err != nil {
		return nil
	}
	names := make([]string, 0, len(icons))
	for name := range icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
