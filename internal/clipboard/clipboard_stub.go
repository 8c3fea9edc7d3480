//go:build !windows && !cgo && !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "fmt"

func writeImage([]byte) (<-chan struct{}, error) {
	return nil, fmt.Errorf("clipboard image operations require cgo on this platform")
}

func writeText(string) error {
	return fmt.Errorf("clipboard text operations require cgo on this platform")
}

func readText() (string, error) {
	return "", fmt.Errorf("clipboard text operations require cgo on this platform")
}
