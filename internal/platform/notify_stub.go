//go:build !linux && !darwin && !windows

package platform

import "errors"

// Notify reports that this platform has no notifier.
func Notify(title, body string, opts Options) error {
	return errors.ErrUnsupported
}
