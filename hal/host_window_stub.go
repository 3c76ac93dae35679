//go:build !cgo

package hal

import "errors"

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Scale int
	Keys  string
}

func RunWindow(_ func(HAL) func() error, _ WindowConfig) error {
	return errors.New("hal: window mode requires cgo (build with CGO_ENABLED=1)")
}
