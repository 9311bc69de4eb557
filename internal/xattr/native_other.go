//go:build !darwin && !linux

package xattr

import (
	"context"
	"errors"
)

// ErrNativeUnsupported is returned when native clearing is unavailable on this host.
var ErrNativeUnsupported = errors.New("native xattr clearing is not supported on this platform")

// Native is unavailable on this platform.
type Native struct{}

// Clear implements Cleaner.
func (Native) Clear(context.Context, string) error {
	return ErrNativeUnsupported
}
