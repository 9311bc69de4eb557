//go:build darwin || linux

package xattr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Native clears attributes with listxattr/removexattr, without spawning processes.
type Native struct{}

// Clear implements Cleaner.
func (Native) Clear(ctx context.Context, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		return clearFile(path)
	})
}

func clearFile(path string) error {
	names, err := list(path)
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := unix.Removexattr(path, name); err != nil && !errors.Is(err, errNoAttr) {
			return &fs.PathError{Op: "removexattr " + name, Path: path, Err: err}
		}
	}

	return nil
}

func list(path string) ([]string, error) {
	size, err := unix.Listxattr(path, nil)
	if err != nil {
		if errors.Is(err, unix.ENOTSUP) {
			return nil, nil
		}

		return nil, &fs.PathError{Op: "listxattr", Path: path, Err: err}
	}

	if size == 0 {
		return nil, nil
	}

	buf := make([]byte, size)

	n, err := unix.Listxattr(path, buf)
	if err != nil {
		return nil, &fs.PathError{Op: "listxattr", Path: path, Err: err}
	}

	if n > len(buf) {
		return nil, fmt.Errorf("listxattr %s: attribute list grew while reading", path)
	}

	var names []string

	for _, raw := range bytes.Split(buf[:n], []byte{0}) {
		if len(raw) > 0 {
			names = append(names, string(raw))
		}
	}

	return names, nil
}
