// Package fsutil provides the filesystem primitives used to assemble bundles.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
)

// Exists reports whether path exists (file or directory).
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Overlay recursively copies src onto dst. src may be a file or a directory.
// Existing files at the same relative paths are overwritten; files present only
// in dst are left alone. Symlinks are copied as links.
func Overlay(src, dst string) error {
	return cp.Copy(src, dst, cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow
		},
		OnDirExists: func(string, string) cp.DirExistsAction {
			return cp.Merge
		},
	})
}

// CopyContent copies src to dst, following symlinks so dst always receives the
// linked content. A symlink already sitting at dst is replaced, never written through.
func CopyContent(src, dst string) error {
	resolved, err := filepath.EvalSymlinks(src)
	if err != nil {
		return err
	}

	if info, err := os.Lstat(dst); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		if err := os.Remove(dst); err != nil {
			return err
		}
	}

	return cp.Copy(resolved, dst, cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Deep
		},
		OnDirExists: func(string, string) cp.DirExistsAction {
			return cp.Merge
		},
	})
}

// CopyFile copies a single regular file to dst, truncating dst, and applies mode.
// A symlinked src is dereferenced.
func CopyFile(src, dst string, mode fs.FileMode) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return &fs.PathError{Op: "copy", Path: src, Err: errors.New("is a directory")}
	}

	if err := CopyContent(src, dst); err != nil {
		return err
	}

	return os.Chmod(dst, mode)
}
