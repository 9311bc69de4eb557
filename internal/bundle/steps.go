package bundle

import (
	"os"

	"github.com/mpyw/neubundle/internal/fsutil"
)

// ExecutableMode is applied to Contents/MacOS/main.
const ExecutableMode os.FileMode = 0o755

const dirMode os.FileMode = 0o755

// CheckInputs verifies the compiled binary and resource archive exist.
func (t Target) CheckInputs() error {
	if !fsutil.Exists(t.Binary) {
		return &MissingArtifactError{Kind: KindBinary, Path: t.Binary}
	}

	if !fsutil.Exists(t.Resources) {
		return &MissingArtifactError{Kind: KindResources, Path: t.Resources}
	}

	return nil
}

// Materialize creates the destination and overlays the container template onto it.
// With clean set, an existing destination bundle is removed first; otherwise files
// left over from earlier builds are kept.
func (t Target) Materialize(clean bool) error {
	if clean {
		if err := os.RemoveAll(t.Destination); err != nil {
			return &FilesystemError{Op: "remove", Path: t.Destination, Err: err}
		}
	}

	if err := os.MkdirAll(t.Destination, dirMode); err != nil {
		return &FilesystemError{Op: "create", Path: t.Destination, Err: err}
	}

	if err := fsutil.Overlay(t.Container, t.Destination); err != nil {
		return &FilesystemError{Op: "copy container to", Path: t.Destination, Err: err}
	}

	for _, dir := range []string{t.MacOSDir(), t.ResourcesDir} {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return &FilesystemError{Op: "create", Path: dir, Err: err}
		}
	}

	return nil
}

// CopyBinary copies the compiled binary to Contents/MacOS/main and makes it executable.
func (t Target) CopyBinary() error {
	if err := fsutil.CopyFile(t.Binary, t.Executable, ExecutableMode); err != nil {
		return &FilesystemError{Op: "copy binary to", Path: t.Executable, Err: err}
	}

	return nil
}

// CopyResources copies the resource archive into Contents/Resources.
func (t Target) CopyResources() error {
	dst := t.ResourceDestination()
	if err := fsutil.CopyContent(t.Resources, dst); err != nil {
		return &FilesystemError{Op: "copy resources to", Path: dst, Err: err}
	}

	return nil
}

// CopyExtensions copies the extensions directory when present. It reports whether anything was copied.
func (t Target) CopyExtensions() (bool, error) {
	if !fsutil.Exists(t.Extensions) {
		return false, nil
	}

	dst := t.ExtensionsDestination()
	if err := fsutil.Overlay(t.Extensions, dst); err != nil {
		return false, &FilesystemError{Op: "copy extensions to", Path: dst, Err: err}
	}

	return true, nil
}

// CopyIcon copies the configured icon (file or directory) when present. It reports whether anything was copied.
func (t Target) CopyIcon() (bool, error) {
	if t.Icon == "" || !fsutil.Exists(t.Icon) {
		return false, nil
	}

	dst := t.IconDestination()
	if err := fsutil.Overlay(t.Icon, dst); err != nil {
		return false, &FilesystemError{Op: "copy icon to", Path: dst, Err: err}
	}

	return true, nil
}

// SubstitutePlist applies placeholders to the bundle's Info.plist in place.
// It returns any {APP_*} tokens that remain unresolved afterwards.
func (t Target) SubstitutePlist(p Placeholders) ([]string, error) {
	result, err := p.ApplyFile(t.Plist)
	if err != nil {
		return nil, &FilesystemError{Op: "process", Path: t.Plist, Err: err}
	}

	return Unresolved(result), nil
}

// RenderPlist returns the container's Info.plist before and after substitution without writing anything.
func (t Target) RenderPlist(p Placeholders) (before, after string, err error) {
	data, err := os.ReadFile(t.ContainerPlist())
	if err != nil {
		return "", "", &FilesystemError{Op: "read", Path: t.ContainerPlist(), Err: err}
	}

	return string(data), p.Apply(string(data)), nil
}
