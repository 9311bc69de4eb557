package bundle

import "fmt"

// Artifact kinds reported by MissingArtifactError.
const (
	KindContainer = "app container"
	KindBinary    = "binary"
	KindResources = "resource file"
)

// MissingArtifactError reports a required input that does not exist.
type MissingArtifactError struct {
	Kind string
	Path string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Path)
}

// FilesystemError reports a failed copy, permission change or write.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
