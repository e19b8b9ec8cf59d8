package domain

// SyncKind distinguishes the deletions mirrored into the output tree.
type SyncKind uint8

const (
	// FileDeleted indicates a file was removed from the source tree.
	FileDeleted SyncKind = iota
	// DirectoryDeleted indicates a directory was removed from the source tree.
	DirectoryDeleted
)

func (k SyncKind) String() string {
	switch k {
	case FileDeleted:
		return "file"
	case DirectoryDeleted:
		return "directory"
	default:
		return "unknown"
	}
}

// SyncEvent is a source deletion produced by the watcher.
type SyncEvent struct {
	Kind SyncKind
	Path string
}
