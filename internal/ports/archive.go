package ports

// Archive is an opened dependency archive: a jar file or an exploded
// class directory.
type Archive interface {
	// Manifest returns the raw META-INF/MANIFEST.MF bytes. The boolean is
	// false when the archive carries no manifest.
	Manifest() ([]byte, bool, error)

	// Files lists the slash-separated paths of every regular file entry.
	Files() []string

	Close() error
}

// ArchivePort opens archives by filesystem location.
type ArchivePort interface {
	Open(path string) (Archive, error)
}
