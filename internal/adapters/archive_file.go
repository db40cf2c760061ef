package adapters

import (
	"archive/zip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"system-packages/internal/ports"
	"system-packages/internal/shared"
)

const manifestPath = "META-INF/MANIFEST.MF"

// ArchiveFileAdapter opens jar files and exploded class directories.
type ArchiveFileAdapter struct{}

func NewArchiveFileAdapter() ArchiveFileAdapter {
	return ArchiveFileAdapter{}
}

func (a ArchiveFileAdapter) Open(path string) (ports.Archive, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("archive path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, shared.FileError(err, "archive not found")
	}
	if info.IsDir() {
		return openDirectoryArchive(path)
	}
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open archive").
			WithCause(err)
	}
	return &zipArchive{reader: reader}, nil
}

type zipArchive struct {
	reader *zip.ReadCloser
}

func (z *zipArchive) Manifest() ([]byte, bool, error) {
	for _, file := range z.reader.File {
		if !strings.EqualFold(file.Name, manifestPath) {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, true, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to open manifest entry").
				WithCause(err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, true, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read manifest entry").
				WithCause(err)
		}
		return data, true, nil
	}
	return nil, false, nil
}

func (z *zipArchive) Files() []string {
	files := make([]string, 0, len(z.reader.File))
	for _, file := range z.reader.File {
		if file.FileInfo().IsDir() || strings.HasSuffix(file.Name, "/") {
			continue
		}
		files = append(files, file.Name)
	}
	return files
}

func (z *zipArchive) Close() error {
	return z.reader.Close()
}

// directoryArchive is a build output directory laid out like a jar.
type directoryArchive struct {
	root  string
	files []string
}

func openDirectoryArchive(root string) (*directoryArchive, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan archive directory").
			WithCause(err)
	}
	return &directoryArchive{root: root, files: files}, nil
}

func (d *directoryArchive) Manifest() ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(manifestPath)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read manifest").
			WithCause(err)
	}
	return data, true, nil
}

func (d *directoryArchive) Files() []string {
	return d.files
}

func (d *directoryArchive) Close() error {
	return nil
}

var _ ports.ArchivePort = ArchiveFileAdapter{}
