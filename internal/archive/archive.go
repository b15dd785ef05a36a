package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"voxport/internal/history"
)

const (
	// FileName is the suggested name of the produced archive
	FileName = "audios_descargados.zip"

	// ContentType is the MIME type of the produced archive
	ContentType = "application/zip"

	// DefaultDirPermissions is used when DirWriter creates its target
	DefaultDirPermissions = 0755
)

var (
	// ErrDuplicateEntry is returned when a name was already added
	ErrDuplicateEntry = errors.New("duplicate archive entry")

	// ErrInvalidName is returned for names that would leave the flat namespace
	ErrInvalidName = errors.New("invalid archive entry name")

	// ErrFinished is returned when adding to a finished writer
	ErrFinished = errors.New("archive already finished")
)

// Sink receives archive entries one at a time
type Sink interface {
	Add(name string, data []byte) error
	Len() int
}

// ZipWriter accumulates entries into an in-memory zip
type ZipWriter struct {
	buf      *bytes.Buffer
	zw       *zip.Writer
	names    map[string]struct{}
	finished bool
}

// NewZipWriter creates a ZipWriter backed by an in-memory buffer
func NewZipWriter() *ZipWriter {
	buf := new(bytes.Buffer)
	return &ZipWriter{
		buf:   buf,
		zw:    zip.NewWriter(buf),
		names: make(map[string]struct{}),
	}
}

// Add writes the full payload under name at the archive root
func (w *ZipWriter) Add(name string, data []byte) error {
	if w.finished {
		return ErrFinished
	}
	if err := checkName(name, w.names); err != nil {
		return err
	}

	f, err := w.zw.Create(name)
	if err != nil {
		return fmt.Errorf("error creating entry %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("error writing entry %s: %w", name, err)
	}

	w.names[name] = struct{}{}
	return nil
}

// Len returns the number of entries written so far
func (w *ZipWriter) Len() int {
	return len(w.names)
}

// Finish finalizes the zip and returns it rewound to the start.
// When no entry was added nothing is offered and ok is false.
func (w *ZipWriter) Finish() (*bytes.Reader, bool, error) {
	if w.finished {
		return nil, false, ErrFinished
	}
	w.finished = true

	if err := w.zw.Close(); err != nil {
		return nil, false, fmt.Errorf("error finalizing archive: %w", err)
	}
	if len(w.names) == 0 {
		return nil, false, nil
	}
	return bytes.NewReader(w.buf.Bytes()), true, nil
}

// Build writes every entry into a new zip. An empty entry list yields no archive.
func Build(entries []history.Entry) (*bytes.Reader, bool, error) {
	if len(entries) == 0 {
		return nil, false, nil
	}

	w := NewZipWriter()
	for _, entry := range entries {
		if err := w.Add(entry.Name, entry.Data); err != nil {
			return nil, false, err
		}
	}
	return w.Finish()
}

// DirWriter writes entries as individual files into a directory
type DirWriter struct {
	dir   string
	names map[string]struct{}
}

// NewDirWriter creates the target directory if needed
func NewDirWriter(dir string) (*DirWriter, error) {
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("error creating directory %s: %w", dir, err)
	}
	return &DirWriter{dir: dir, names: make(map[string]struct{})}, nil
}

// Add writes data to dir/name
func (w *DirWriter) Add(name string, data []byte) error {
	if err := checkName(name, w.names); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(w.dir, name), data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", name, err)
	}
	w.names[name] = struct{}{}
	return nil
}

// Len returns the number of files written
func (w *DirWriter) Len() int {
	return len(w.names)
}

// Dir returns the target directory
func (w *DirWriter) Dir() string {
	return w.dir
}

func checkName(name string, seen map[string]struct{}) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, ok := seen[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, name)
	}
	return nil
}
