// Package archive reads export archives (zip files or already extracted
// directories) and hands back their JSON entries.
package archive

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	apperrors "ghostcheck/backend/pkg/errors"
)

// Entry is one file inside an archive
type Entry struct {
	Name string // Slash separated path inside the archive
	Size uint64 // Uncompressed size as declared by the archive
	open func() (io.ReadCloser, error)
}

// IsJSON reports whether the entry carries a .json extension
func (e Entry) IsJSON() bool {
	return strings.EqualFold(path.Ext(e.Name), ".json")
}

// ReadAll reads the entry fully. limit <= 0 disables the size check.
func (e Entry) ReadAll(limit int64) ([]byte, error) {
	if limit > 0 && e.Size > uint64(limit) {
		return nil, apperrors.NewEntryTooLarge(e.Name, e.Size, limit)
	}

	rc, err := e.open()
	if err != nil {
		return nil, apperrors.NewEntryReadFailed(e.Name, err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if limit > 0 {
		// Declared sizes can lie; never read past the ceiling
		r = io.LimitReader(rc, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewEntryReadFailed(e.Name, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, apperrors.NewEntryTooLarge(e.Name, uint64(len(data)), limit)
	}
	return data, nil
}

// Archive is an opened export
type Archive struct {
	Source  string
	entries []Entry
	hidden  int
	closer  io.Closer
}

// Entries returns every visible regular file
func (a *Archive) Entries() []Entry {
	return a.entries
}

// JSONEntries returns the visible .json files in archive order
func (a *Archive) JSONEntries() []Entry {
	var out []Entry
	for _, e := range a.entries {
		if e.IsJSON() {
			out = append(out, e)
		}
	}
	return out
}

// HiddenCount is the number of system artifacts that were filtered out
func (a *Archive) HiddenCount() int {
	return a.hidden
}

// Close releases the underlying file, if any
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Open opens a zip file or an extracted export directory
func Open(p string) (*Archive, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, apperrors.NewArchiveOpenFailed(p, err)
	}
	if info.IsDir() {
		return openDir(p)
	}

	rc, err := zip.OpenReader(p)
	if err != nil {
		return nil, apperrors.NewArchiveOpenFailed(p, err)
	}
	a := fromZip(p, &rc.Reader)
	a.closer = rc
	return a, nil
}

// NewReader reads a zip archive held by r, such as an uploaded file
func NewReader(source string, r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, apperrors.NewArchiveOpenFailed(source, err)
	}
	return fromZip(source, zr), nil
}

// FromBytes is NewReader over an in-memory archive
func FromBytes(source string, data []byte) (*Archive, error) {
	return NewReader(source, bytes.NewReader(data), int64(len(data)))
}

func fromZip(source string, zr *zip.Reader) *Archive {
	a := &Archive{Source: source}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if IsHidden(f.Name) {
			a.hidden++
			continue
		}
		a.entries = append(a.entries, Entry{
			Name: f.Name,
			Size: f.UncompressedSize64,
			open: f.Open,
		})
	}
	return a
}

func openDir(root string) (*Archive, error) {
	a := &Archive{Source: root}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && IsHidden(d.Name()) {
				a.hidden++
				return fs.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if IsHidden(name) {
			a.hidden++
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		a.entries = append(a.entries, Entry{
			Name: name,
			Size: uint64(info.Size()),
			open: func() (io.ReadCloser, error) { return os.Open(p) },
		})
		return nil
	})
	if err != nil {
		return nil, apperrors.NewArchiveOpenFailed(root, err)
	}
	return a, nil
}

// IsHidden reports macOS resource forks and dot-files anywhere in the path
func IsHidden(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if seg == "__MACOSX" || (strings.HasPrefix(seg, ".") && seg != "." && seg != "..") {
			return true
		}
	}
	return false
}
