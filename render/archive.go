package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/rahilshah3105/code-line-formatter/code"
)

// ArchiveVersion is the current archive format.
const ArchiveVersion = 1

// ErrArchiveVersion is returned when an archive has an unsupported format.
var ErrArchiveVersion = errors.New("unsupported archive version")

// Archive is a stored run: the script and the report it produced.
type Archive struct {
	Version int         `msgpack:"version"`
	Source  string      `msgpack:"source"`
	Script  string      `msgpack:"script"`
	Report  code.Report `msgpack:"report"`
}

// EncodeMsgpack writes a to w.
func EncodeMsgpack(w io.Writer, a Archive) error {
	if a.Version == 0 {
		a.Version = ArchiveVersion
	}
	return msgpack.NewEncoder(w).Encode(&a)
}

// DecodeMsgpack reads an archive from r.
func DecodeMsgpack(r io.Reader) (Archive, error) {
	var a Archive
	if err := msgpack.NewDecoder(r).Decode(&a); err != nil {
		return Archive{}, fmt.Errorf("decode archive: %w", err)
	}
	if a.Version != ArchiveVersion {
		return Archive{}, fmt.Errorf("%w: %d", ErrArchiveVersion, a.Version)
	}
	return a, nil
}

// WriteArchive stores a at path, replacing any existing file atomically.
func WriteArchive(path string, a Archive) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := EncodeMsgpack(f, a); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadArchive loads the archive stored at path.
func ReadArchive(path string) (Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return Archive{}, err
	}
	defer func() { _ = f.Close() }()
	return DecodeMsgpack(f)
}
