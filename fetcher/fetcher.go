package fetcher

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// ErrPathIsDirectory is returned when ReadFile is given a directory.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// ErrPathIsNotDirectory is returned when ReadDir is given a file.
var ErrPathIsNotDirectory = errors.New("path is not a directory")

// Kind classifies a filesystem path.
type Kind int

// Path kinds.
const (
	KindMissing Kind = iota
	KindFile
	KindDir
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	default:
		return "missing"
	}
}

// Fetcher reads configuration nodes from a billy filesystem.
type Fetcher struct {
	fs billy.Filesystem
}

// New returns a Fetcher over filesystem.
func New(filesystem billy.Filesystem) *Fetcher {
	return &Fetcher{fs: filesystem}
}

// OS returns a Fetcher over the host filesystem.
func OS() *Fetcher {
	return New(osfs.New(string(filepath.Separator)))
}

// Filesystem returns the underlying filesystem.
func (f *Fetcher) Filesystem() billy.Filesystem {
	return f.fs
}

// Kind reports whether path is a file, a directory or missing. A path that
// runs through a regular file counts as missing.
func (f *Fetcher) Kind(path string) (Kind, error) {
	stat, err := f.fs.Stat(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return KindMissing, nil
		}

		return KindMissing, fmt.Errorf("stat %q: %w", path, err)
	}

	if stat.IsDir() {
		return KindDir, nil
	}

	return KindFile, nil
}

// ReadFile returns the content of the file at path.
func (f *Fetcher) ReadFile(path string) ([]byte, error) {
	cleanPath := filepath.Clean(path)

	stat, err := f.fs.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	data, err := util.ReadFile(f.fs, cleanPath)
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	return data, nil
}

// ReadDir returns the sorted names of the entries of the directory at path.
func (f *Fetcher) ReadDir(path string) ([]string, error) {
	cleanPath := filepath.Clean(path)

	stat, err := f.fs.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat directory %q: %w", cleanPath, err)
	}

	if !stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsNotDirectory)
	}

	entries, err := f.fs.ReadDir(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", cleanPath, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	sort.Strings(names)

	return names, nil
}
