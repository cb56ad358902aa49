// Package workspace is the filesystem seam directives mutate the target
// tree through. Names are slash-separated and relative to the target root.
package workspace

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Workspace is the set of operations directives need.
type Workspace interface {
	ReadFile(name string) ([]byte, error)
	// WriteFile replaces name atomically. Parent directories must exist.
	WriteFile(name string, data []byte) error
	MkdirAll(name string) error
	// Remove deletes a file or an empty directory.
	Remove(name string) error
	RemoveAll(name string) error
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
}

// ErrUnsafePath indicates a name that is absolute or escapes the root.
var ErrUnsafePath = errors.New("path must be relative to the target and stay inside it")

// Clean validates name and returns its canonical slash form.
func Clean(name string) (string, error) {
	if name == "" || path.IsAbs(name) || filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	clean := path.Clean(strings.TrimSuffix(name, "/"))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return clean, nil
}

// Disk operates on the real filesystem under Root.
type Disk struct {
	Root string
}

// NewDisk returns a Disk rooted at root.
func NewDisk(root string) *Disk {
	return &Disk{Root: root}
}

func (d *Disk) resolve(name string) (string, error) {
	clean, err := Clean(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.Root, filepath.FromSlash(clean)), nil
}

func (d *Disk) ReadFile(name string) ([]byte, error) {
	p, err := d.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}

// WriteFile keeps the mode of an existing file; new files get 0644.
func (d *Disk) WriteFile(name string, data []byte) error {
	p, err := d.resolve(name)
	if err != nil {
		return err
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(p); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := atomic.WriteFile(p, bytes.NewReader(data)); err != nil {
		return err
	}
	return os.Chmod(p, mode)
}

func (d *Disk) MkdirAll(name string) error {
	p, err := d.resolve(name)
	if err != nil {
		return err
	}
	return os.MkdirAll(p, 0o755)
}

func (d *Disk) Remove(name string) error {
	p, err := d.resolve(name)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

func (d *Disk) RemoveAll(name string) error {
	p, err := d.resolve(name)
	if err != nil {
		return err
	}
	return os.RemoveAll(p)
}

func (d *Disk) Lstat(name string) (fs.FileInfo, error) {
	p, err := d.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.Lstat(p)
}

func (d *Disk) ReadDir(name string) ([]fs.DirEntry, error) {
	p, err := d.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.ReadDir(p)
}

// EnsureParent creates the parent directory of name.
func EnsureParent(ws Workspace, name string) error {
	dir := path.Dir(name)
	if dir == "." {
		return nil
	}
	return ws.MkdirAll(dir)
}
