package workspace

import (
	"bytes"
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// Overlay buffers every mutation in memory on top of a read-only base, so a
// dry run can compute diffs without touching the target.
type Overlay struct {
	base     Workspace
	files    map[string][]byte
	dirs     map[string]bool
	removed  map[string]bool
	original map[string][]byte
	existed  map[string]bool
	order    []string
}

// NewOverlay layers an in-memory workspace over base.
func NewOverlay(base Workspace) *Overlay {
	return &Overlay{
		base:     base,
		files:    map[string][]byte{},
		dirs:     map[string]bool{},
		removed:  map[string]bool{},
		original: map[string][]byte{},
		existed:  map[string]bool{},
	}
}

// Change is the net effect on one file.
type Change struct {
	Path    string
	Before  []byte
	After   []byte
	Created bool
	Removed bool
}

// Changes lists the files whose content differs from the base, in the
// order they were first touched.
func (o *Overlay) Changes() []Change {
	var out []Change
	for _, name := range o.order {
		after, written := o.files[name]
		before := o.original[name]
		existed := o.existed[name]
		gone := !written && o.isRemoved(name)
		switch {
		case written && existed && bytes.Equal(before, after):
			continue
		case !written && !gone:
			continue
		case gone && !existed:
			continue
		}
		out = append(out, Change{
			Path:    name,
			Before:  before,
			After:   after,
			Created: written && !existed,
			Removed: gone,
		})
	}
	return out
}

func (o *Overlay) touch(name string) {
	if _, seen := o.existed[name]; seen {
		return
	}
	o.order = append(o.order, name)
	if o.isRemoved(name) {
		o.existed[name] = false
		return
	}
	if data, ok := o.files[name]; ok {
		o.existed[name] = true
		o.original[name] = data
		return
	}
	if data, err := o.base.ReadFile(name); err == nil {
		o.existed[name] = true
		o.original[name] = data
		return
	}
	o.existed[name] = false
}

func (o *Overlay) isRemoved(name string) bool {
	for p := name; p != "."; p = path.Dir(p) {
		if o.removed[p] {
			return true
		}
	}
	return false
}

func (o *Overlay) ReadFile(name string) ([]byte, error) {
	clean, err := Clean(name)
	if err != nil {
		return nil, err
	}
	if data, ok := o.files[clean]; ok {
		return append([]byte(nil), data...), nil
	}
	if o.dirs[clean] || o.isRemoved(clean) {
		return nil, &fs.PathError{Op: "open", Path: clean, Err: fs.ErrNotExist}
	}
	return o.base.ReadFile(clean)
}

func (o *Overlay) WriteFile(name string, data []byte) error {
	clean, err := Clean(name)
	if err != nil {
		return err
	}
	o.touch(clean)
	o.files[clean] = append([]byte(nil), data...)
	delete(o.removed, clean)
	return nil
}

func (o *Overlay) MkdirAll(name string) error {
	clean, err := Clean(name)
	if err != nil {
		return err
	}
	for p := clean; p != "."; p = path.Dir(p) {
		o.dirs[p] = true
		delete(o.removed, p)
	}
	return nil
}

func (o *Overlay) Remove(name string) error {
	clean, err := Clean(name)
	if err != nil {
		return err
	}
	if _, err := o.Lstat(clean); err != nil {
		return err
	}
	o.drop(clean)
	return nil
}

func (o *Overlay) RemoveAll(name string) error {
	clean, err := Clean(name)
	if err != nil {
		return err
	}
	if err := o.touchBase(clean); err != nil && !IsNotExist(err) {
		return err
	}
	o.drop(clean)
	for p := range o.files {
		if strings.HasPrefix(p, clean+"/") {
			o.touch(p)
			delete(o.files, p)
		}
	}
	for p := range o.dirs {
		if strings.HasPrefix(p, clean+"/") {
			delete(o.dirs, p)
		}
	}
	return nil
}

// touchBase records every base file under dir so its removal shows up in
// Changes.
func (o *Overlay) touchBase(dir string) error {
	if o.isRemoved(dir) {
		return nil
	}
	info, err := o.base.Lstat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}
	entries, err := o.base.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		child := dir + "/" + entry.Name()
		if o.isRemoved(child) {
			continue
		}
		if entry.IsDir() {
			if err := o.touchBase(child); err != nil {
				return err
			}
			continue
		}
		if _, ok := o.files[child]; !ok {
			o.touch(child)
		}
	}
	return nil
}

func (o *Overlay) drop(clean string) {
	if _, err := o.ReadFile(clean); err == nil {
		o.touch(clean)
	}
	delete(o.files, clean)
	delete(o.dirs, clean)
	o.removed[clean] = true
}

func (o *Overlay) Lstat(name string) (fs.FileInfo, error) {
	clean, err := Clean(name)
	if err != nil {
		return nil, err
	}
	if data, ok := o.files[clean]; ok {
		return memInfo{name: path.Base(clean), size: int64(len(data))}, nil
	}
	if o.dirs[clean] {
		return memInfo{name: path.Base(clean), dir: true}, nil
	}
	if o.isRemoved(clean) {
		return nil, &fs.PathError{Op: "lstat", Path: clean, Err: fs.ErrNotExist}
	}
	return o.base.Lstat(clean)
}

// ReadDir merges the base listing with overlay writes, hiding removals.
func (o *Overlay) ReadDir(name string) ([]fs.DirEntry, error) {
	clean, err := Clean(name)
	if err != nil {
		return nil, err
	}
	if o.isRemoved(clean) && !o.dirs[clean] {
		return nil, &fs.PathError{Op: "readdir", Path: clean, Err: fs.ErrNotExist}
	}
	seen := map[string]fs.DirEntry{}
	if !o.isRemoved(clean) {
		entries, err := o.base.ReadDir(clean)
		if err != nil && !(IsNotExist(err) && o.dirs[clean]) {
			return nil, err
		}
		for _, entry := range entries {
			if !o.isRemoved(clean + "/" + entry.Name()) {
				seen[entry.Name()] = entry
			}
		}
	}
	for p, data := range o.files {
		if path.Dir(p) == clean {
			seen[path.Base(p)] = fs.FileInfoToDirEntry(memInfo{name: path.Base(p), size: int64(len(data))})
		}
	}
	for p := range o.dirs {
		if path.Dir(p) == clean {
			seen[path.Base(p)] = fs.FileInfoToDirEntry(memInfo{name: path.Base(p), dir: true})
		}
	}
	out := make([]fs.DirEntry, 0, len(seen))
	for _, entry := range seen {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// Paths lists every file the overlay wrote, sorted.
func (o *Overlay) Paths() []string {
	paths := make([]string, 0, len(o.files))
	for p := range o.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

type memInfo struct {
	name string
	size int64
	dir  bool
}

func (m memInfo) Name() string { return m.name }
func (m memInfo) Size() int64  { return m.size }
func (m memInfo) Mode() fs.FileMode {
	if m.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
func (m memInfo) ModTime() time.Time { return time.Time{} }
func (m memInfo) IsDir() bool        { return m.dir }
func (m memInfo) Sys() any           { return nil }

// IsNotExist reports whether err means the file is absent.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
