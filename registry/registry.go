/*
File    : kube-interpreter/registry/registry.go
*/

// Package registry implements the deduplicating directory/file index
// described in spec section 4.3: discovery by absolute path, and
// per-file slots holding the lexed TokenStack and parsed AST once they
// become available. The registry is mutated only on the orchestrator's
// goroutine (spec section 5); it carries no internal locking.
package registry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/akashmaji946/kube-interpreter/ast"
	"github.com/akashmaji946/kube-interpreter/diagnostic"
	"github.com/akashmaji946/kube-interpreter/token"
)

// extension is the two significant characters of the recognized file
// extension, compared case-insensitively against a 3-character suffix
// beginning with '.' (spec section 3: "a 3-char extension beginning
// with '.'").
const extension = "kl"

// DirEntry is a registered directory and the files discovered within
// it that carry the recognized extension.
type DirEntry struct {
	AbsPath string
	Files   []token.FileIndex
}

// FileEntry is a single file's registry slot. TokenStack being non-nil
// implies lexing has completed; AST being non-nil implies parsing has
// completed (spec section 3).
type FileEntry struct {
	Name      string // file name without its extension
	Path      string // absolute path including extension
	Directory token.DirectoryIndex
	Stack     *token.TokenStack
	AST       *ast.Node
	Imports   []token.DirectoryIndex
}

// Registry is the directory/file index. Indices are stable,
// monotonically increasing handles; entries are never relocated or
// reordered.
type Registry struct {
	dirs    []DirEntry
	dirByPath map[string]token.DirectoryIndex
	files   []FileEntry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{dirByPath: make(map[string]token.DirectoryIndex)}
}

// Dir returns the directory entry at idx.
func (r *Registry) Dir(idx token.DirectoryIndex) *DirEntry {
	return &r.dirs[idx]
}

// File returns the file entry at idx.
func (r *Registry) File(idx token.FileIndex) *FileEntry {
	return &r.files[idx]
}

// FileCount reports how many files are registered.
func (r *Registry) FileCount() int {
	return len(r.files)
}

// hasExtension reports whether name ends in a 3-character extension
// whose last two characters are, case-insensitively, 'k' and 'l'.
func hasExtension(name string) bool {
	if len(name) < 4 {
		return false
	}
	ext := name[len(name)-3:]
	if ext[0] != '.' {
		return false
	}
	return strings.EqualFold(ext[1:], extension)
}

// stripExtension removes a recognized 3-character extension from name.
func stripExtension(name string) string {
	return name[:len(name)-3]
}

// DiscoverDirectory registers path's directory (or, if acceptFilePath
// is true and path names a regular file, the file's parent directory),
// enumerating its `.kl` entries. If the absolute path is already
// registered, the existing index is returned unchanged.
func (r *Registry) DiscoverDirectory(path string, acceptFilePath bool) (token.DirectoryIndex, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, &diagnostic.NotFound{Path: path}
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return 0, &diagnostic.NotFound{Path: path}
	}
	dirPath := abs
	if !info.IsDir() {
		if !acceptFilePath {
			return 0, &diagnostic.NotFound{Path: path}
		}
		dirPath = filepath.Dir(abs)
	}

	if idx, ok := r.dirByPath[dirPath]; ok {
		return idx, nil
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return 0, &diagnostic.CannotOpen{Path: dirPath, Err: err}
	}

	idx := token.DirectoryIndex(len(r.dirs))
	r.dirs = append(r.dirs, DirEntry{AbsPath: dirPath})
	r.dirByPath[dirPath] = idx

	for _, entry := range entries {
		if entry.IsDir() || !hasExtension(entry.Name()) {
			continue
		}
		fileIdx := token.FileIndex(len(r.files))
		r.files = append(r.files, FileEntry{
			Name:      stripExtension(entry.Name()),
			Path:      filepath.Join(dirPath, entry.Name()),
			Directory: idx,
		})
		r.dirs[idx].Files = append(r.dirs[idx].Files, fileIdx)
	}

	return idx, nil
}

// DiscoverFile registers path's parent directory and returns the index
// of the file named by path within it.
func (r *Registry) DiscoverFile(path string) (token.FileIndex, error) {
	dirIdx, err := r.DiscoverDirectory(path, true)
	if err != nil {
		return 0, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, &diagnostic.NotFound{Path: path}
	}
	base := filepath.Base(abs)
	name := base
	if hasExtension(base) {
		name = stripExtension(base)
	}
	idx, ok := r.FindInDirectory(dirIdx, name)
	if !ok {
		return 0, &diagnostic.NotFound{Path: path}
	}
	return idx, nil
}

// FindInDirectory performs a linear, name-without-extension lookup
// within a single directory.
func (r *Registry) FindInDirectory(dir token.DirectoryIndex, name string) (token.FileIndex, bool) {
	for _, idx := range r.dirs[dir].Files {
		if r.files[idx].Name == name {
			return idx, true
		}
	}
	return 0, false
}
