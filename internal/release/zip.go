// Package release builds a clean, deterministic source zip of a content
// tree. It exists because the zip CLI is not always available on Windows
// runners; exclusion defaults target build artifacts and editor/OS junk.
package release

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExcludeSpec is the configurable filter applied while walking the tree.
type ExcludeSpec struct {
	TopDirs   []string // excluded only at the tree root
	AnyDirs   []string // excluded at any depth
	Filenames []string
	Suffixes  []string
}

// DefaultExcludes matches the .gitignore expectations of a source tree.
func DefaultExcludes() ExcludeSpec {
	return ExcludeSpec{
		TopDirs:   []string{"out", "build", ".git"},
		AnyDirs:   []string{".idea", ".vscode", "__pycache__"},
		Filenames: []string{".DS_Store", "Thumbs.db"},
		Suffixes:  []string{".zip", ".log", ".pyc"},
	}
}

// shouldExclude decides on a slash-separated path relative to the root.
func (e ExcludeSpec) shouldExclude(rel string) bool {
	parts := strings.Split(rel, "/")
	if len(parts) == 0 {
		return false
	}
	for _, d := range e.TopDirs {
		if parts[0] == d {
			return true
		}
	}
	for _, p := range parts {
		for _, d := range e.AnyDirs {
			if p == d {
				return true
			}
		}
	}
	name := parts[len(parts)-1]
	for _, f := range e.Filenames {
		if name == f {
			return true
		}
	}
	for _, suf := range e.Suffixes {
		if strings.HasSuffix(name, suf) {
			return true
		}
	}
	return false
}

// ListFiles walks root and returns the included regular files as sorted
// slash-separated paths relative to root. The output zip itself is never
// included, even when it already exists from a previous run.
func ListFiles(root, output string, excludes ExcludeSpec) ([]string, error) {
	absOut, err := filepath.Abs(output)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			// Skip entries that escape the root instead of failing the walk.
			return nil
		}
		rel = filepath.ToSlash(rel)

		if abs, err := filepath.Abs(path); err == nil && abs == absOut {
			return nil
		}
		if excludes.shouldExclude(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// CreateSourceZip writes the filtered tree under root into a deflate
// compressed zip at output and returns the number of files written. Entry
// order is deterministic; filesystem mtimes and permission bits are kept.
func CreateSourceZip(root, output string, excludes ExcludeSpec) (int, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return 0, fmt.Errorf("root directory not found: %s", root)
	}

	// Build the file list before creating the output, so the fresh zip is
	// never discovered mid-walk.
	files, err := ListFiles(root, output, excludes)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return 0, err
	}
	out, err := os.Create(output)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, rel := range files {
		if err := addFile(zw, root, rel); err != nil {
			zw.Close()
			return 0, err
		}
	}
	if err := zw.Close(); err != nil {
		return 0, err
	}
	return len(files), nil
}

func addFile(zw *zip.Writer, root, rel string) error {
	src := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = rel
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
