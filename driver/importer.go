package driver

import (
	"os"
	"path/filepath"
)

// FileImporter resolves import paths relative to the directory of the
// file that is being compiled, satisfying compiler.Importer.
type FileImporter struct {
	BaseDir string
}

func NewFileImporter(sourcePath string) FileImporter {
	return FileImporter{BaseDir: filepath.Dir(sourcePath)}
}

func (fi FileImporter) ReadSource(path string) (string, error) {
	resolved := path
	if !filepath.IsAbs(path) {
		resolved = filepath.Join(fi.BaseDir, path)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
