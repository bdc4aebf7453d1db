package scenario

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.yaml
var FS embed.FS

// Load reads a scenario from disk, falling back to the embedded set by base
// name. A missing .yaml extension is added.
func Load(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return FS.ReadFile(cleanScenarioPath(name))
}

// Names lists the embedded scenarios.
func Names() []string {
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && isSpecFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func cleanScenarioPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.Base(filepath.ToSlash(path))
	if !isSpecFile(s) {
		s += ".yaml"
	}
	return s
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
