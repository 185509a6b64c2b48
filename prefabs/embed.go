package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml scripts/*.tengo
var PrefabsFS embed.FS

// diskDir is read before the embedded copy so watched edits take effect.
const diskDir = "prefabs"

// Load reads a character or replay spec by prefab-relative name.
func Load(name string) ([]byte, error) {
	return read(cleanPrefabPath(name))
}

// LoadScript reads an input script. "hop", "hop.tengo" and
// "prefabs/scripts/hop.tengo" all name the same file.
func LoadScript(name string) ([]byte, error) {
	return read(cleanScriptPath(name))
}

// ModTime reports when the on-disk copy of a prefab last changed.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPrefabPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func read(clean string) ([]byte, error) {
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return fs.ReadFile(PrefabsFS, clean)
}

func cleanPrefabPath(p string) string {
	return strings.TrimPrefix(filepath.ToSlash(p), diskDir+"/")
}

func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}
	s := cleanPrefabPath(p)
	s = strings.TrimPrefix(s, "scripts/")
	if path.Ext(s) == "" {
		s += ".tengo"
	}
	return path.Join("scripts", s)
}

func diskPrefabPath(clean string) string {
	return filepath.Join(diskDir, filepath.FromSlash(clean))
}
