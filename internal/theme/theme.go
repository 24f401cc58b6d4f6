package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Color names read from themes.
const (
	FillColorName = "bezel_fill"
	TextColorName = "bezel_text"
)

// Theme is a resolved CSS theme.
type Theme struct {
	Name      string    // Theme name (without .css extension)
	Path      string    // Full path to the CSS file (empty for bundled themes)
	CSS       string    // The CSS content with imports inlined
	ModTime   time.Time // Last modification time
	IsBundled bool

	Fill Color // Bezel silhouette colour
	Text Color // Timer and button colour
}

// NewTheme loads a theme from a CSS file. @import statements are resolved
// and inlined.
func NewTheme(name, path string) (*Theme, error) {
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	t := newTheme(name, ProcessImports(string(css), filepath.Dir(path), nil))
	t.Path = path
	t.ModTime = info.ModTime()
	return t, nil
}

func newTheme(name, css string) *Theme {
	t := &Theme{
		Name: name,
		CSS:  css,
		Fill: Black,
		Text: White,
	}
	if c, ok := DefinedColor(css, FillColorName); ok {
		t.Fill = c
	}
	if c, ok := DefinedColor(css, TextColorName); ok {
		t.Text = c
	}
	return t
}

// Bundled returns a bundled theme by name.
func Bundled(name string) (*Theme, bool) {
	css, ok := bundledCSS(name)
	if !ok {
		return nil, false
	}
	t := newTheme(name, ProcessImports(css, "", nil))
	t.IsBundled = true
	return t, true
}

// Resolve finds a theme by name.
// Theme resolution order:
//  1. dir (the user themes directory), if not empty
//  2. Bundled themes
//  3. The default theme, with an error describing the miss
func Resolve(name, dir string) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}

	var userErr error
	if dir != "" {
		path := filepath.Join(dir, name+".css")
		if _, err := os.Stat(path); err == nil {
			t, err := NewTheme(name, path)
			if err == nil {
				return t, nil
			}
			userErr = err
		}
	}

	if t, ok := Bundled(name); ok {
		if userErr != nil {
			return t, fmt.Errorf("failed to load user theme %q, using bundled: %w", name, userErr)
		}
		return t, nil
	}

	t, _ := Bundled(DefaultThemeName)
	return t, fmt.Errorf("theme %q not found, using %s", name, DefaultThemeName)
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		configHome = dir
	}
	return filepath.Join(configHome, "bezel", "themes"), nil
}

// ProcessImports resolves and inlines @import statements in CSS.
// Imports are resolved relative to baseDir, then against bundled partials
// and themes. The seen map prevents circular imports.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		importPath := submatch[1]

		fullPath := importPath
		if !filepath.IsAbs(importPath) {
			fullPath = filepath.Join(baseDir, importPath)
		}

		if seen[fullPath] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[fullPath] = true

		var imported string
		if baseDir != "" || filepath.IsAbs(importPath) {
			if data, err := os.ReadFile(fullPath); err == nil {
				imported = ProcessImports(string(data), filepath.Dir(fullPath), seen)
				return "/* imported: " + importPath + " */\n" + imported
			}
		}

		baseName := filepath.Base(importPath)
		if strings.HasPrefix(baseName, "_") {
			if css, ok := bundledPartial(baseName); ok {
				return "/* imported (embedded): " + importPath + " */\n" + ProcessImports(css, "", seen)
			}
		}
		if css, ok := bundledCSS(strings.TrimSuffix(baseName, ".css")); ok {
			return "/* imported (embedded): " + importPath + " */\n" + ProcessImports(css, "", seen)
		}
		return "/* import failed: " + importPath + " */"
	})
}

// Info describes an available theme for listing.
type Info struct {
	Name      string `json:"name" yaml:"name"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	IsBundled bool   `json:"bundled" yaml:"bundled"`
}

// List returns bundled themes followed by user themes in dir. A user theme
// that shadows a bundled one is reported once, with its path.
func List(dir string) ([]Info, error) {
	index := make(map[string]int)
	var themes []Info
	for _, name := range BundledNames() {
		index[name] = len(themes)
		themes = append(themes, Info{Name: name, IsBundled: true})
	}
	if dir == "" {
		return themes, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".css" || strings.HasPrefix(name, "_") {
			continue
		}
		themeName := strings.TrimSuffix(name, ".css")
		info := Info{Name: themeName, Path: filepath.Join(dir, name)}
		if i, ok := index[themeName]; ok {
			themes[i] = info
			continue
		}
		index[themeName] = len(themes)
		themes = append(themes, info)
	}
	return themes, nil
}
