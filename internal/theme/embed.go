package theme

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed themes/*.css
var bundled embed.FS

// DefaultThemeName is the theme used when none is configured or the
// configured one cannot be found.
const DefaultThemeName = "default"

func readBundled(file string) (string, bool) {
	data, err := bundled.ReadFile(path.Join("themes", file))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// bundledCSS returns the CSS of a bundled theme.
func bundledCSS(name string) (string, bool) {
	return readBundled(name + ".css")
}

// bundledPartial returns a bundled partial. Partials are the files whose name
// starts with an underscore; name may omit the underscore and extension.
func bundledPartial(name string) (string, bool) {
	name = strings.TrimSuffix(strings.TrimPrefix(name, "_"), ".css")
	return readBundled("_" + name + ".css")
}

// BundledNames returns the sorted names of the bundled themes.
func BundledNames() []string {
	matches, err := fs.Glob(bundled, "themes/*.css")
	if err != nil || len(matches) == 0 {
		return []string{DefaultThemeName}
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		base := path.Base(m)
		if strings.HasPrefix(base, "_") {
			continue
		}
		names = append(names, strings.TrimSuffix(base, ".css"))
	}
	slices.Sort(names)
	return names
}
