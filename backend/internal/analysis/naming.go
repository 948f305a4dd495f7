package analysis

import (
	"fmt"
	"path"
	"strings"
)

// CollectionNames derives a display name per entry path: the base name
// without its .json extension. Repeated base names get a " (n)" suffix in
// archive order, so a directory name never leaks into role detection.
func CollectionNames(paths []string) []string {
	names := make([]string, len(paths))
	taken := make(map[string]bool, len(paths))

	for i, p := range paths {
		base := trimJSON(path.Base(p))
		name := base
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s (%d)", base, n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func trimJSON(name string) string {
	if ext := path.Ext(name); strings.EqualFold(ext, ".json") {
		return strings.TrimSuffix(name, ext)
	}
	return name
}
