package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// resolveFilename picks the file name for a slug within dir: the first
// unused of <slug>.md, <slug>-2.md, <slug>-3.md, and so on. With
// skipExisting set, an already-present <slug>.md is reused and reported
// as a skip instead of being suffixed, which lands a re-run on the
// files of the previous run rather than minting fresh -2 copies.
func resolveFilename(dir, slug string, skipExisting bool) (name string, skip bool) {
	name = slug + ".md"
	if !exists(filepath.Join(dir, name)) {
		return name, false
	}
	if skipExisting {
		return name, true
	}
	for counter := 2; ; counter++ {
		name = fmt.Sprintf("%s-%d.md", slug, counter)
		if !exists(filepath.Join(dir, name)) {
			return name, false
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
