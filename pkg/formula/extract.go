package formula

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/formulasync/pkg/domain/model"
)

var sha256Pattern = regexp.MustCompile(`sha256\s+"([a-f0-9]{64})"`)

// scanner tracks which platform block the current line belongs to.
// A nil platform means no platform is selected.
type scanner struct {
	platforms []model.Platform
	selected  *model.Platform
	hashes    map[model.Platform]string
}

func (s *scanner) feed(line string) {
	for i := range s.platforms {
		if strings.Contains(line, string(s.platforms[i])) {
			s.selected = &s.platforms[i]
			break
		}
	}

	if s.selected == nil || !strings.Contains(line, "sha256") {
		return
	}

	if m := sha256Pattern.FindStringSubmatch(line); m != nil {
		s.hashes[*s.selected] = m[1]
		s.selected = nil
	}
}

// ExtractHashes returns the sha256 value currently associated with each
// platform. A hash belongs to the platform whose marker appeared most recently
// on or before its line. Platforms earlier in the list win when one line
// carries several markers.
func ExtractHashes(text string, platforms []model.Platform) map[model.Platform]string {
	s := &scanner{
		platforms: platforms,
		hashes:    make(map[model.Platform]string),
	}
	for _, line := range strings.Split(text, "\n") {
		s.feed(line)
	}
	return s.hashes
}

var currentVersionPattern = regexp.MustCompile(`version\s+"([^"]+)"`)

// CurrentVersion returns the value of the first version field, or "" if there is none
func CurrentVersion(text string) string {
	if m := currentVersionPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
