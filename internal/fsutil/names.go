package fsutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// maxNameLen bounds the length of a sanitized file name.
const maxNameLen = 128

// SanitizeFilename makes a file name component from a run name. Characters
// other than ASCII letters, digits, dot, underscore and dash become a single
// underscore; leading and trailing dots and underscores are trimmed.
func SanitizeFilename(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxNameLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
			lastUnderscore = r == '_'
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unnamed"
	}
	return out
}

// JoinWithin joins name onto dir and rejects results that escape dir.
// The check is lexical so that it works for any FileSystem.
func JoinWithin(dir, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("path traversal detected: %s is absolute", name)
	}
	joined := filepath.Join(dir, name)
	rel, err := filepath.Rel(filepath.Clean(dir), joined)
	if err != nil {
		return "", fmt.Errorf("path is outside %s: %w", dir, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal detected: %s attempts to escape %s", name, dir)
	}
	return joined, nil
}
