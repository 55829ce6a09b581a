package api

import (
	"os"
	"strings"

	"github.com/google/uuid"
)

func tempDir(configured string) string {
	if configured != "" {
		return configured
	}
	return os.TempDir()
}

// sanitizeName keeps uploads from escaping the spool directory and makes
// concurrent uploads of the same filename collide-free.
func sanitizeName(name string) string {
	name = strings.TrimSuffix(name, ".pdf")
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String() + "-" + uuid.NewString()
}

func removeFile(path string) {
	_ = os.Remove(path)
}
