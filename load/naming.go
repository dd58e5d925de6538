package load

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"
)

const nameSuffixRange = 1_000_000_000

// storedName builds "<unix-millis>-<random><ext>" from the client's
// original filename. Collisions are unlikely, not impossible.
func storedName(originalName string) string {
	ext := filepath.Ext(filepath.Base(originalName))
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Intn(nameSuffixRange), ext)
}
