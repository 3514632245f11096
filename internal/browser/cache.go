package browser

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"
)

// SnapshotCache stores one serialized HTML file per URL, keyed by the md5
// of the URL. File mtime is the freshness clock; entries older than the
// TTL are treated as absent and overwritten on the next write.
type SnapshotCache struct {
	dir string
	ttl time.Duration
}

func NewSnapshotCache(dir string, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		dir: dir,
		ttl: ttl,
	}
}

func (c *SnapshotCache) Path(url string) string {
	sum := md5.Sum([]byte(url))

	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".html")
}

// Read returns the cached HTML for url, or ok=false when the entry is
// missing, expired or unreadable. Stale entries are not deleted.
func (c *SnapshotCache) Read(url string) (string, bool) {
	path := c.Path(url)

	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}

	if time.Since(info.ModTime()) >= c.ttl {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	return string(data), true
}

func (c *SnapshotCache) Write(url, html string) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(c.Path(url), []byte(html), 0644)
}
