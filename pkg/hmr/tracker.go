package hmr

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sync"
)

// ChangeTracker remembers the content hash of every file it has seen so
// that rewrites with identical bytes do not trigger a reload.
type ChangeTracker struct {
	cache map[string]string
	mu    sync.RWMutex
}

func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{
		cache: make(map[string]string),
	}
}

// DetectChange hashes filePath and reports whether it differs from the last
// hash recorded for it. A file seen for the first time counts as changed.
func (t *ChangeTracker) DetectChange(filePath string) (bool, string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return false, "", err
	}

	hash := hashBytes(content)

	t.mu.Lock()
	defer t.mu.Unlock()

	old, exists := t.cache[filePath]
	t.cache[filePath] = hash
	return !exists || old != hash, hash, nil
}

func (t *ChangeTracker) Forget(filePath string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.cache, filePath)
}

func (t *ChangeTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cache = make(map[string]string)
}

func hashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return fmt.Sprintf("%x", sum[:8])
}
