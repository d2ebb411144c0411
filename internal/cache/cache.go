package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Cache defines the interface for caching generation responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// RunKey generates a cache key for one generation attempt. The key covers
// everything that determines the request: prompt id, run index, model, and
// the fact list fed to generation (which changes under enforcement).
func RunKey(promptID string, runIndex int, model string, facts []string) string {
	var b strings.Builder
	b.WriteString(promptID)
	b.WriteByte('\x00')
	b.WriteString(model)
	b.WriteByte('\x00')
	for _, f := range facts {
		b.WriteString(f)
		b.WriteByte('\x00')
	}
	b.WriteString(strconv.Itoa(runIndex))

	hash := sha256.Sum256([]byte(b.String()))
	return "outreachlint:v1:" + hex.EncodeToString(hash[:])
}
