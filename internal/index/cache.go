package index

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Fingerprint returns the hex SHA-256 of the document's raw bytes. The
// cache check compares fingerprints, never mtime or size, so any
// byte-level change forces a rebuild.
func Fingerprint(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Manager decides whether the persisted index in dir can serve a
// document with a given fingerprint. It has two observable states:
// valid (stored fingerprint matches) and stale (mismatch, missing
// index or load failure). Stale always means a full synchronous
// rebuild before any search is served.
type Manager struct {
	dir    string
	logger *zap.Logger
}

// NewManager creates a cache manager over an index directory.
func NewManager(dir string, logger *zap.Logger) *Manager {
	return &Manager{dir: dir, logger: logger}
}

// Cached loads the persisted snapshot when it exists and was built
// from the same fingerprint. Any load failure is logged and reported
// as stale, never surfaced.
func (m *Manager) Cached(fingerprint string) (*Snapshot, bool) {
	snap, err := Load(m.dir)
	if err != nil {
		m.logger.Info("no usable persisted index, rebuilding",
			zap.String("dir", m.dir),
			zap.Error(err),
		)
		return nil, false
	}
	if snap.Fingerprint != fingerprint {
		m.logger.Info("document changed since index was built, rebuilding",
			zap.String("stored", shorten(snap.Fingerprint)),
			zap.String("current", shorten(fingerprint)),
		)
		return nil, false
	}
	m.logger.Info("loaded persisted index",
		zap.String("dir", m.dir),
		zap.Int("passages", len(snap.Passages)),
		zap.Int("dimension", snap.Dimension),
	)
	return snap, true
}

// Store persists a freshly built snapshot.
func (m *Manager) Store(snap *Snapshot) error {
	return Save(m.dir, snap)
}

func shorten(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
