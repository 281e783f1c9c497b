package index

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Kalrakhush/HarryPotter-Rag/internal/domain"
)

const (
	snapshotFile    = "index.gob"
	fingerprintFile = "fingerprint"
)

// Save persists the snapshot into dir: the gob-encoded vector+passage
// store plus a small fingerprint side-file. Both are written to a temp
// file and renamed, so a crash mid-write cannot corrupt a previously
// valid index. Concurrent writers are last-writer-wins.
func Save(dir string, s *Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexBuild, err)
	}
	if err := writeAtomic(filepath.Join(dir, snapshotFile), func(f *os.File) error {
		return gob.NewEncoder(f).Encode(s)
	}); err != nil {
		return fmt.Errorf("%w: write snapshot: %v", domain.ErrIndexBuild, err)
	}
	if err := writeAtomic(filepath.Join(dir, fingerprintFile), func(f *os.File) error {
		_, err := f.WriteString(s.Fingerprint + "\n")
		return err
	}); err != nil {
		return fmt.Errorf("%w: write fingerprint: %v", domain.ErrIndexBuild, err)
	}
	return nil
}

// Load reconstructs a snapshot from dir. Any structural problem (a
// missing or truncated file, a dimension or count mismatch, a
// fingerprint side-file that disagrees with the snapshot) is reported
// as ErrIndexLoad; callers recover by rebuilding.
func Load(dir string) (*Snapshot, error) {
	f, err := os.Open(filepath.Join(dir, snapshotFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexLoad, err)
	}
	defer f.Close()

	var s Snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrIndexLoad, err)
	}
	if len(s.Passages) == 0 || len(s.Passages) != len(s.Vectors) {
		return nil, fmt.Errorf("%w: %d passages, %d vectors",
			domain.ErrIndexLoad, len(s.Passages), len(s.Vectors))
	}
	for i, v := range s.Vectors {
		if len(v) != s.Dimension {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, want %d",
				domain.ErrIndexLoad, i, len(v), s.Dimension)
		}
	}

	side, err := os.ReadFile(filepath.Join(dir, fingerprintFile))
	if err != nil {
		return nil, fmt.Errorf("%w: fingerprint file: %v", domain.ErrIndexLoad, err)
	}
	if strings.TrimSpace(string(side)) != s.Fingerprint {
		return nil, fmt.Errorf("%w: fingerprint side-file disagrees with snapshot", domain.ErrIndexLoad)
	}
	return &s, nil
}

func writeAtomic(path string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
