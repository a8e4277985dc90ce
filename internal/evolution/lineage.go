package evolution

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
)

// LoadLineage reads the lineage file at path. A missing file is not an
// error: it returns an empty store, matching the controller's resume
// behaviour on a first run (spec §4.9).
func LoadLineage(path string) (domain.LineageStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.LineageStore{}, nil
		}
		return domain.LineageStore{}, fmt.Errorf("read lineage file: %w", err)
	}

	var store domain.LineageStore
	if err := json.Unmarshal(data, &store); err != nil {
		return domain.LineageStore{}, fmt.Errorf("decode lineage file: %w", err)
	}
	return store, nil
}

// SaveLineage writes store to path atomically: write to path+".tmp" then
// rename over path, so a crash mid-write leaves the previous committed
// lineage intact (spec §4.9, §9).
func SaveLineage(path string, store domain.LineageStore) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create lineage directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("encode lineage store: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temporary lineage file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("commit lineage file: %w", err)
	}
	return nil
}
