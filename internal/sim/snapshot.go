package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/phygon975/API-project/internal/common"
)

// snapshotFile is the on-disk shape of an exported model snapshot.
type snapshotFile struct {
	Blocks  map[string]snapshotBlock `json:"blocks"`
	UnitSet string                   `json:"unit_set"`
}

type snapshotBlock struct {
	Properties map[string]RawValue `json:"properties"`
	RecordType string              `json:"record_type,omitempty"`
}

// Snapshot is a Source backed by a JSON export of a simulation model. It
// lets the whole pipeline run without the simulator installed and is the
// fixture format the tests use.
type Snapshot struct {
	blocks  map[string]snapshotBlock
	order   []string
	unitSet string
	path    string
}

// OpenSnapshot loads a snapshot file. Any failure here is a pipeline-setup
// failure: the caller aborts before classification begins.
func OpenSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, common.ErrSourceUnavailable)
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %v: %w", path, err, common.ErrSourceUnavailable)
	}
	if len(file.Blocks) == 0 {
		return nil, fmt.Errorf("snapshot %s contains no blocks: %w", path, common.ErrSourceUnavailable)
	}
	if file.UnitSet == "" {
		file.UnitSet = "SI"
	}

	// A stable block order keeps runs reproducible even though the Source
	// contract does not promise one.
	order := make([]string, 0, len(file.Blocks))
	for name := range file.Blocks {
		order = append(order, name)
	}
	sort.Strings(order)

	return &Snapshot{
		blocks:  file.Blocks,
		order:   order,
		unitSet: file.UnitSet,
		path:    path,
	}, nil
}

// ListBlocks returns every block name in the snapshot.
func (s *Snapshot) ListBlocks(_ context.Context) ([]string, error) {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out, nil
}

// RecordType returns a block's declared model-type tag.
func (s *Snapshot) RecordType(_ context.Context, block string) (string, bool, error) {
	b, ok := s.blocks[block]
	if !ok {
		return "", false, fmt.Errorf("block %q: %w", block, common.ErrDeviceNotFound)
	}
	return b.RecordType, b.RecordType != "", nil
}

// RawProperty returns one named property of a block.
func (s *Snapshot) RawProperty(_ context.Context, block, key string) (RawValue, bool, error) {
	b, ok := s.blocks[block]
	if !ok {
		return RawValue{}, false, fmt.Errorf("block %q: %w", block, common.ErrDeviceNotFound)
	}
	v, ok := b.Properties[key]
	return v, ok, nil
}

// ActiveUnitSet returns the unit-set identifier the snapshot was exported
// under.
func (s *Snapshot) ActiveUnitSet(_ context.Context) (string, error) {
	return s.unitSet, nil
}

// Close releases the snapshot. Nothing to free for a file-backed source.
func (s *Snapshot) Close() error {
	return nil
}

// Path returns the file the snapshot was loaded from.
func (s *Snapshot) Path() string {
	return s.path
}
