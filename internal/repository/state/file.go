package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/zero-hour/internal/config"
	domain "github.com/oshokin/zero-hour/internal/domain/countdown"
)

// Snapshot is the persisted celebration state of one countdown view. The
// celebrated set is the part that matters across restarts: a timezone listed
// here never replays its animation.
type Snapshot struct {
	// State is the celebration state at save time.
	State domain.CelebrationState `yaml:"state"`
	// Complete mirrors the completion flag at save time.
	Complete bool `yaml:"complete"`
	// Celebrated lists the timezones that already celebrated this target.
	Celebrated []string `yaml:"celebrated"`
	// SavedAt is the instant the snapshot was written.
	SavedAt time.Time `yaml:"saved_at"`
}

// Repository defines persistence operations for the celebration state.
type Repository interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot *Snapshot) error
}

// FileRepository persists the celebration state to a YAML file on disk, the
// same format the countdown definition uses.
type FileRepository struct {
	// path is the filesystem location of the state file.
	path string
	// mu protects concurrent access to the state file.
	mu sync.Mutex
}

// ErrNotFound is returned when the state file does not exist yet.
var ErrNotFound = errors.New("state not found")

// NewFileRepository creates a repository that reads/writes YAML at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the snapshot from disk.
func (r *FileRepository) Load(_ context.Context) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read state file: %w", err)
	}

	var snapshot Snapshot
	if err = yaml.Unmarshal(contents, &snapshot); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}

	return &snapshot, nil
}

// Save writes the snapshot to disk.
func (r *FileRepository) Save(_ context.Context, snapshot *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}
