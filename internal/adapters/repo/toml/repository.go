package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
)

const (
	runsPathKey     = "runs.path"
	runsFileMode    = 0o600
	runsDirMode     = 0o700
	runsConfigDir   = ".smartplace"
	runsConfigFile  = "runs.toml"
	tempFilePattern = ".runs-*.toml.tmp"

	// MaxStoredRuns bounds the history; the oldest runs are dropped first.
	MaxStoredRuns = 200

	minIDPrefix = 4
)

var ErrAmbiguousRunID = errors.New("run id prefix is ambiguous")

type Repository struct {
	runsPath string
	mu       *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.RunRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(runsPathKey, filepath.Join(homeDir, runsConfigDir, runsConfigFile))

	runsPath := cfg.GetString(runsPathKey)
	if runsPath == "" {
		return nil, errors.New("runs path is empty")
	}
	runsPath, err = normalizeRunsPath(runsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{runsPath: runsPath, mu: lockForPath(runsPath)}, nil
}

func (r *Repository) Path() string {
	return r.runsPath
}

// Save inserts or replaces the run with the same id.
func (r *Repository) Save(ctx context.Context, summary domain.RunSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(summary.ID) == "" {
		return errors.New("run id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(summary)
	updated := false
	for i := range file.Runs {
		if file.Runs[i].ID == encoded.ID {
			file.Runs[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Runs = append(file.Runs, encoded)
	}
	file.Runs = pruneRuns(file.Runs, MaxStoredRuns)

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

// GetByID accepts a full id or a unique prefix of at least four characters.
func (r *Repository) GetByID(ctx context.Context, id string) (domain.RunSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.RunSummary{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.RunSummary{}, err
	}

	id = strings.TrimSpace(id)
	var match *runSchema
	for i := range file.Runs {
		entry := &file.Runs[i]
		if entry.ID == id {
			return fromSchema(*entry)
		}
		if len(id) >= minIDPrefix && strings.HasPrefix(entry.ID, id) {
			if match != nil {
				return domain.RunSummary{}, fmt.Errorf("%w: %s", ErrAmbiguousRunID, id)
			}
			match = entry
		}
	}
	if match != nil {
		return fromSchema(*match)
	}

	return domain.RunSummary{}, domain.ErrRunNotFound
}

// List returns runs newest first.
func (r *Repository) List(ctx context.Context) ([]domain.RunSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	runs := make([]domain.RunSummary, 0, len(file.Runs))
	for _, entry := range file.Runs {
		summary, err := fromSchema(entry)
		if err != nil {
			return nil, err
		}
		runs = append(runs, summary)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	return runs, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.runsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read runs file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode runs file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.runsPath), runsDirMode); err != nil {
		return fmt.Errorf("create runs directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode runs file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.runsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp runs file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp runs file: %w", err)
	}

	if err := tempFile.Chmod(runsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp runs file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp runs file: %w", err)
	}

	if err := os.Rename(tempName, r.runsPath); err != nil {
		return fmt.Errorf("replace runs file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.runsPath, runsFileMode); err != nil {
		return fmt.Errorf("chmod runs file: %w", err)
	}

	return nil
}

func normalizeRunsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve runs path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

// pruneRuns keeps the newest limit runs in their stored order.
func pruneRuns(runs []runSchema, limit int) []runSchema {
	if len(runs) <= limit {
		return runs
	}

	order := make([]int, len(runs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return parseTime(runs[order[a]].StartedAt).Before(parseTime(runs[order[b]].StartedAt))
	})

	drop := make(map[int]struct{}, len(runs)-limit)
	for _, index := range order[:len(runs)-limit] {
		drop[index] = struct{}{}
	}

	kept := make([]runSchema, 0, limit)
	for i, run := range runs {
		if _, ok := drop[i]; !ok {
			kept = append(kept, run)
		}
	}

	return kept
}

func toSchema(summary domain.RunSummary) runSchema {
	stores := make([]storeSchema, 0, len(summary.Stores))
	for _, store := range summary.Stores {
		stores = append(stores, storeSchema{
			BookingBusinessID: store.BookingBusinessID,
			PlaceID:           store.PlaceID,
			PlaceSeq:          store.PlaceSeq,
			ReviewURL:         store.ReviewURL,
			Status:            string(store.Status),
			ReviewCount:       store.ReviewCount,
			DraftCount:        store.DraftCount,
			DraftFailedCount:  store.DraftFailedCount,
			SubmittedCount:    store.SubmittedCount,
			SubmitFailedCount: store.SubmitFailedCount,
			Error:             store.Error,
		})
	}

	return runSchema{
		ID:         summary.ID,
		State:      summary.State.String(),
		StartedAt:  formatTime(summary.StartedAt),
		FinishedAt: formatTime(summary.FinishedAt),
		Error:      summary.Error,
		Stores:     stores,
	}
}

func fromSchema(run runSchema) (domain.RunSummary, error) {
	state, err := domain.ParseRunState(run.State)
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("decode run %s: %w", run.ID, err)
	}

	stores := make([]domain.StoreSummary, 0, len(run.Stores))
	for _, store := range run.Stores {
		stores = append(stores, domain.StoreSummary{
			BookingBusinessID: store.BookingBusinessID,
			PlaceID:           store.PlaceID,
			PlaceSeq:          store.PlaceSeq,
			ReviewURL:         store.ReviewURL,
			Status:            domain.StoreStatus(store.Status),
			ReviewCount:       store.ReviewCount,
			DraftCount:        store.DraftCount,
			DraftFailedCount:  store.DraftFailedCount,
			SubmittedCount:    store.SubmittedCount,
			SubmitFailedCount: store.SubmitFailedCount,
			Error:             store.Error,
		})
	}

	return domain.RunSummary{
		ID:         run.ID,
		State:      state,
		StartedAt:  parseTime(run.StartedAt),
		FinishedAt: parseTime(run.FinishedAt),
		Error:      run.Error,
		Stores:     stores,
	}, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
