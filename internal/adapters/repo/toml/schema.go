package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int         `toml:"version"`
	Runs    []runSchema `toml:"runs"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported runs schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type runSchema struct {
	ID         string        `toml:"id"`
	State      string        `toml:"state"`
	StartedAt  string        `toml:"started_at"`
	FinishedAt string        `toml:"finished_at"`
	Error      string        `toml:"error,omitempty"`
	Stores     []storeSchema `toml:"stores,omitempty"`
}

type storeSchema struct {
	BookingBusinessID string `toml:"booking_business_id"`
	PlaceID           string `toml:"place_id"`
	PlaceSeq          string `toml:"place_seq"`
	ReviewURL         string `toml:"review_url,omitempty"`
	Status            string `toml:"status"`
	ReviewCount       int    `toml:"review_count"`
	DraftCount        int    `toml:"draft_count"`
	DraftFailedCount  int    `toml:"draft_failed_count"`
	SubmittedCount    int    `toml:"submitted_count"`
	SubmitFailedCount int    `toml:"submit_failed_count"`
	Error             string `toml:"error,omitempty"`
}
