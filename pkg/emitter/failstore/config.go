package failstore

import (
	"github.com/randalmurphal/emitter/pkg/emitter/config"
)

// FromConfig opens the failure store selected by the failure_store key.
// It returns a nil Store when the journal is disabled.
func FromConfig(cfg config.Config) (Store, error) {
	s := cfg.Settings()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.FailureStore {
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StoreSQLite:
		store, err := NewSQLiteStore(s.FailureStorePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, nil
	}
}
