package store

import (
	"context"
	"encoding/json"
	"log/slog"
)

// envelope wraps a persisted collection with a schema version marker so a
// future record-shape change can invalidate stale blobs instead of tripping
// over them at decode time.
type envelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// loadState reads and unwraps the envelope stored under key. Every failure
// mode is fail-open: an absent key, an unreadable medium, a malformed blob,
// or a version mismatch all yield nil, and the store starts empty. Corrupt
// persisted state must never block startup.
func loadState(ctx context.Context, adapter Adapter, key string, version int, logger *slog.Logger) json.RawMessage {
	data, err := adapter.Load(ctx, key)
	if err != nil {
		logger.Warn("failed to load persisted state, starting empty", "key", key, "error", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		logger.Warn("persisted state is malformed, starting empty", "key", key, "error", err)
		return nil
	}
	if env.Version != version {
		logger.Warn("persisted state has incompatible version, starting empty",
			"key", key, "found", env.Version, "want", version)
		return nil
	}

	return env.State
}

// saveState marshals state into a versioned envelope and writes it through
// the adapter. Failures are logged and absorbed: the in-memory collection
// stays authoritative and the store degrades to non-persistent operation for
// the session.
func saveState(ctx context.Context, adapter Adapter, key string, version int, state any, logger *slog.Logger) {
	raw, err := json.Marshal(state)
	if err != nil {
		logger.Error("failed to serialize store state", "key", key, "error", err)
		return
	}

	data, err := json.Marshal(envelope{Version: version, State: raw})
	if err != nil {
		logger.Error("failed to serialize store envelope", "key", key, "error", err)
		return
	}

	if err := adapter.Save(ctx, key, data); err != nil {
		logger.Warn("failed to persist store state", "key", key, "error", err)
	}
}
