// Package highscore persists the best flappy score in a key-value slot.
//
// Older releases stored the value under a different key. Load falls back to
// that legacy key only while the primary key is missing; the legacy entry is
// removed the next time a new best is written, so a build that never beats
// its score leaves the slot as found.
package highscore

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// KV is the storage slot the keeper reads and writes.
// *storage.Store implements it.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Keeper implements sim.HighScoreStore over a KV slot.
// Failures are logged and never surface to the caller.
type Keeper struct {
	kv      KV
	primary string
	legacy  string
	logger  *log.Logger
}

// NewKeeper creates a keeper for the given keys. An empty legacy key
// disables the fallback. A nil logger discards log output.
func NewKeeper(kv KV, primary, legacy string, logger *log.Logger) *Keeper {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Keeper{
		kv:      kv,
		primary: primary,
		legacy:  legacy,
		logger:  logger,
	}
}

// Load returns the stored high score, or 0 when nothing usable is stored.
// A corrupt or unreadable primary value yields 0 without consulting the
// legacy key.
func (k *Keeper) Load() int {
	if v, found := k.read(k.primary); found {
		return v
	}
	if k.legacy == "" {
		return 0
	}
	v, found := k.read(k.legacy)
	if found && v > 0 {
		k.logger.Debug("high score loaded from legacy key", "key", k.legacy, "score", v)
	}
	return v
}

// Save writes score under the primary key and then drops the legacy key.
func (k *Keeper) Save(score int) {
	if err := k.kv.Set(k.primary, strconv.Itoa(score)); err != nil {
		k.logger.Warn("cannot save high score", "key", k.primary, "err", err)
		return
	}
	k.logger.Info("high score saved", "score", score)

	if k.legacy == "" {
		return
	}
	if _, ok, err := k.kv.Get(k.legacy); err != nil || !ok {
		return
	}
	if err := k.kv.Delete(k.legacy); err != nil {
		k.logger.Warn("cannot remove legacy high score", "key", k.legacy, "err", err)
		return
	}
	k.logger.Debug("legacy high score removed", "key", k.legacy)
}

// read parses the value under key. found is false only when the key is
// missing; unreadable, non-numeric and negative values are found but read
// as 0.
func (k *Keeper) read(key string) (v int, found bool) {
	raw, ok, err := k.kv.Get(key)
	if err != nil {
		k.logger.Warn("cannot read high score", "key", key, "err", err)
		return 0, true
	}
	if !ok {
		return 0, false
	}

	v, err = strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		k.logger.Warn("ignoring corrupt high score", "key", key, "value", raw)
		return 0, true
	}
	return v, true
}

// MemoryKV is an in-process KV, used when no database is available.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get implements KV.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KV.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete implements KV.
func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
