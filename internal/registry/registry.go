// Package registry keeps process-lifetime singletons keyed by Go type.
//
// Entries are created lazily on first use and never evicted: the identity of
// a stored value is what callers compare against, so a key must map to the
// same value for as long as the process lives.
package registry

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry spreads its keys over several sync.Maps, picked by the xxhash of
// the key's type name. Entries are read far more often than written, so a
// single shard is a valid configuration; BenchmarkRegistry_* compare the two.
type Registry struct {
	shards []sync.Map
	size   atomic.Uint32
	logger atomic.Pointer[zap.Logger]
}

// New builds an empty registry. A nil logger discards registration logs.
func New(cfg Config, logger *zap.Logger) *Registry {
	cfg = NewConfig(cfg.Shards)
	r := &Registry{
		shards: make([]sync.Map, cfg.Shards),
	}
	r.SetLogger(logger)
	return r
}

// SetLogger swaps the logger used for registration entries.
func (r *Registry) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.logger.Store(logger)
}

// Load returns the entry stored under key, if any.
func (r *Registry) Load(key reflect.Type) (any, bool) {
	return r.shardFor(key).Load(key)
}

// LoadOrCreate returns the entry for key, building it on first use.
//
// build receives a fresh id for the entry. Concurrent first uses may each
// call build, but only one result is ever published and returned.
func (r *Registry) LoadOrCreate(key reflect.Type, build func(id string) any) any {
	shard := r.shardFor(key)
	if v, ok := shard.Load(key); ok {
		return v
	}

	id := uuid.New().String()
	v, loaded := shard.LoadOrStore(key, build(id))
	if !loaded {
		r.size.Add(1)
		r.logger.Load().Debug("registered entry",
			zap.Stringer("key", key),
			zap.String("id", id),
			zap.Any("entry", v),
		)
	}
	return v
}

// Len reports how many entries were published.
func (r *Registry) Len() int {
	return int(r.size.Load())
}

func (r *Registry) shardFor(key reflect.Type) *sync.Map {
	if key == nil {
		panic("registry: nil key")
	}
	switch n := len(r.shards); n {
	case 1:
		return &r.shards[0]
	default:
		return &r.shards[xxhash.Sum64String(key.String())%uint64(n)]
	}
}
