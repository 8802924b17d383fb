package registry_test

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/on-the-ground/smallfunc/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type entry struct {
	id string
}

type keyA struct{}
type keyB struct{}

func TestNewConfig(t *testing.T) {
	assert.Equal(t, registry.DefaultShards, registry.NewConfig(0).Shards)
	assert.Equal(t, registry.DefaultShards, registry.NewConfig(-3).Shards)
	assert.Equal(t, 4, registry.NewConfig(4).Shards)
}

func TestRegistry_LoadOrCreateKeepsIdentity(t *testing.T) {
	reg := registry.New(registry.NewConfig(4), nil)
	key := reflect.TypeFor[keyA]()

	_, ok := reg.Load(key)
	assert.False(t, ok)

	builds := 0
	build := func(id string) any {
		builds++
		return &entry{id: id}
	}

	first := reg.LoadOrCreate(key, build)
	second := reg.LoadOrCreate(key, build)
	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)
	assert.NotEmpty(t, first.(*entry).id)

	loaded, ok := reg.Load(key)
	require.True(t, ok)
	assert.Same(t, first, loaded)

	other := reg.LoadOrCreate(reflect.TypeFor[keyB](), build)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_SingleShard(t *testing.T) {
	reg := registry.New(registry.NewConfig(1), nil)
	a := reg.LoadOrCreate(reflect.TypeFor[keyA](), func(id string) any { return &entry{id: id} })
	b := reg.LoadOrCreate(reflect.TypeFor[keyB](), func(id string) any { return &entry{id: id} })
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_ConcurrentFirstUsePublishesOnce(t *testing.T) {
	reg := registry.New(registry.Config{}, nil)
	key := reflect.TypeFor[keyA]()

	const n = 32
	results := make([]any, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = reg.LoadOrCreate(key, func(id string) any { return &entry{id: id} })
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0], r)
	}
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_LogsRegistration(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	reg := registry.New(registry.Config{}, zap.New(core))
	key := reflect.TypeFor[keyA]()

	reg.LoadOrCreate(key, func(id string) any { return &entry{id: id} })
	reg.LoadOrCreate(key, func(id string) any { return &entry{id: id} })

	entries := logs.FilterMessage("registered entry").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, key.String(), fields["key"])
	assert.NotEmpty(t, fields["id"])
}

func TestRegistry_NilKeyPanics(t *testing.T) {
	reg := registry.New(registry.Config{}, nil)
	assert.Panics(t, func() {
		reg.Load(nil)
	})
}

// distinctKeys builds n distinct array types to stand in for callable types.
func distinctKeys(n int) []reflect.Type {
	keys := make([]reflect.Type, n)
	for i := range keys {
		keys[i] = reflect.ArrayOf(i+1, reflect.TypeFor[byte]())
	}
	return keys
}

func BenchmarkRegistry_ParallelRegistration(b *testing.B) {
	keys := distinctKeys(512)
	for _, shards := range []int{1, registry.DefaultShards} {
		b.Run(fmt.Sprintf("Shards_%d", shards), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				reg := registry.New(registry.NewConfig(shards), nil)
				var wg sync.WaitGroup
				for w := 0; w < 8; w++ {
					wg.Add(1)
					go func(w int) {
						defer wg.Done()
						for j := w; j < len(keys); j += 8 {
							reg.LoadOrCreate(keys[j], func(id string) any { return &entry{id: id} })
						}
					}(w)
				}
				wg.Wait()
			}
		})
	}
}

func BenchmarkRegistry_ParallelLoad(b *testing.B) {
	keys := distinctKeys(512)
	for _, shards := range []int{1, registry.DefaultShards} {
		b.Run(fmt.Sprintf("Shards_%d", shards), func(b *testing.B) {
			reg := registry.New(registry.NewConfig(shards), nil)
			for _, k := range keys {
				reg.LoadOrCreate(k, func(id string) any { return &entry{id: id} })
			}
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					reg.Load(keys[i%len(keys)])
					i++
				}
			})
		})
	}
}

func TestRegistry_DistinctKeysAcrossShards(t *testing.T) {
	reg := registry.New(registry.Config{}, nil)
	keys := distinctKeys(64)
	for _, k := range keys {
		reg.LoadOrCreate(k, func(id string) any { return &entry{id: id} })
	}
	assert.Equal(t, len(keys), reg.Len())
	for _, k := range keys {
		_, ok := reg.Load(k)
		assert.True(t, ok, k.String())
	}
}
