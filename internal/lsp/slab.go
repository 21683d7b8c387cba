package lsp

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// slabShards is the number of independent locked buckets the reply slab
// spreads its entries across, so a reader-task take() on one in-flight
// call's id never blocks a concurrent call()'s insert() for an unrelated
// id landing in a different shard.
const slabShards = 16

// replySlab is the concurrent slab the spec's concurrency model calls for:
// one reader task dispatches responses into per-request channels indexed
// by numeric id, one writer/caller inserts an entry per outstanding call,
// and take() enforces take-and-drop so a response delivered after its
// caller gave up never corrupts a later call reusing the same id space.
type replySlab struct {
	shards [slabShards]replyShard
}

type replyShard struct {
	mu      sync.Mutex
	entries map[uint64]chan Output
}

func newReplySlab() *replySlab {
	s := &replySlab{}
	for i := range s.shards {
		s.shards[i].entries = make(map[uint64]chan Output)
	}
	return s
}

func (s *replySlab) shardFor(id uint64) *replyShard {
	var idBytes [8]byte
	binary.LittleEndian.PutUint64(idBytes[:], id)
	return &s.shards[xxhash.Sum64(idBytes[:])%slabShards]
}

// insert registers a reply channel for id. The channel is buffered by one
// so a reader-task send never blocks on a caller that has already given up
// (see take's take-and-drop note).
func (s *replySlab) insert(id uint64) chan Output {
	ch := make(chan Output, 1)
	shard := s.shardFor(id)
	shard.mu.Lock()
	shard.entries[id] = ch
	shard.mu.Unlock()
	return ch
}

// take removes and returns the channel registered for id, reporting
// whether one was found. Once taken, a second take for the same id finds
// nothing — this is what makes a response delivered after the caller
// already timed out and dropped its receiver harmless: the reader task's
// take() simply reports "unknown id" instead of sending into a channel
// nobody reads, and the slab entry can't be resurrected or double-freed.
func (s *replySlab) take(id uint64) (chan Output, bool) {
	shard := s.shardFor(id)
	shard.mu.Lock()
	ch, ok := shard.entries[id]
	if ok {
		delete(shard.entries, id)
	}
	shard.mu.Unlock()
	return ch, ok
}

// drop removes id's entry without requiring a channel send, used when a
// call's context is canceled before the reader task ever delivers a
// response.
func (s *replySlab) drop(id uint64) {
	shard := s.shardFor(id)
	shard.mu.Lock()
	delete(shard.entries, id)
	shard.mu.Unlock()
}
