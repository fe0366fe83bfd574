package world

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// World is the sparse block store. It maps grid coordinates to blocks and
// holds at most one block per coordinate. The store never notifies
// listeners itself; whoever mutates it is responsible for that.
type World struct {
	mu       sync.RWMutex
	blocks   map[key]BlockType
	modCount uint64 // Increases on any block add/remove
}

// New creates an empty world.
func New() *World {
	return &World{blocks: make(map[key]BlockType)}
}

// Get returns the block at pos, if any.
func (w *World) Get(pos Pos) (Block, bool) {
	k := keyOf(pos)
	w.mu.RLock()
	t, ok := w.blocks[k]
	w.mu.RUnlock()
	if !ok {
		return Block{}, false
	}
	return Block{Pos: pos, Type: t}, true
}

// Has reports whether a block exists at pos.
func (w *World) Has(pos Pos) bool {
	k := keyOf(pos)
	w.mu.RLock()
	_, ok := w.blocks[k]
	w.mu.RUnlock()
	return ok
}

// IsAir is the inverse of Has.
func (w *World) IsAir(pos Pos) bool {
	return !w.Has(pos)
}

// Set inserts or overwrites the block at pos. Setting BlockTypeAir is
// equivalent to Remove.
func (w *World) Set(pos Pos, t BlockType) {
	if t == BlockTypeAir {
		w.Remove(pos)
		return
	}
	k := keyOf(pos)
	w.mu.Lock()
	w.blocks[k] = t
	w.modCount++
	w.mu.Unlock()
}

// Remove deletes and returns the block at pos.
func (w *World) Remove(pos Pos) (Block, bool) {
	k := keyOf(pos)
	w.mu.Lock()
	defer w.mu.Unlock()
	t, ok := w.blocks[k]
	if !ok {
		return Block{}, false
	}
	delete(w.blocks, k)
	w.modCount++
	return Block{Pos: pos, Type: t}, true
}

// AllBlocks returns a snapshot of every block. Order is unspecified.
func (w *World) AllBlocks() []Block {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Block, 0, len(w.blocks))
	for k, t := range w.blocks {
		out = append(out, Block{Pos: k.pos(), Type: t})
	}
	return out
}

// Len returns the number of stored blocks.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.blocks)
}

// Version returns the modification count of the store.
func (w *World) Version() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.modCount
}

// Fingerprint returns a digest of the block set that does not depend on
// insertion or iteration order. Two worlds holding the same blocks have
// the same fingerprint.
func (w *World) Fingerprint() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var sum, mix uint64
	var buf [9]byte
	for k, t := range w.blocks {
		binary.LittleEndian.PutUint64(buf[:8], uint64(k))
		buf[8] = byte(t)
		h := xxhash.Sum64(buf[:])
		sum += h
		mix ^= h
	}
	binary.LittleEndian.PutUint64(buf[:8], sum)
	buf[8] = 0
	return xxhash.Sum64(buf[:]) ^ mix ^ uint64(len(w.blocks))
}
