// Package instances keeps the CPU side of per-block instance data: one
// fixed-size record per coordinate in a dense slice, ready for upload.
package instances

import (
	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"
)

// Stride is the number of floats per instance: x, y, z, r, g, b, a.
const Stride = 7

// Set maps block coordinates to instance records. Removal swaps the last
// record into the hole, so the data stays dense.
type Set struct {
	catalog *registry.Catalog
	index   map[world.Pos]int
	pos     []world.Pos
	data    []float32
	dirty   bool
}

func NewSet(catalog *registry.Catalog) *Set {
	return &Set{
		catalog: catalog,
		index:   make(map[world.Pos]int),
	}
}

// BlockAdded inserts or replaces the record at b.Pos.
func (s *Set) BlockAdded(b world.Block) {
	rec := s.record(b)
	if i, ok := s.index[b.Pos]; ok {
		copy(s.data[i*Stride:], rec[:])
	} else {
		s.index[b.Pos] = len(s.pos)
		s.pos = append(s.pos, b.Pos)
		s.data = append(s.data, rec[:]...)
	}
	s.dirty = true
}

// BlockRemoved releases the record at b.Pos, if any.
func (s *Set) BlockRemoved(b world.Block) {
	i, ok := s.index[b.Pos]
	if !ok {
		return
	}
	last := len(s.pos) - 1
	if i != last {
		moved := s.pos[last]
		s.pos[i] = moved
		s.index[moved] = i
		copy(s.data[i*Stride:(i+1)*Stride], s.data[last*Stride:])
	}
	delete(s.index, b.Pos)
	s.pos = s.pos[:last]
	s.data = s.data[:last*Stride]
	s.dirty = true
}

// Len is the number of instances.
func (s *Set) Len() int { return len(s.pos) }

// Has reports whether a record exists for pos.
func (s *Set) Has(pos world.Pos) bool {
	_, ok := s.index[pos]
	return ok
}

// Data returns the packed records. The slice is only valid until the next
// mutation.
func (s *Set) Data() []float32 { return s.data }

// MarkDirty forces the next TakeDirty to report a change.
func (s *Set) MarkDirty() { s.dirty = true }

// TakeDirty reports whether the set changed since the last call and clears
// the flag.
func (s *Set) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

func (s *Set) record(b world.Block) [Stride]float32 {
	rec := [Stride]float32{float32(b.Pos[0]), float32(b.Pos[1]), float32(b.Pos[2]), 1, 0, 1, 1}
	if def, ok := s.catalog.Lookup(b.Type); ok {
		rec[3], rec[4], rec[5] = def.RGB()
		rec[6] = def.Alpha()
	}
	return rec
}
