package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRemove(t *testing.T) {
	w := New()
	p := Pos{1, -2, 3}

	_, ok := w.Get(p)
	assert.False(t, ok)
	assert.True(t, w.IsAir(p))

	w.Set(p, BlockTypeStone)
	b, ok := w.Get(p)
	require.True(t, ok)
	assert.Equal(t, Block{Pos: p, Type: BlockTypeStone}, b)
	assert.True(t, w.Has(p))

	removed, ok := w.Remove(p)
	require.True(t, ok)
	assert.Equal(t, BlockTypeStone, removed.Type)
	assert.False(t, w.Has(p))
	assert.Equal(t, 0, w.Len())

	_, ok = w.Remove(p)
	assert.False(t, ok, "removing an empty cell is a no-op")
}

func TestSetOverwritesSingleOccupant(t *testing.T) {
	w := New()
	p := Pos{0, 0, 0}
	w.Set(p, BlockTypeDirt)
	w.Set(p, BlockTypeSand)

	assert.Equal(t, 1, w.Len())
	b, _ := w.Get(p)
	assert.Equal(t, BlockTypeSand, b.Type)
}

func TestSetAirRemoves(t *testing.T) {
	w := New()
	p := Pos{4, 4, 4}
	w.Set(p, BlockTypeWood)
	w.Set(p, BlockTypeAir)
	assert.False(t, w.Has(p))
	assert.Equal(t, 0, w.Len())
}

func TestAllBlocksMatchesStore(t *testing.T) {
	w := New()
	want := map[Pos]BlockType{
		{0, 0, 0}:    BlockTypeGrass,
		{-1, 5, 2}:   BlockTypeDirt,
		{10, -3, -7}: BlockTypeStone,
	}
	for p, bt := range want {
		w.Set(p, bt)
	}

	got := make(map[Pos]BlockType)
	for _, b := range w.AllBlocks() {
		got[b.Pos] = b.Type
	}
	assert.Equal(t, want, got)
}

func TestVersionCountsMutations(t *testing.T) {
	w := New()
	v0 := w.Version()
	w.Set(Pos{0, 0, 0}, BlockTypeGrass)
	w.Remove(Pos{0, 0, 0})
	w.Remove(Pos{0, 0, 0})
	assert.Equal(t, v0+2, w.Version())
}

func TestKeyRoundTrip(t *testing.T) {
	cases := []Pos{
		{0, 0, 0},
		{1, 2, 3},
		{-1, -2, -3},
		{MinCoord, MaxCoord, 0},
		{MaxCoord, MinCoord, -1},
		{-30, -2, 29},
	}
	for _, p := range cases {
		assert.Equal(t, p, keyOf(p).pos(), "%v", p)
	}
	assert.NotEqual(t, keyOf(Pos{1, 0, 0}), keyOf(Pos{0, 1, 0}))
	assert.NotEqual(t, keyOf(Pos{-1, 0, 0}), keyOf(Pos{0, 0, -1}))
}

func TestOutOfRangeCoordinatePanics(t *testing.T) {
	w := New()
	assert.Panics(t, func() { w.Set(Pos{MaxCoord + 1, 0, 0}, BlockTypeStone) })
	assert.Panics(t, func() { w.Has(Pos{0, MinCoord - 1, 0}) })
	assert.False(t, Pos{0, 0, MaxCoord + 1}.Valid())
}

func TestFingerprintIgnoresInsertionOrder(t *testing.T) {
	a, b := New(), New()
	blocks := []Block{
		{Pos{0, 0, 0}, BlockTypeGrass},
		{Pos{1, 0, 0}, BlockTypeDirt},
		{Pos{0, 1, 0}, BlockTypeStone},
	}
	for _, blk := range blocks {
		a.Set(blk.Pos, blk.Type)
	}
	for i := len(blocks) - 1; i >= 0; i-- {
		b.Set(blocks[i].Pos, blocks[i].Type)
	}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Set(Pos{1, 0, 0}, BlockTypeSand)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	assert.NotEqual(t, New().Fingerprint(), a.Fingerprint())
}

func TestPosFromVec3Floors(t *testing.T) {
	assert.Equal(t, Pos{0, -1, 2}, PosFromVec3(mgl32.Vec3{0.5, -0.5, 2.9}))
	assert.Equal(t, Pos{-3, 4, 0}, PosFromVec3(Pos{-3, 4, 0}.Vec3()))
}

func TestParseBlockType(t *testing.T) {
	bt, ok := ParseBlockType("sand")
	assert.True(t, ok)
	assert.Equal(t, BlockTypeSand, bt)
	assert.Equal(t, "sand", bt.String())

	_, ok = ParseBlockType("lava")
	assert.False(t, ok)
	assert.Equal(t, "BlockType(200)", BlockType(200).String())
}

func TestFaceNormals(t *testing.T) {
	assert.Equal(t, Pos{0, 1, 0}, FaceTop.Normal())
	assert.Equal(t, Pos{-1, 0, 0}, FaceWest.Normal())
	assert.Equal(t, Pos{0, 0, 1}, FaceNorth.Normal())
}

type recorder struct {
	added, removed []Block
}

func (r *recorder) BlockAdded(b Block)   { r.added = append(r.added, b) }
func (r *recorder) BlockRemoved(b Block) { r.removed = append(r.removed, b) }

func TestMultiListenerFansOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := MultiListener{a, NopListener{}, b}
	blk := Block{Pos{1, 1, 1}, BlockTypeWood}

	m.BlockAdded(blk)
	m.BlockRemoved(blk)

	for _, r := range []*recorder{a, b} {
		assert.Equal(t, []Block{blk}, r.added)
		assert.Equal(t, []Block{blk}, r.removed)
	}
}

func BenchmarkSetGet(b *testing.B) {
	w := New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p := Pos{i % 64, (i / 64) % 64, (i / 4096) % 64}
		w.Set(p, BlockTypeStone)
		_, _ = w.Get(p)
	}
}
