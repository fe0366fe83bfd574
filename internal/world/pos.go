package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	keyBits = 21
	keyMask = 1<<keyBits - 1

	// MinCoord and MaxCoord bound every axis of a storable position.
	MinCoord = -(1 << (keyBits - 1))
	MaxCoord = 1<<(keyBits-1) - 1
)

// Pos is an integer grid coordinate (x, y, z).
type Pos [3]int

func (p Pos) X() int { return p[0] }
func (p Pos) Y() int { return p[1] }
func (p Pos) Z() int { return p[2] }

func (p Pos) Add(o Pos) Pos {
	return Pos{p[0] + o[0], p[1] + o[1], p[2] + o[2]}
}

// Vec3 returns the center of the cell in world space.
func (p Pos) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(p[0]), float32(p[1]), float32(p[2])}
}

// Valid reports whether every axis fits in the packed key.
func (p Pos) Valid() bool {
	for _, c := range p {
		if c < MinCoord || c > MaxCoord {
			return false
		}
	}
	return true
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p[0], p[1], p[2])
}

// PosFromVec3 returns the cell containing v, flooring each axis.
func PosFromVec3(v mgl32.Vec3) Pos {
	return Pos{
		int(math.Floor(float64(v[0]))),
		int(math.Floor(float64(v[1]))),
		int(math.Floor(float64(v[2]))),
	}
}

// key packs a position into 63 bits, 21 per axis in two's complement.
// Out-of-range coordinates are a programming error.
type key uint64

func keyOf(p Pos) key {
	if !p.Valid() {
		panic(fmt.Sprintf("world: coordinate %v out of range [%d, %d]", p, MinCoord, MaxCoord))
	}
	return key(uint64(p[0])&keyMask | (uint64(p[1])&keyMask)<<keyBits | (uint64(p[2])&keyMask)<<(2*keyBits))
}

func (k key) pos() Pos {
	return Pos{unpack(uint64(k)), unpack(uint64(k) >> keyBits), unpack(uint64(k) >> (2 * keyBits))}
}

func unpack(v uint64) int {
	v &= keyMask
	if v&(1<<(keyBits-1)) != 0 {
		return int(v) - (1 << keyBits)
	}
	return int(v)
}
