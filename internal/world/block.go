package world

import "fmt"

type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeStone
	BlockTypeWood
	BlockTypeSand
	BlockTypeWater
)

var blockTypeNames = [...]string{
	BlockTypeAir:   "air",
	BlockTypeGrass: "grass",
	BlockTypeDirt:  "dirt",
	BlockTypeStone: "stone",
	BlockTypeWood:  "wood",
	BlockTypeSand:  "sand",
	BlockTypeWater: "water",
}

func (t BlockType) String() string {
	if int(t) < len(blockTypeNames) {
		return blockTypeNames[t]
	}
	return fmt.Sprintf("BlockType(%d)", uint8(t))
}

// ParseBlockType resolves a block type from its lowercase name.
func ParseBlockType(name string) (BlockType, bool) {
	for i, n := range blockTypeNames {
		if n == name {
			return BlockType(i), true
		}
	}
	return BlockTypeAir, false
}

// Block is a unit cube of a given type occupying one grid cell.
type Block struct {
	Pos  Pos
	Type BlockType
}

// BlockFace identifies a face of a block
type BlockFace int

const (
	FaceNorth BlockFace = iota // +Z
	FaceSouth                  // -Z
	FaceEast                   // +X
	FaceWest                   // -X
	FaceTop                    // +Y
	FaceBottom                 // -Y
)

// Normal returns the outward unit normal of the face.
func (f BlockFace) Normal() Pos {
	switch f {
	case FaceNorth:
		return Pos{0, 0, 1}
	case FaceSouth:
		return Pos{0, 0, -1}
	case FaceEast:
		return Pos{1, 0, 0}
	case FaceWest:
		return Pos{-1, 0, 0}
	case FaceTop:
		return Pos{0, 1, 0}
	default:
		return Pos{0, -1, 0}
	}
}
