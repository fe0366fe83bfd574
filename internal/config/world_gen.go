package config

// Height function names accepted by world.height.
const (
	HeightSine   = "sine"
	HeightPerlin = "perlin"
	HeightFlat   = "flat"
)

// WorldGenSettings holds world generation configuration
type WorldGenSettings struct {
	HalfWidth int `yaml:"half_width"`
	BottomY   int `yaml:"bottom_y"`
	// Seed drives decoration (and the Perlin surface). Zero seeds from the
	// clock, so every session looks different.
	Seed       int64   `yaml:"seed"`
	Height     string  `yaml:"height"`
	FlatHeight int     `yaml:"flat_height"`
	SandChance float64 `yaml:"sand_chance"`
	TreeChance float64 `yaml:"tree_chance"`
}

// RenderSettings holds render configuration
type RenderSettings struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// FPSLimit caps the frame rate; zero or negative means uncapped.
	FPSLimit int     `yaml:"fps_limit"`
	FOV      float32 `yaml:"fov"`
}
