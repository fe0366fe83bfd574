package world

// Listener receives block mutation notifications. Renderers implement it
// to build or release the visual representation keyed by coordinate.
type Listener interface {
	BlockAdded(b Block)
	BlockRemoved(b Block)
}

// NopListener discards all notifications.
type NopListener struct{}

func (NopListener) BlockAdded(Block)   {}
func (NopListener) BlockRemoved(Block) {}

// MultiListener fans notifications out to every listener in order.
type MultiListener []Listener

func (m MultiListener) BlockAdded(b Block) {
	for _, l := range m {
		l.BlockAdded(b)
	}
}

func (m MultiListener) BlockRemoved(b Block) {
	for _, l := range m {
		l.BlockRemoved(b)
	}
}
