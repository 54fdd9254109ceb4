package components

// Body holds the drawn size of an organism: species size scaled by its
// size gene. Simulation rules never read it.
type Body struct {
	Radius float64
}

// NewBody derives the body from a species base size and a size multiplier.
func NewBody(baseSize, sizeGene float64) Body {
	return Body{Radius: baseSize * sizeGene}
}
