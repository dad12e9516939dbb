package world

import "fmt"

// Layers is flat, bounds-checked storage for width x height x depth cells.
// Cells are laid out layer-major: x + y*width + layer*width*height.
type Layers[T any] struct {
	width  int
	height int
	depth  int
	cells  []T
}

// NewLayers allocates storage for the given dimensions.
func NewLayers[T any](width, height, depth int) (*Layers[T], error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, width, height, depth)
	}
	return &Layers[T]{
		width:  width,
		height: height,
		depth:  depth,
		cells:  make([]T, width*height*depth),
	}, nil
}

// Width returns the number of columns.
func (l *Layers[T]) Width() int { return l.width }

// Height returns the number of rows.
func (l *Layers[T]) Height() int { return l.height }

// Depth returns the number of layers.
func (l *Layers[T]) Depth() int { return l.depth }

// Contains reports whether (x, y, layer) addresses a stored cell.
func (l *Layers[T]) Contains(x, y, layer int) bool {
	return x >= 0 && y >= 0 && layer >= 0 &&
		x < l.width && y < l.height && layer < l.depth
}

// At returns the value at (x, y, layer).
func (l *Layers[T]) At(x, y, layer int) (T, error) {
	if !l.Contains(x, y, layer) {
		var zero T
		return zero, l.boundsError(x, y, layer)
	}
	return l.cells[l.index(x, y, layer)], nil
}

// Ref returns a pointer to the cell at (x, y, layer) for in-place updates.
func (l *Layers[T]) Ref(x, y, layer int) (*T, error) {
	if !l.Contains(x, y, layer) {
		return nil, l.boundsError(x, y, layer)
	}
	return &l.cells[l.index(x, y, layer)], nil
}

// Set stores v at (x, y, layer).
func (l *Layers[T]) Set(x, y, layer int, v T) error {
	if !l.Contains(x, y, layer) {
		return l.boundsError(x, y, layer)
	}
	l.cells[l.index(x, y, layer)] = v
	return nil
}

// Each calls fn for every cell in storage order.
func (l *Layers[T]) Each(fn func(x, y, layer int, v *T)) {
	plane := l.width * l.height
	for i := range l.cells {
		layer := i / plane
		rem := i % plane
		fn(rem%l.width, rem/l.width, layer, &l.cells[i])
	}
}

// index assumes the coordinates were already checked.
func (l *Layers[T]) index(x, y, layer int) int {
	return x + y*l.width + layer*l.width*l.height
}

func (l *Layers[T]) boundsError(x, y, layer int) error {
	return fmt.Errorf("%w: (%d,%d) layer %d outside %dx%dx%d",
		ErrOutOfBounds, x, y, layer, l.width, l.height, l.depth)
}
