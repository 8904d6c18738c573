package grid

import "fmt"

// DataMap stores one value of type T for every cell of a fixed shape
type DataMap[T any] struct {
	shape Shape
	data  []T
}

// NewDataMap creates a map with every cell set to init
func NewDataMap[T any](shape Shape, init T) *DataMap[T] {
	data := make([]T, shape.Size())
	for i := range data {
		data[i] = init
	}
	return &DataMap[T]{shape: shape, data: data}
}

// DataMapFrom wraps row-major data. The slice is copied.
func DataMapFrom[T any](shape Shape, data []T) (*DataMap[T], error) {
	if len(data) != shape.Size() {
		return nil, fmt.Errorf("%w: %d values for %v grid", ErrShapeMismatch, len(data), shape)
	}
	owned := make([]T, len(data))
	copy(owned, data)
	return &DataMap[T]{shape: shape, data: owned}, nil
}

// Shape returns the grid shape of the map
func (m *DataMap[T]) Shape() Shape {
	return m.shape
}

// At returns the value stored for a cell
func (m *DataMap[T]) At(c Coord) T {
	return m.data[m.shape.Index(c)]
}

// Set stores a value for a cell
func (m *DataMap[T]) Set(c Coord, v T) {
	m.data[m.shape.Index(c)] = v
}

// Values returns a row-major copy of the stored values
func (m *DataMap[T]) Values() []T {
	out := make([]T, len(m.data))
	copy(out, m.data)
	return out
}

// Clone returns an independent copy of the map
func (m *DataMap[T]) Clone() *DataMap[T] {
	return &DataMap[T]{shape: m.shape, data: m.Values()}
}
