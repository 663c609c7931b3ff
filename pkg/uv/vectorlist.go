package uv

import "iter"

// vectorListChunk is the capacity of one storage segment.
const vectorListChunk = 64

// VectorList is an append-only store backed by fixed-capacity segments.
// Appending never moves existing elements, so pointers returned by Append
// stay valid for the lifetime of the list. The topology graph relies on
// this: vertices, edges and primitives cross-reference each other by
// pointer while their stores keep growing.
type VectorList[T any] struct {
	chunks [][]T
	length int
}

// Len returns the number of stored elements.
func (l *VectorList[T]) Len() int {
	return l.length
}

// Append stores value and returns a stable pointer to it.
func (l *VectorList[T]) Append(value T) *T {
	if len(l.chunks) == 0 || len(l.chunks[len(l.chunks)-1]) == vectorListChunk {
		l.chunks = append(l.chunks, make([]T, 0, vectorListChunk))
	}
	chunk := l.chunks[len(l.chunks)-1]
	chunk = append(chunk, value)
	l.chunks[len(l.chunks)-1] = chunk
	l.length++
	return &chunk[len(chunk)-1]
}

// Last returns a pointer to the most recently appended element, or nil when
// the list is empty.
func (l *VectorList[T]) Last() *T {
	if l.length == 0 {
		return nil
	}
	chunk := l.chunks[len(l.chunks)-1]
	return &chunk[len(chunk)-1]
}

// Items iterates over stable pointers to all elements in append order.
func (l *VectorList[T]) Items() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, chunk := range l.chunks {
			for i := range chunk {
				if !yield(&chunk[i]) {
					return
				}
			}
		}
	}
}
