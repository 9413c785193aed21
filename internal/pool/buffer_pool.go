package pool

import "sync"

// RuneBufferPool implements a pool of rune slices for efficient reuse
// across rune-level metric computations.
type RuneBufferPool struct {
	pool sync.Pool
	size int
}

// NewRuneBufferPool creates a new pool of rune slices with the specified
// initial capacity.
func NewRuneBufferPool(size int) *RuneBufferPool {
	return &RuneBufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]rune, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a rune buffer from the pool.
func (rbp *RuneBufferPool) Get() *[]rune {
	return rbp.pool.Get().(*[]rune)
}

// Put returns a rune buffer to the pool.
func (rbp *RuneBufferPool) Put(buffer *[]rune) {
	*buffer = (*buffer)[:0]
	rbp.pool.Put(buffer)
}

// IntBufferPool implements a pool of int slices, used for the dynamic
// programming rows of edit-distance computations.
type IntBufferPool struct {
	pool sync.Pool
	size int
}

// NewIntBufferPool creates a new pool of int slices with the specified
// initial capacity.
func NewIntBufferPool(size int) *IntBufferPool {
	return &IntBufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]int, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves an int buffer from the pool.
func (ibp *IntBufferPool) Get() *[]int {
	return ibp.pool.Get().(*[]int)
}

// Put returns an int buffer to the pool.
func (ibp *IntBufferPool) Put(buffer *[]int) {
	*buffer = (*buffer)[:0]
	ibp.pool.Put(buffer)
}
