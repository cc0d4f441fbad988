// Package objpool is a typed wrapper over sync.Pool for objects that can
// be reset before reuse.
package objpool

import "sync"

type Resettable interface {
	Reset()
}

// Pool hands out values of T and resets them on Put.
type Pool[T Resettable] struct {
	pool sync.Pool
}

func New[T Resettable](newFunc func() T) *Pool[T] {
	return &Pool[T]{pool: sync.Pool{
		New: func() any { return newFunc() },
	}}
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put resets obj and returns it to the pool.
func (p *Pool[T]) Put(obj T) {
	obj.Reset()
	p.pool.Put(obj)
}
