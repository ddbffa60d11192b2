package format

import "sync"

// Lazy is a value computed on first use. Get is safe for concurrent use;
// the function runs at most once and its error is remembered.
type Lazy[T any] struct {
	once  sync.Once
	fn    func() (T, error)
	value T
	err   error
	done  bool
}

// NewLazy defers fn until the first Get.
func NewLazy[T any](fn func() (T, error)) *Lazy[T] {
	return &Lazy[T]{fn: fn}
}

// Ready returns a Lazy holding value.
func Ready[T any](value T) *Lazy[T] {
	return NewLazy(func() (T, error) { return value, nil })
}

// Get computes the value if needed and returns it.
func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		l.value, l.err = l.fn()
		l.done = true
	})

	return l.value, l.err
}

// Loaded reports whether the value was computed. It must not race with Get.
func (l *Lazy[T]) Loaded() bool {
	return l.done
}
