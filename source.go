package fusez

import (
	"fmt"
	"reflect"
)

// FromSlice creates a Source over an existing slice. It reports the exact
// length as its hint and pushes every element once, in index order.
//
// The slice is not copied. Modifying it between runs changes what later
// runs see; modifying it during a run is undefined.
func FromSlice[T any](items []T) Source[T] {
	return &sliceSource[T]{items: items}
}

// IndexedContainer is the subset of an ordered container FromContainer
// needs. The lists of github.com/emirpasic/gods satisfy it.
type IndexedContainer interface {
	Size() int
	Each(func(index int, value interface{}))
}

// FromContainer creates a Source over an ordered, untyped container such as
// a gods arraylist. It reports Size as its hint and pushes the elements in
// the container's own Each order.
//
// Every value must hold a T; a value of another type panics with a
// descriptive message when it is reached. A nil value is pushed as the zero
// T when T is nilable (interface, pointer, map, slice, chan or func).
//
// Example:
//
//	list := arraylist.New(3, 1, 2)
//	doubled := fusez.Run(fusez.FromContainer[int](list), fusez.ToSliceFunc(double))
func FromContainer[T any](c IndexedContainer) Source[T] {
	return &containerSource[T]{c: c}
}

// WithCapacity overrides the hint reported by src. Use it to give
// preallocating drains a size for sources that cannot know their own, such
// as enumerators.
func WithCapacity[T any](src Source[T], capacity int) Source[T] {
	return &sizedSource[T]{src: src, capacity: capacity}
}

type sliceSource[T any] struct {
	items []T
}

func (s *sliceSource[T]) Info() SourceInfo[T] {
	return SourceInfo[T]{Capacity: len(s.items)}
}

func (s *sliceSource[T]) Emit(r Receiver[T]) {
	r.Connect(s.Info())
	for _, v := range s.items {
		r.Push(v)
	}
}

type containerSource[T any] struct {
	c IndexedContainer
}

func (s *containerSource[T]) Info() SourceInfo[T] {
	return SourceInfo[T]{Capacity: s.c.Size()}
}

func (s *containerSource[T]) Emit(r Receiver[T]) {
	r.Connect(s.Info())
	nilable := isNilable[T]()
	s.c.Each(func(index int, value interface{}) {
		if value == nil && nilable {
			var zero T
			r.Push(zero)
			return
		}
		v, ok := value.(T)
		if !ok {
			panic(fmt.Sprintf("fusez: container element %d is %T, not %T", index, value, v))
		}
		r.Push(v)
	})
}

func isNilable[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

type sizedSource[T any] struct {
	src      Source[T]
	capacity int
}

func (s *sizedSource[T]) Info() SourceInfo[T] {
	return SourceInfo[T]{Capacity: s.capacity}
}

func (s *sizedSource[T]) Emit(r Receiver[T]) {
	s.src.Emit(&sizedReceiver[T]{down: r, capacity: s.capacity})
}

type sizedReceiver[T any] struct {
	down     Receiver[T]
	capacity int
}

func (r *sizedReceiver[T]) Connect(SourceInfo[T]) {
	r.down.Connect(SourceInfo[T]{Capacity: r.capacity})
}

func (r *sizedReceiver[T]) Push(v T) {
	r.down.Push(v)
}
