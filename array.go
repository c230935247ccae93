// Copyright 2026 The ds Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ds

import (
	"fmt"
	"unsafe"
)

// Array is a growable array backed by raw memory from an Allocator. It needs
// nothing from its allocator beyond the realloc hook, so it works equally
// over the heap, an Arena, or an instrumented source. Capacity doubles from
// 8 on growth; growth moves the elements and invalidates views returned by
// Elems.
//
// T must not contain Go pointers. An Array is NOT goroutine-safe.
type Array[T any] struct {
	data      unsafe.Pointer
	len, cap  int
	allocator Allocator
}

// NewArray constructs an array drawing memory from a. If a is nil the
// process heap is used.
func NewArray[T any](a Allocator, initialCap int) *Array[T] {
	if a == nil {
		a = Heap()
	}
	arr := &Array[T]{allocator: a}
	if initialCap > 0 {
		arr.Reserve(initialCap)
	}
	return arr
}

func (a *Array[T]) at(i int) *T {
	var zero T
	return (*T)(unsafe.Add(a.data, uintptr(i)*unsafe.Sizeof(zero)))
}

// Reserve grows the capacity to at least n elements.
func (a *Array[T]) Reserve(n int) {
	if n <= a.cap {
		return
	}
	newCap := a.cap
	if newCap == 0 {
		newCap = 8
	}
	for newCap < n {
		newCap *= 2
	}
	var zero T
	elemSize := unsafe.Sizeof(zero)
	a.data = a.allocator.Realloc(a.data, uintptr(a.cap)*elemSize, uintptr(newCap)*elemSize, unsafe.Alignof(zero))
	a.cap = newCap
}

// Resize sets the length to n, filling any newly exposed elements with fill.
func (a *Array[T]) Resize(n int, fill T) {
	if n > a.len {
		a.Reserve(n)
		for i := a.len; i < n; i++ {
			*a.at(i) = fill
		}
	}
	a.len = n
}

// Push appends v.
func (a *Array[T]) Push(v T) {
	a.Reserve(a.len + 1)
	*a.at(a.len) = v
	a.len++
}

// PushSlice appends every element of vs.
func (a *Array[T]) PushSlice(vs []T) {
	a.Reserve(a.len + len(vs))
	copy(unsafe.Slice((*T)(a.data), a.len+len(vs))[a.len:], vs)
	a.len += len(vs)
}

// Insert inserts v at index at, shifting later elements forward. at may
// equal Len(), in which case Insert behaves like Push.
func (a *Array[T]) Insert(at int, v T) {
	if at < 0 || at > a.len {
		panic(fmt.Sprintf("ds: insert index %d out of range [0, %d]", at, a.len))
	}
	a.Reserve(a.len + 1)
	s := unsafe.Slice((*T)(a.data), a.len+1)
	copy(s[at+1:], s[at:a.len])
	s[at] = v
	a.len++
}

// Remove deletes n elements starting at index at, shifting later elements
// backward.
func (a *Array[T]) Remove(at, n int) {
	if at < 0 || n < 0 || at+n > a.len {
		panic(fmt.Sprintf("ds: remove range [%d, %d) out of range [0, %d)", at, at+n, a.len))
	}
	s := unsafe.Slice((*T)(a.data), a.len)
	copy(s[at:], s[at+n:])
	a.len -= n
}

// Pop removes and returns the last element.
func (a *Array[T]) Pop() T {
	if a.len == 0 {
		panic("ds: pop from an empty array")
	}
	a.len--
	return *a.at(a.len)
}

// Back returns a pointer to the last element.
func (a *Array[T]) Back() *T {
	if a.len == 0 {
		panic("ds: back of an empty array")
	}
	return a.at(a.len - 1)
}

// At returns a pointer to the element at index i.
func (a *Array[T]) At(i int) *T {
	if i < 0 || i >= a.len {
		panic(fmt.Sprintf("ds: index %d out of range [0, %d)", i, a.len))
	}
	return a.at(i)
}

// Reverse reverses the order of the elements in place.
func (a *Array[T]) Reverse() {
	s := a.Elems()
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Elems returns the elements as a mutable slice view into the array's
// memory. The view is invalidated by any call that can grow the array.
func (a *Array[T]) Elems() []T {
	if a.data == nil {
		return nil
	}
	return unsafe.Slice((*T)(a.data), a.len)
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return a.len }

// Cap returns the current capacity in elements.
func (a *Array[T]) Cap() int { return a.cap }

// Clear sets the length to zero without releasing memory.
func (a *Array[T]) Clear() { a.len = 0 }

// Release returns the array's memory to its allocator.
func (a *Array[T]) Release() {
	if a.data != nil {
		var zero T
		memFree(a.allocator, a.data, uintptr(a.cap)*unsafe.Sizeof(zero))
		a.data = nil
	}
	a.len, a.cap = 0, 0
}
