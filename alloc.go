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

// Package ds provides low-level memory and lookup primitives for programs
// that want to avoid per-object heap allocation and general-purpose hash map
// overhead.
//
// The two core pieces are:
//
//   - Arena, a growable region allocator that bump-allocates raw memory from
//     large chained blocks and can be rewound to a previous state in O(1).
//   - Map and Set, open-addressing associative containers keyed by small
//     integer-like values, which resolve collisions by linear probing and
//     delete by shifting subsequent colliding entries backward rather than by
//     leaving tombstones.
//
// On top of these sit a handful of sequential-buffer collections: a growable
// Array, a formatted-string Builder, and string/UTF-8 helpers.
//
// All raw memory flows through the Allocator capability, so a host program
// can substitute a custom heap, a fixed arena, or an instrumented tracking
// allocator without changing any collection's logic. None of the types in
// this package are goroutine-safe; every instance is single-owner.
package ds

import (
	"fmt"
	"sync"
	"unsafe"
)

// Allocator is the capability through which collections obtain raw memory.
// It is a single hook with realloc-like semantics:
//
//   - newSize == 0 frees old (oldSize is ignored) and returns nil.
//   - old != nil with oldSize > 0 resizes the region; the allocation may
//     move, and the first min(oldSize, newSize) bytes are preserved.
//   - otherwise a fresh allocation of newSize bytes is returned.
//
// Returned memory is aligned to align, which must be a power of two. The
// returned memory is uninitialized. Allocation failure is not a recoverable
// condition at this layer: implementations panic rather than return nil for
// newSize > 0.
//
// Memory handed out by an Allocator is untyped. The Go runtime does not scan
// it for pointers, so values stored in it must not contain Go pointers.
type Allocator interface {
	Realloc(old unsafe.Pointer, oldSize, newSize, align uintptr) unsafe.Pointer
}

func memAlloc(a Allocator, size, align uintptr) unsafe.Pointer {
	return a.Realloc(nil, 0, size, align)
}

func memFree(a Allocator, p unsafe.Pointer, size uintptr) {
	a.Realloc(p, size, 0, 1)
}

// heapAllocator serves raw memory from the Go heap. Each live allocation is
// retained in a registry so that the garbage collector cannot reclaim the
// backing buffer while a raw pointer into it is outstanding. The registry is
// shared process-wide, so it is the one place in this package that locks.
type heapAllocator struct {
	mu   sync.Mutex
	live map[unsafe.Pointer][]byte
}

var processHeap = &heapAllocator{live: make(map[unsafe.Pointer][]byte)}

// Heap returns the process-wide default allocator. It is the backing source
// used by every collection whose allocator is left unconfigured.
func Heap() Allocator { return processHeap }

func (h *heapAllocator) Realloc(old unsafe.Pointer, oldSize, newSize, align uintptr) unsafe.Pointer {
	if newSize == 0 {
		if old != nil {
			h.mu.Lock()
			delete(h.live, old)
			h.mu.Unlock()
		}
		return nil
	}
	if align == 0 || align&(align-1) != 0 {
		panic(fmt.Sprintf("ds: alignment %d is not a power of two", align))
	}

	buf := make([]byte, newSize+align-1)
	p := unsafe.Pointer(unsafe.SliceData(buf))
	if rem := uintptr(p) & (align - 1); rem != 0 {
		p = unsafe.Add(p, align-rem)
	}
	if old != nil && oldSize > 0 {
		n := oldSize
		if newSize < n {
			n = newSize
		}
		copy(unsafe.Slice((*byte)(p), n), unsafe.Slice((*byte)(old), n))
	}

	h.mu.Lock()
	h.live[p] = buf
	if old != nil {
		delete(h.live, old)
	}
	h.mu.Unlock()
	return p
}
