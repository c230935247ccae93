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

const (
	defaultBlockSize  = 4096
	defaultBlockAlign = 16
)

// blockHeader sits at the start of every arena block. Blocks form a singly
// linked list owned by the arena.
type blockHeader struct {
	size  uintptr // total block size, header included
	next  *blockHeader
	owned bool // allocated from the backing allocator, freed by the arena
}

var headerSize = unsafe.Sizeof(blockHeader{})

// ArenaMark is an O(1) snapshot of an arena's bump cursor, usable with
// Arena.SetMark to rewind the arena to the state it had when the mark was
// taken. The zero ArenaMark denotes the state before any block exists.
type ArenaMark struct {
	block *blockHeader
	ptr   unsafe.Pointer
}

// Arena is a growable region allocator. It owns a linked list of memory
// blocks obtained from a backing Allocator and bump-allocates forward within
// the current block. Rewinding to a previously taken mark is O(1) and never
// releases blocks: memory allocated after the mark stays linked and is
// reused on the next growth event, so repeated mark/rewind/allocate cycles
// of similar shape amortize to zero backing-allocator calls.
//
// An Arena itself implements Allocator, which lets every other collection in
// this package be arena-backed.
//
// An Arena is NOT goroutine-safe.
type Arena struct {
	backing    Allocator
	first      *blockHeader // may be nil
	mark       ArenaMark
	blockSize  uintptr
	blockAlign uintptr

	// initial block supplied via WithInitialBlock, consumed by NewArena.
	initBlock unsafe.Pointer
	initSize  uintptr
}

// NewArena constructs an arena. With no options it draws 4096-byte,
// 16-aligned blocks from the process heap; see WithBacking, WithBlockSize,
// WithBlockAlign, and WithInitialBlock.
//
// A caller-supplied initial block becomes the first block of the list but is
// never freed by the arena; it must already satisfy the block alignment.
// Without one, the first block is created lazily on the first allocation.
func NewArena(options ...ArenaOption) *Arena {
	a := &Arena{
		backing:    Heap(),
		blockSize:  defaultBlockSize,
		blockAlign: defaultBlockAlign,
	}
	for _, op := range options {
		op.apply(a)
	}
	if a.blockAlign == 0 || a.blockAlign&(a.blockAlign-1) != 0 {
		panic(fmt.Sprintf("ds: block alignment %d is not a power of two", a.blockAlign))
	}

	if a.initBlock != nil {
		if uintptr(a.initBlock)&(a.blockAlign-1) != 0 {
			panic(fmt.Sprintf("ds: initial block %p is not aligned to %d", a.initBlock, a.blockAlign))
		}
		if a.initSize < headerSize {
			panic(fmt.Sprintf("ds: initial block of %d bytes cannot hold the %d-byte block header",
				a.initSize, headerSize))
		}
		h := (*blockHeader)(a.initBlock)
		h.size = a.initSize
		h.next = nil
		h.owned = false
		a.first = h
		a.mark = ArenaMark{block: h, ptr: blockPayload(h)}
		a.initBlock, a.initSize = nil, 0
	}
	return a
}

// blockPayload returns the first usable byte of a block, just past the
// header. Returns nil for a nil block.
func blockPayload(h *blockHeader) unsafe.Pointer {
	if h == nil {
		return nil
	}
	return unsafe.Add(unsafe.Pointer(h), headerSize)
}

// alignPtr rounds p up to the next multiple of align (a power of two).
func alignPtr(p unsafe.Pointer, align uintptr) unsafe.Pointer {
	return unsafe.Add(p, -uintptr(p)&(align-1))
}

// Alloc returns size bytes of uninitialized memory aligned to align. The
// alignment must be a power of two no larger than the arena's block
// alignment; violating either is a contract error and panics. Callers that
// need zeroed or copied memory layer that on top (see New, Make, Clone).
//
// The returned region is valid until the arena is rewound past it, Reset, or
// Released. Growth never moves previously returned regions.
func (a *Arena) Alloc(size, align uintptr) unsafe.Pointer {
	if align == 0 || align&(align-1) != 0 {
		panic(fmt.Sprintf("ds: alignment %d is not a power of two", align))
	}
	if align > a.blockAlign {
		panic(fmt.Sprintf("ds: alignment %d exceeds the arena block alignment %d", align, a.blockAlign))
	}

	curr := a.mark.block // may be nil
	result := alignPtr(a.mark.ptr, align)

	var remaining uintptr
	if curr != nil {
		end := uintptr(unsafe.Pointer(curr)) + curr.size
		if off := uintptr(result); off <= end {
			remaining = end - off
		}
	}

	if size > remaining {
		resultOffset := (headerSize + align - 1) &^ (align - 1)
		newBlockSize := resultOffset + size
		if a.blockSize > newBlockSize {
			newBlockSize = a.blockSize
		}

		var newBlock, nextBlock *blockHeader

		// A block past the current one means the arena was rewound; reuse
		// it if the request fits, without touching the backing source.
		if curr != nil && curr.next != nil {
			nextBlock = curr.next
			if nextBlock.size >= resultOffset && size <= nextBlock.size-resultOffset {
				newBlock = nextBlock
			}
		}

		if newBlock == nil {
			raw := memAlloc(a.backing, newBlockSize, a.blockAlign)
			if raw == nil {
				panic(fmt.Sprintf("ds: backing allocator failed to supply %d bytes", newBlockSize))
			}
			if uintptr(raw)&(a.blockAlign-1) != 0 {
				panic(fmt.Sprintf("ds: backing allocator returned %p, not aligned to %d", raw, a.blockAlign))
			}
			newBlock = (*blockHeader)(raw)
			newBlock.size = newBlockSize
			newBlock.next = nextBlock
			newBlock.owned = true
			if curr != nil {
				curr.next = newBlock
			} else {
				a.first = newBlock
			}
		}

		a.mark.block = newBlock
		result = unsafe.Add(unsafe.Pointer(newBlock), resultOffset)
	}

	a.mark.ptr = unsafe.Add(result, size)
	return result
}

// Mark returns an opaque snapshot of the arena's bump cursor.
func (a *Arena) Mark() ArenaMark {
	return a.mark
}

// SetMark rewinds the arena to a previously taken mark. Memory allocated
// since the mark becomes reusable but its blocks stay linked; nothing is
// returned to the backing source. The zero ArenaMark rewinds to the start of
// the very first block regardless of what was allocated since.
func (a *Arena) SetMark(mark ArenaMark) {
	if mark.block == nil {
		a.mark = ArenaMark{block: a.first, ptr: blockPayload(a.first)}
		return
	}
	a.mark = mark
}

// Reset rewinds the arena to its initial state and, unlike SetMark, returns
// every block after the first to the backing source. If the first block was
// up-sized beyond the configured block size to satisfy an oversized request,
// it is released as well, so an anomalously large request does not
// permanently inflate the baseline footprint.
func (a *Arena) Reset() {
	if a.first != nil {
		for b := a.first.next; b != nil; {
			next := b.next
			memFree(a.backing, unsafe.Pointer(b), b.size)
			b = next
		}
		a.first.next = nil

		if a.first.size > a.blockSize {
			if a.first.owned {
				memFree(a.backing, unsafe.Pointer(a.first), a.first.size)
			}
			a.first = nil
		}
	}
	a.mark = ArenaMark{block: a.first, ptr: blockPayload(a.first)}
}

// Release frees every block the arena obtained from the backing source. A
// caller-supplied initial block is left untouched. The arena must not be
// used afterwards.
func (a *Arena) Release() {
	for b := a.first; b != nil; {
		next := b.next
		if b.owned {
			memFree(a.backing, unsafe.Pointer(b), b.size)
		}
		b = next
	}
	a.first = nil
	a.mark = ArenaMark{}
}

// Realloc implements Allocator. Resizing always pushes a fresh region and
// copies; the old region is not reclaimed until the arena is rewound past
// it. Freeing is a no-op.
func (a *Arena) Realloc(old unsafe.Pointer, oldSize, newSize, align uintptr) unsafe.Pointer {
	if newSize == 0 {
		return nil
	}
	p := a.Alloc(newSize, align)
	if old != nil && oldSize > 0 {
		copy(unsafe.Slice((*byte)(p), newSize), unsafe.Slice((*byte)(old), oldSize))
	}
	return p
}

// New allocates a zeroed T from the arena. T must not contain Go pointers.
func New[T any](a *Arena) *T {
	var zero T
	p := (*T)(a.Alloc(unsafe.Sizeof(zero), unsafe.Alignof(zero)))
	*p = zero
	return p
}

// Make allocates a zeroed slice of n elements of T whose backing array lives
// in arena memory. T must not contain Go pointers.
func Make[T any](a *Arena, n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	p := a.Alloc(uintptr(n)*unsafe.Sizeof(zero), unsafe.Alignof(zero))
	s := unsafe.Slice((*T)(p), n)
	for i := range s {
		s[i] = zero
	}
	return s
}

// Clone copies src into arena memory and returns the copy. T must not
// contain Go pointers.
func Clone[T any](a *Arena, src []T) []T {
	if len(src) == 0 {
		return nil
	}
	var zero T
	p := a.Alloc(uintptr(len(src))*unsafe.Sizeof(zero), unsafe.Alignof(zero))
	dst := unsafe.Slice((*T)(p), len(src))
	copy(dst, src)
	return dst
}

// CloneBytes copies b into arena memory.
func CloneBytes(a *Arena, b []byte) []byte {
	return Clone(a, b)
}

// CloneString copies s into arena memory and returns a string view over the
// copy. The view is valid for as long as the underlying allocation.
func CloneString(a *Arena, s string) string {
	if len(s) == 0 {
		return ""
	}
	p := a.Alloc(uintptr(len(s)), 1)
	dst := unsafe.Slice((*byte)(p), len(s))
	copy(dst, s)
	return unsafe.String(&dst[0], len(dst))
}
