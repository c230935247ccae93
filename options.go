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

import "unsafe"

// ArenaOption configures an Arena while it is being created.
type ArenaOption interface {
	apply(a *Arena)
}

type backingOption struct {
	backing Allocator
}

func (op backingOption) apply(a *Arena) { a.backing = op.backing }

// WithBacking is an option to specify the backing Allocator an arena draws
// its blocks from. The default is Heap().
func WithBacking(backing Allocator) ArenaOption {
	return backingOption{backing}
}

type blockSizeOption struct {
	size uintptr
}

func (op blockSizeOption) apply(a *Arena) { a.blockSize = op.size }

// WithBlockSize is an option to specify the default block size of an arena.
// Individual requests larger than one block get an up-sized block of their
// own.
func WithBlockSize(size int) ArenaOption {
	return blockSizeOption{uintptr(size)}
}

type blockAlignOption struct {
	align uintptr
}

func (op blockAlignOption) apply(a *Arena) { a.blockAlign = op.align }

// WithBlockAlign is an option to specify the alignment of an arena's blocks,
// which is also the maximum alignment that can be requested from Alloc. Must
// be a power of two. The default is 16.
func WithBlockAlign(align int) ArenaOption {
	return blockAlignOption{uintptr(align)}
}

type initialBlockOption struct {
	block unsafe.Pointer
	size  uintptr
}

func (op initialBlockOption) apply(a *Arena) {
	a.initBlock = op.block
	a.initSize = op.size
}

// WithInitialBlock is an option to supply a caller-owned buffer as the
// arena's first block. The arena never frees it. The buffer must satisfy the
// arena's block alignment and be large enough for the internal block header.
func WithInitialBlock(block unsafe.Pointer, size int) ArenaOption {
	return initialBlockOption{block, uintptr(size)}
}

// MapOption configures a Map (or the Map inside a Set) while it is being
// created.
type MapOption[K Key, V any] interface {
	apply(m *Map[K, V])
}

type probeOption[K Key, V any] struct {
	probe func(key K) uint32
}

func (op probeOption[K, V]) apply(m *Map[K, V]) { m.probe = op.probe }

// WithProbe is an option to specify the reduction from a key to its 32-bit
// probe index, replacing the default low-32-bits conversion.
func WithProbe[K Key, V any](probe func(key K) uint32) MapOption[K, V] {
	return probeOption[K, V]{probe}
}

type slotAllocatorOption[K Key, V any] struct {
	allocator SlotAllocator[K, V]
}

func (op slotAllocatorOption[K, V]) apply(m *Map[K, V]) { m.allocator = op.allocator }

// WithSlotAllocator is an option to specify the SlotAllocator backing a
// Map's slot array.
func WithSlotAllocator[K Key, V any](allocator SlotAllocator[K, V]) MapOption[K, V] {
	return slotAllocatorOption[K, V]{allocator}
}
