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

//go:build unix

package ds

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MmapAllocator sources memory from anonymous private mappings, keeping it
// entirely outside the Go heap. Each allocation is one mapping, so alignment
// up to the page size comes for free and freed memory is returned to the
// kernel immediately. Best used as the backing source of an Arena, which
// batches requests into large blocks.
//
// An MmapAllocator is NOT goroutine-safe.
type MmapAllocator struct {
	live map[unsafe.Pointer][]byte
}

// NewMmapAllocator constructs an mmap-backed Allocator.
func NewMmapAllocator() *MmapAllocator {
	return &MmapAllocator{live: make(map[unsafe.Pointer][]byte)}
}

func (m *MmapAllocator) Realloc(old unsafe.Pointer, oldSize, newSize, align uintptr) unsafe.Pointer {
	if newSize == 0 {
		m.unmap(old)
		return nil
	}
	if pageSize := uintptr(unix.Getpagesize()); align > pageSize {
		panic(fmt.Sprintf("ds: alignment %d exceeds the page size %d", align, pageSize))
	}

	buf, err := unix.Mmap(-1, 0, int(newSize),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		panic(fmt.Sprintf("ds: mmap of %d bytes failed: %v", newSize, err))
	}
	p := unsafe.Pointer(unsafe.SliceData(buf))
	m.live[p] = buf

	if old != nil && oldSize > 0 {
		n := oldSize
		if newSize < n {
			n = newSize
		}
		copy(buf[:n], unsafe.Slice((*byte)(old), n))
		m.unmap(old)
	}
	return p
}

func (m *MmapAllocator) unmap(p unsafe.Pointer) {
	if p == nil {
		return
	}
	if buf, ok := m.live[p]; ok {
		delete(m.live, p)
		if err := unix.Munmap(buf); err != nil {
			panic(fmt.Sprintf("ds: munmap failed: %v", err))
		}
	}
}
