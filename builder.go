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

// Builder accumulates a string in memory drawn from an Allocator. It is the
// byte-buffer counterpart of Array and shares its growth behavior.
//
// A Builder is NOT goroutine-safe.
type Builder struct {
	buf Array[byte]
}

// NewBuilder constructs a builder drawing memory from a. If a is nil the
// process heap is used.
func NewBuilder(a Allocator, initialCap int) *Builder {
	return &Builder{buf: *NewArray[byte](a, initialCap)}
}

// Reserve grows the capacity to at least n bytes.
func (b *Builder) Reserve(n int) {
	b.buf.Reserve(n)
}

// WriteString appends s.
func (b *Builder) WriteString(s string) {
	n := b.buf.Len()
	b.buf.Resize(n+len(s), 0)
	copy(b.buf.Elems()[n:], s)
}

// WriteBytes appends p.
func (b *Builder) WriteBytes(p []byte) {
	b.buf.PushSlice(p)
}

// WriteByte appends a single byte. The returned error is always nil.
func (b *Builder) WriteByte(c byte) error {
	b.buf.Push(c)
	return nil
}

// Writef appends the fmt-formatted arguments.
func (b *Builder) Writef(format string, args ...any) {
	b.buf.PushSlice(fmt.Appendf(nil, format, args...))
}

// TruncateBy removes the last n bytes.
func (b *Builder) TruncateBy(n int) {
	if n < 0 || n > b.buf.Len() {
		panic(fmt.Sprintf("ds: cannot truncate %d bytes from a %d-byte builder", n, b.buf.Len()))
	}
	b.buf.Resize(b.buf.Len()-n, 0)
}

// Len returns the number of accumulated bytes.
func (b *Builder) Len() int { return b.buf.Len() }

// Bytes returns the accumulated bytes as a view into the builder's memory.
// The view is invalidated by any subsequent write that grows the builder.
func (b *Builder) Bytes() []byte { return b.buf.Elems() }

// String returns the accumulated bytes as a string view into the builder's
// memory, under the same validity contract as Bytes.
func (b *Builder) String() string {
	s := b.buf.Elems()
	if len(s) == 0 {
		return ""
	}
	return unsafe.String(&s[0], len(s))
}

// Clear resets the builder to empty without releasing memory.
func (b *Builder) Clear() { b.buf.Clear() }

// Release returns the builder's memory to its allocator.
func (b *Builder) Release() { b.buf.Release() }
