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
	"math/bits"
)

// Key constrains map and set keys to integer-like types. A key's probe index
// is its low 32 bits masked by the slot count; key equality is ==. A custom
// probe reduction can be supplied with WithProbe.
type Key interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Slot holds a key and value. A slot is live when its occupied tag is set;
// no key value is reserved to mean "empty", so any key, including the zero
// value, may be inserted.
type Slot[K Key, V any] struct {
	key      K
	value    V
	occupied bool
}

// SlotAllocator specifies how a Map obtains and releases its slot array. The
// array is always allocated as one block and freed as one block. AllocSlots
// must return zeroed memory.
//
// The default allocator uses Go's builtin make and lets the GC reclaim the
// memory; Map.Close is then unnecessary. When slots come from manually
// managed memory (see ArenaSlots), K and V must not contain Go pointers.
type SlotAllocator[K Key, V any] interface {
	AllocSlots(n int) []Slot[K, V]
	FreeSlots(s []Slot[K, V])
}

type goSlotAllocator[K Key, V any] struct{}

func (goSlotAllocator[K, V]) AllocSlots(n int) []Slot[K, V] { return make([]Slot[K, V], n) }

func (goSlotAllocator[K, V]) FreeSlots([]Slot[K, V]) {}

type arenaSlotAllocator[K Key, V any] struct {
	arena *Arena
}

// ArenaSlots returns a SlotAllocator that carves slot arrays out of an
// arena. Freed arrays are not reclaimed until the arena is rewound or reset,
// which makes this a fit for short-lived tables. K and V must not contain Go
// pointers.
func ArenaSlots[K Key, V any](a *Arena) SlotAllocator[K, V] {
	return arenaSlotAllocator[K, V]{arena: a}
}

func (s arenaSlotAllocator[K, V]) AllocSlots(n int) []Slot[K, V] {
	return Make[Slot[K, V]](s.arena, n)
}

func (s arenaSlotAllocator[K, V]) FreeSlots([]Slot[K, V]) {}

// Map is an unordered map from integer-like keys to values, laid out as one
// flat power-of-two-sized slot array. Collisions are resolved by linear
// probing and deletions repair the probe chain by shifting subsequent
// colliding entries backward, so the table never holds tombstones and
// lookups never skip markers. The table grows by full rehash whenever an
// insertion would push the load factor above 0.70.
//
// A Map is NOT goroutine-safe.
type Map[K Key, V any] struct {
	slots     []Slot[K, V] // len is zero or a power of two
	used      int
	probe     func(K) uint32
	allocator SlotAllocator[K, V]
}

// NewMap constructs a Map. If initialSlots is positive the table is
// pre-sized to the next power of two; otherwise it starts with zero slots
// and is first sized on the first insertion.
func NewMap[K Key, V any](initialSlots int, options ...MapOption[K, V]) *Map[K, V] {
	m := &Map[K, V]{
		probe:     defaultProbe[K],
		allocator: goSlotAllocator[K, V]{},
	}
	for _, op := range options {
		op.apply(m)
	}
	if initialSlots > 0 {
		m.Resize(1 << bits.Len(uint(initialSlots-1)))
	}
	return m
}

func defaultProbe[K Key](key K) uint32 {
	return uint32(key)
}

// Add populates the slot for key without setting its value. It returns a
// pointer to the slot's value and whether the key was newly added.
//
// The returned pointer is a borrow into the slot array: any subsequent Add,
// Remove, or Resize may invalidate it. Callers that need the value after a
// mutating call must re-Get it.
func (m *Map[K, V]) Add(key K) (value *V, added bool) {
	value, added = m.add(key)
	m.checkInvariants()
	return value, added
}

// add is Add without the invariant check, for use from Remove and Resize
// whose intermediate states intentionally break the probe-chain invariant.
func (m *Map[K, V]) add(key K) (value *V, added bool) {
	// Grow before the insertion could push the table over 70% full.
	if 100*(m.used+1) > 70*len(m.slots) {
		if len(m.slots) == 0 {
			m.resize(8)
		} else {
			m.resize(2 * len(m.slots))
		}
	}

	mask := uint32(len(m.slots) - 1)
	i := m.probe(key) & mask
	for {
		s := &m.slots[i]
		if !s.occupied {
			s.key = key
			s.occupied = true
			m.used++
			return &s.value, true
		}
		if s.key == key {
			return &s.value, false
		}
		i = (i + 1) & mask
	}
}

// Set sets or adds the value at key.
func (m *Map[K, V]) Set(key K, value V) {
	p, _ := m.add(key)
	*p = value
	m.checkInvariants()
}

// GetPtr returns a pointer to the value for key, or nil if absent. The
// pointer obeys the same borrow contract as Add's.
func (m *Map[K, V]) GetPtr(key K) *V {
	if len(m.slots) == 0 {
		return nil
	}
	mask := uint32(len(m.slots) - 1)
	i := m.probe(key) & mask
	for {
		s := &m.slots[i]
		if !s.occupied {
			return nil
		}
		if s.key == key {
			return &s.value
		}
		i = (i + 1) & mask
	}
}

// Get retrieves the value for key, returning ok=false if the key is absent.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	if p := m.GetPtr(key); p != nil {
		return *p, true
	}
	return value, false
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	return m.GetPtr(key) != nil
}

// Remove deletes key from the map, reporting whether it was present.
//
// Removal never leaves a tombstone. After clearing the slot, every entry in
// the occupied run that follows it is re-inserted through its own probe
// sequence; with one more empty slot available each may land earlier,
// possibly back into the slot just freed. The walk stops at the first empty
// slot, which keeps every probe chain free of gaps.
func (m *Map[K, V]) Remove(key K) bool {
	if len(m.slots) == 0 {
		return false
	}
	mask := uint32(len(m.slots) - 1)
	i := m.probe(key) & mask
	for {
		s := &m.slots[i]
		if !s.occupied {
			return false
		}
		if s.key == key {
			break
		}
		i = (i + 1) & mask
	}

	m.slots[i] = Slot[K, V]{}
	m.used--

	// Backward-shift repair.
	for {
		i = (i + 1) & mask
		s := &m.slots[i]
		if !s.occupied {
			break
		}
		moved := *s
		*s = Slot[K, V]{}
		m.used--
		p, _ := m.add(moved.key)
		*p = moved.value
	}

	m.checkInvariants()
	return true
}

// Resize rehashes the map into a freshly allocated slot array of numSlots
// slots. numSlots must be a power of two and at least Len(); violating
// either panics. Every previously returned value pointer is invalidated.
func (m *Map[K, V]) Resize(numSlots int) {
	m.resize(numSlots)
	m.checkInvariants()
}

func (m *Map[K, V]) resize(numSlots int) {
	if numSlots&(numSlots-1) != 0 {
		panic(fmt.Sprintf("ds: slot count %d is not a power of two", numSlots))
	}
	if numSlots < m.used {
		panic(fmt.Sprintf("ds: slot count %d is below the map's %d live entries", numSlots, m.used))
	}

	old := m.slots
	m.slots = m.allocator.AllocSlots(numSlots)
	m.used = 0

	for i := range old {
		s := &old[i]
		if s.occupied {
			p, _ := m.add(s.key)
			*p = s.value
		}
	}
	if old != nil {
		m.allocator.FreeSlots(old)
	}
}

// Len returns the number of live entries.
func (m *Map[K, V]) Len() int { return m.used }

// Cap returns the current slot count.
func (m *Map[K, V]) Cap() int { return len(m.slots) }

// All calls yield for each entry in the map, in slot order, until yield
// returns false. The map must not be mutated during iteration.
func (m *Map[K, V]) All(yield func(key K, value V) bool) {
	for i := range m.slots {
		if m.slots[i].occupied {
			if !yield(m.slots[i].key, m.slots[i].value) {
				return
			}
		}
	}
}

// Clear removes all entries without releasing the slot array.
func (m *Map[K, V]) Clear() {
	for i := range m.slots {
		m.slots[i] = Slot[K, V]{}
	}
	m.used = 0
}

// Close releases the slot array back to the configured allocator. It is
// unnecessary for the default allocator. Close is idempotent; any other use
// of the map after Close is invalid.
func (m *Map[K, V]) Close() {
	if m.slots != nil {
		m.allocator.FreeSlots(m.slots)
		m.slots = nil
	}
	m.used = 0
}

// checkInvariants verifies the table's structural invariants when the
// invariants build tag is set.
func (m *Map[K, V]) checkInvariants() {
	if !invariants {
		return
	}
	if n := len(m.slots); n&(n-1) != 0 {
		panic(fmt.Sprintf("invariant failed: slot count %d is not a power of two", n))
	}
	if len(m.slots) > 0 && 100*m.used > 70*len(m.slots) {
		panic(fmt.Sprintf("invariant failed: %d live entries in %d slots exceeds the 0.70 load factor",
			m.used, len(m.slots)))
	}

	used := 0
	mask := uint32(len(m.slots) - 1)
	for i := range m.slots {
		s := &m.slots[i]
		if !s.occupied {
			continue
		}
		used++
		// No empty slot may sit between the key's ideal index and its
		// actual slot, or lookups would terminate early.
		for j := m.probe(s.key) & mask; j != uint32(i); j = (j + 1) & mask {
			if !m.slots[j].occupied {
				panic(fmt.Sprintf("invariant failed: empty slot %d breaks the probe chain of slot %d", j, i))
			}
		}
		if m.GetPtr(s.key) == nil {
			panic(fmt.Sprintf("invariant failed: slot(%d): key %v not found", i, s.key))
		}
	}
	if used != m.used {
		panic(fmt.Sprintf("invariant failed: found %d occupied slots, but used count is %d", used, m.used))
	}
}
