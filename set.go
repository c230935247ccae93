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

// Set is an unordered set of integer-like keys. It is the value-erased
// specialization of Map: the slot, probing, growth, and backward-shift
// deletion machinery are shared, with struct{} as the value type.
//
// A Set is NOT goroutine-safe.
type Set[K Key] struct {
	m Map[K, struct{}]
}

// NewSet constructs a Set. initialSlots behaves as in NewMap.
func NewSet[K Key](initialSlots int, options ...MapOption[K, struct{}]) *Set[K] {
	return &Set[K]{m: *NewMap[K, struct{}](initialSlots, options...)}
}

// Add inserts key into the set, reporting whether it was newly added.
func (s *Set[K]) Add(key K) bool {
	_, added := s.m.Add(key)
	return added
}

// Remove deletes key from the set, reporting whether it was present.
func (s *Set[K]) Remove(key K) bool {
	return s.m.Remove(key)
}

// Has reports whether key is in the set.
func (s *Set[K]) Has(key K) bool {
	return s.m.Has(key)
}

// Resize rehashes the set into numSlots slots, under the same contract as
// Map.Resize.
func (s *Set[K]) Resize(numSlots int) {
	s.m.Resize(numSlots)
}

// Len returns the number of keys in the set.
func (s *Set[K]) Len() int { return s.m.Len() }

// Cap returns the current slot count.
func (s *Set[K]) Cap() int { return s.m.Cap() }

// All calls yield for each key in the set, in slot order, until yield
// returns false.
func (s *Set[K]) All(yield func(key K) bool) {
	s.m.All(func(k K, _ struct{}) bool { return yield(k) })
}

// Clear removes all keys without releasing the slot array.
func (s *Set[K]) Clear() { s.m.Clear() }

// Close releases the slot array back to the configured allocator.
func (s *Set[K]) Close() { s.m.Close() }
