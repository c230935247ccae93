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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func toBuiltinSet[K Key](s *Set[K]) map[K]bool {
	out := make(map[K]bool)
	s.All(func(k K) bool {
		out[k] = true
		return true
	})
	return out
}

func TestSetBasic(t *testing.T) {
	s := NewSet[uint32](0)
	defer s.Close()

	require.True(t, s.Add(7))
	require.True(t, s.Add(0))
	require.True(t, s.Add(1 << 20))
	require.False(t, s.Add(7))
	require.Equal(t, 3, s.Len())

	require.True(t, s.Has(7))
	require.True(t, s.Has(0))
	require.False(t, s.Has(8))

	require.True(t, s.Remove(7))
	require.False(t, s.Remove(7))
	require.False(t, s.Has(7))
	require.Equal(t, 2, s.Len())

	require.Equal(t, map[uint32]bool{0: true, 1 << 20: true}, toBuiltinSet(s))

	s.Clear()
	require.Equal(t, 0, s.Len())
	require.False(t, s.Has(0))
}

func TestSetCollisionChain(t *testing.T) {
	// 5, 13, and 21 land on the same slot in an 8-slot table. Removing the
	// middle of the probe chain must keep the others reachable.
	s := NewSet[uint32](8)
	defer s.Close()

	s.Add(5)
	s.Add(13)
	s.Add(21)
	require.True(t, s.Remove(13))
	require.True(t, s.Has(5))
	require.True(t, s.Has(21))
	require.False(t, s.Has(13))
}

func TestSetRandom(t *testing.T) {
	s := NewSet[uint16](0)
	defer s.Close()
	model := make(map[uint16]bool)

	for i := 0; i < 10000; i++ {
		k := uint16(rand.Intn(2000))
		switch rand.Intn(3) {
		case 0:
			require.Equal(t, !model[k], s.Add(k))
			model[k] = true
		case 1:
			require.Equal(t, model[k], s.Remove(k))
			delete(model, k)
		case 2:
			require.Equal(t, model[k], s.Has(k))
		}
		require.Equal(t, len(model), s.Len())
	}
	require.Equal(t, model, toBuiltinSet(s))
}

func TestSetArenaBacked(t *testing.T) {
	a := NewArena()
	defer a.Release()

	s := NewSet[uint64](0, WithSlotAllocator[uint64, struct{}](ArenaSlots[uint64, struct{}](a)))
	for i := uint64(0); i < 500; i++ {
		require.True(t, s.Add(i*3))
	}
	require.Equal(t, 500, s.Len())
	for i := uint64(0); i < 500; i++ {
		require.True(t, s.Has(i*3))
		require.False(t, s.Has(i*3+1))
	}
	s.Close()
}
