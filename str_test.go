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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodepointCursor(t *testing.T) {
	// 1-, 2-, 3-, and 4-byte encodings.
	s := "aé€\U0001F600z"
	want := []rune{'a', 'é', '€', '\U0001F600', 'z'}

	offset := 0
	var got []rune
	for {
		r := NextCodepoint(s, &offset)
		if r == 0 {
			break
		}
		got = append(got, r)
	}
	require.Equal(t, want, got)
	require.Equal(t, len(s), offset)

	// Walking backward from the end visits the same runes in reverse and
	// lands back at offset zero.
	got = got[:0]
	for {
		r := PrevCodepoint(s, &offset)
		if r == 0 {
			break
		}
		got = append(got, r)
	}
	require.Equal(t, []rune{'z', '\U0001F600', '€', 'é', 'a'}, got)
	require.Equal(t, 0, offset)

	require.Equal(t, 5, CodepointCount(s))
	require.Equal(t, 0, CodepointCount(""))
}

func TestCodepointCursorEmpty(t *testing.T) {
	offset := 0
	require.Equal(t, rune(0), NextCodepoint("", &offset))
	require.Equal(t, 0, offset)
	require.Equal(t, rune(0), PrevCodepoint("", &offset))
	require.Equal(t, 0, offset)
}

func TestFind(t *testing.T) {
	s := "one two one two"

	require.Equal(t, 0, Find(s, "one", 0))
	require.Equal(t, 8, Find(s, "one", 1))
	require.Equal(t, len(s), Find(s, "one", 9))
	require.Equal(t, len(s), Find(s, "three", 0))
	require.Equal(t, 3, Find(s, "", 3))

	require.Equal(t, 8, RFind(s, "one", len(s)))
	require.Equal(t, 0, RFind(s, "one", 8))
	require.Equal(t, len(s), RFind(s, "three", len(s)))
	require.Equal(t, 8, RFind(s, "one", 100))
}

func TestFindByte(t *testing.T) {
	s := "a,b,c"

	require.Equal(t, 1, FindByte(s, ',', 0))
	require.Equal(t, 3, FindByte(s, ',', 2))
	require.Equal(t, len(s), FindByte(s, ',', 4))
	require.Equal(t, len(s), FindByte(s, 'x', 0))

	require.Equal(t, 3, RFindByte(s, ',', len(s)))
	require.Equal(t, 1, RFindByte(s, ',', 3))
	require.Equal(t, len(s), RFindByte(s, ',', 1))
	require.Equal(t, len(s), RFindByte(s, 'x', len(s)))
}

func TestCut(t *testing.T) {
	before, after := Cut("key=value", "=")
	require.Equal(t, "key", before)
	require.Equal(t, "value", after)

	before, after = Cut("a==b", "==")
	require.Equal(t, "a", before)
	require.Equal(t, "b", after)

	// Absent separator: everything lands in before.
	before, after = Cut("no separator", "=")
	require.Equal(t, "no separator", before)
	require.Equal(t, "", after)

	before, after = Cut("", "=")
	require.Equal(t, "", before)
	require.Equal(t, "", after)
}
