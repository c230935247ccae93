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
	"strings"
	"unicode/utf8"
)

// String helpers with cursor-style iteration and "len(s) means absent" find
// semantics, for code that walks and slices byte offsets rather than ranging
// over runes.

// NextCodepoint returns the codepoint at *offset and advances the offset
// past it. Returns 0 once the offset reaches the end of s.
func NextCodepoint(s string, offset *int) rune {
	if *offset >= len(s) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(s[*offset:])
	*offset += size
	return r
}

// PrevCodepoint moves *offset backward over one codepoint and returns it.
// Returns 0 once the offset reaches the start of s.
func PrevCodepoint(s string, offset *int) rune {
	if *offset <= 0 {
		return 0
	}
	r, size := utf8.DecodeLastRuneInString(s[:*offset])
	*offset -= size
	return r
}

// CodepointCount returns the number of codepoints in s.
func CodepointCount(s string) int {
	return utf8.RuneCountInString(s)
}

// Find returns the byte offset of the first occurrence of sub at or after
// from, or len(s) if there is none.
func Find(s, sub string, from int) int {
	if i := strings.Index(s[from:], sub); i >= 0 {
		return from + i
	}
	return len(s)
}

// RFind returns the byte offset of the last occurrence of sub ending at or
// before from, or len(s) if there is none.
func RFind(s, sub string, from int) int {
	if from > len(s) {
		from = len(s)
	}
	if i := strings.LastIndex(s[:from], sub); i >= 0 {
		return i
	}
	return len(s)
}

// FindByte returns the byte offset of the first occurrence of c at or after
// from, or len(s) if there is none.
func FindByte(s string, c byte, from int) int {
	if i := strings.IndexByte(s[from:], c); i >= 0 {
		return from + i
	}
	return len(s)
}

// RFindByte returns the byte offset of the last occurrence of c before from,
// or len(s) if there is none.
func RFindByte(s string, c byte, from int) int {
	if from > len(s) {
		from = len(s)
	}
	if i := strings.LastIndexByte(s[:from], c); i >= 0 {
		return i
	}
	return len(s)
}

// Cut splits s around the first occurrence of sep. If sep does not occur,
// before is s and after is empty.
func Cut(s, sep string) (before, after string) {
	i := Find(s, sep, 0)
	end := i + len(sep)
	if end > len(s) {
		end = len(s)
	}
	return s[:i], s[end:]
}
