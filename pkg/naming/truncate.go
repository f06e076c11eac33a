package naming

import (
	"fmt"
	"unicode/utf8"

	"github.com/zeebo/xxh3"
)

// HashLen is the number of hex digits of the content hash in a truncated name.
const HashLen = 12

// MinTruncateLength is the shortest limit Truncate can honor: one prefix
// character, the hash and the two separators.
const MinTruncateLength = HashLen + 3

// Truncate shortens name to at most max bytes. Names within the limit are
// returned unchanged. Longer names keep a prefix and suffix around a hash of
// the full name, so the result is stable for a given input.
func Truncate(name string, max int) (string, error) {
	if max <= 0 || len(name) <= max {
		return name, nil
	}
	if max < MinTruncateLength {
		return "", &LengthError{Name: name, Max: max}
	}

	keep := max - HashLen - 2
	prefix := (keep + 1) / 2
	suffix := keep - prefix

	// Cut on rune boundaries, giving up bytes rather than splitting a rune.
	end := prefix
	for end > 0 && !utf8.RuneStart(name[end]) {
		end--
	}
	start := len(name) - suffix
	for start < len(name) && !utf8.RuneStart(name[start]) {
		start++
	}

	hash := fmt.Sprintf("%016x", xxh3.HashString(name))[:HashLen]
	out := name[:end] + "_" + hash
	if start < len(name) {
		out += "_" + name[start:]
	}
	return out, nil
}
