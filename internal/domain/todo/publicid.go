package todo

import (
	"crypto/rand"
	"strings"
	"unicode/utf8"

	"github.com/kovalchuka569/taskflow/internal/pkg/result"
)

const (
	// PublicIDLength is the exact length of every public id.
	PublicIDLength = 8
	// PublicIDAlphabet holds uppercase letters and digits without the
	// look-alikes I, O, 0 and 1.
	PublicIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// PublicID is the short human-facing identifier of a todo.
type PublicID struct {
	value string
}

// GeneratePublicID draws PublicIDLength random bytes and maps each one onto
// the alphabet with b % len(alphabet).
func GeneratePublicID() PublicID {
	var buf [PublicIDLength]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic("todo: read random bytes: " + err.Error())
	}
	return publicIDFromBytes(buf[:])
}

func publicIDFromBytes(buf []byte) PublicID {
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[i] = PublicIDAlphabet[int(b)%len(PublicIDAlphabet)]
	}
	return PublicID{value: string(out)}
}

// PublicIDFromString validates a textual public id.
func PublicIDFromString(raw string) result.Of[PublicID] {
	switch n := utf8.RuneCountInString(raw); {
	case n > PublicIDLength:
		return result.Fail[PublicID](ErrPublicIDIsTooLong)
	case n < PublicIDLength:
		return result.Fail[PublicID](ErrPublicIDIsTooShort)
	}
	for _, r := range raw {
		if !strings.ContainsRune(PublicIDAlphabet, r) {
			return result.Fail[PublicID](ErrPublicIDContainsInvalidCharacters)
		}
	}
	return result.Ok(PublicID{value: raw})
}

func (p PublicID) String() string { return p.value }
