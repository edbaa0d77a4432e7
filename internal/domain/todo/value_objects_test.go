package todo

import (
	"regexp"
	"strings"
	"testing"
)

var publicIDPattern = regexp.MustCompile(`^[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{8}$`)

func TestNewTitle(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{name: "empty", raw: "", want: ErrTitleCannotBeEmpty},
		{name: "whitespace", raw: "   ", want: ErrTitleCannotBeEmpty},
		{name: "tabs and newlines", raw: "\t\n", want: ErrTitleCannotBeEmpty},
		{name: "too long", raw: strings.Repeat("a", TitleMaxLength+1), want: ErrTitleIsTooLong},
		{name: "max length", raw: strings.Repeat("a", TitleMaxLength)},
		{name: "multibyte at max length", raw: strings.Repeat("é", TitleMaxLength)},
		{name: "regular", raw: "Fix bug"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewTitle(tc.raw)
			if tc.want == nil {
				if r.IsFailure() {
					t.Fatalf("unexpected failure: %v", r.Errors())
				}
				if r.Value().String() != tc.raw {
					t.Fatalf("value: want=%q got=%q", tc.raw, r.Value().String())
				}
				return
			}
			if r.IsSuccess() {
				t.Fatalf("expected %v", tc.want)
			}
			if errs := r.Errors(); len(errs) != 1 || errs[0] != tc.want {
				t.Fatalf("errors: want=[%v] got=%v", tc.want, errs)
			}
		})
	}
}

func TestNewDescription(t *testing.T) {
	if r := NewDescription(""); r.IsFailure() {
		t.Fatalf("empty description should be valid: %v", r.Errors())
	}
	if r := NewDescription(strings.Repeat("d", DescriptionMaxLength)); r.IsFailure() {
		t.Fatalf("max length should be valid: %v", r.Errors())
	}
	r := NewDescription(strings.Repeat("d", DescriptionMaxLength+1))
	if r.IsSuccess() || r.Errors()[0] != ErrDescriptionIsTooLong {
		t.Fatalf("expected too long, got %v", r.Errors())
	}
}

func TestValueObjectsCompareByValue(t *testing.T) {
	if NewTitle("same").Value() != NewTitle("same").Value() {
		t.Fatalf("titles with the same text should be equal")
	}
	if NewDescription("x").Value() == NewDescription("y").Value() {
		t.Fatalf("different descriptions should differ")
	}
}

func TestGeneratePublicIDRoundTrip(t *testing.T) {
	for i := 0; i < 500; i++ {
		id := GeneratePublicID()
		if !publicIDPattern.MatchString(id.String()) {
			t.Fatalf("generated id %q does not match the alphabet", id)
		}
		parsed := PublicIDFromString(id.String())
		if parsed.IsFailure() {
			t.Fatalf("round trip failed for %q: %v", id, parsed.Errors())
		}
		if parsed.Value() != id {
			t.Fatalf("round trip changed the value: %q -> %q", id, parsed.Value())
		}
	}
}

func TestPublicIDFromBytesUsesModulo(t *testing.T) {
	got := publicIDFromBytes([]byte{0, 1, 31, 32, 33, 255, 64, 200})
	// 255 % 32 = 31, 64 % 32 = 0, 200 % 32 = 8
	want := "AB9AB9AJ"
	if got.String() != want {
		t.Fatalf("want=%s got=%s", want, got)
	}
}

func TestPublicIDFromString(t *testing.T) {
	cases := []struct {
		raw  string
		want error
	}{
		{raw: "ABCDEFG", want: ErrPublicIDIsTooShort},
		{raw: "", want: ErrPublicIDIsTooShort},
		{raw: "ABCDEFGHJ", want: ErrPublicIDIsTooLong},
		{raw: "ABCDEFGI", want: ErrPublicIDContainsInvalidCharacters},
		{raw: "ABCDEFG0", want: ErrPublicIDContainsInvalidCharacters},
		{raw: "abcdefgh", want: ErrPublicIDContainsInvalidCharacters},
		{raw: "ABCD2345"},
	}
	for _, tc := range cases {
		r := PublicIDFromString(tc.raw)
		if tc.want == nil {
			if r.IsFailure() {
				t.Fatalf("%q: unexpected failure %v", tc.raw, r.Errors())
			}
			continue
		}
		if r.IsSuccess() || r.Errors()[0] != tc.want {
			t.Fatalf("%q: want=%v got=%v", tc.raw, tc.want, r.Errors())
		}
	}
}

func TestPublicIDAlphabet(t *testing.T) {
	for _, c := range "IO01" {
		if strings.ContainsRune(PublicIDAlphabet, c) {
			t.Fatalf("alphabet must not contain %q", c)
		}
	}
	seen := map[rune]bool{}
	for _, c := range PublicIDAlphabet {
		if seen[c] {
			t.Fatalf("duplicate %q in alphabet", c)
		}
		seen[c] = true
	}
}
