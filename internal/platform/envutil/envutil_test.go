package envutil

import (
	"testing"
	"time"
)

func TestGettersFallBack(t *testing.T) {
	t.Setenv("ENVUTIL_BLANK", "   ")
	t.Setenv("ENVUTIL_BAD", "not-a-number")

	if got := String("ENVUTIL_BLANK", "def"); got != "def" {
		t.Fatalf("String: want=def got=%q", got)
	}
	if got := Int("ENVUTIL_BAD", 7); got != 7 {
		t.Fatalf("Int: want=7 got=%d", got)
	}
	if got := Float("ENVUTIL_UNSET_XYZ", 0.5); got != 0.5 {
		t.Fatalf("Float: want=0.5 got=%v", got)
	}
	if got := Bool("ENVUTIL_BAD", true); !got {
		t.Fatalf("Bool: want=true got=false")
	}
	if got := Duration("ENVUTIL_BAD", time.Minute); got != time.Minute {
		t.Fatalf("Duration: want=1m got=%v", got)
	}
}

func TestGettersParse(t *testing.T) {
	t.Setenv("ENVUTIL_INT", " 42 ")
	t.Setenv("ENVUTIL_BOOL", "off")
	t.Setenv("ENVUTIL_SECS", "90")
	t.Setenv("ENVUTIL_DUR", "5m")
	t.Setenv("ENVUTIL_LIST", "a, b,,c ")

	if got := Int("ENVUTIL_INT", 0); got != 42 {
		t.Fatalf("Int: want=42 got=%d", got)
	}
	if got := Bool("ENVUTIL_BOOL", true); got {
		t.Fatalf("Bool: want=false got=true")
	}
	if got := Duration("ENVUTIL_SECS", 0); got != 90*time.Second {
		t.Fatalf("Duration secs: want=90s got=%v", got)
	}
	if got := Duration("ENVUTIL_DUR", 0); got != 5*time.Minute {
		t.Fatalf("Duration: want=5m got=%v", got)
	}
	got := List("ENVUTIL_LIST", nil)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("List: want=[a b c] got=%v", got)
	}
}
