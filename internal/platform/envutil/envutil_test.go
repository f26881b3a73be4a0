package envutil

import (
	"testing"
	"time"
)

func TestReaders(t *testing.T) {
	t.Setenv("ANALOGY_TEST_INT", "42")
	t.Setenv("ANALOGY_TEST_BAD_INT", "x")
	t.Setenv("ANALOGY_TEST_FLOAT", "0.9")
	t.Setenv("ANALOGY_TEST_BOOL", "off")
	t.Setenv("ANALOGY_TEST_SECONDS", "30")
	t.Setenv("ANALOGY_TEST_LIST", " jwt, ,session ")

	if got := Int("ANALOGY_TEST_INT", 1); got != 42 {
		t.Fatalf("Int: got %d", got)
	}
	if got := Int("ANALOGY_TEST_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback: got %d", got)
	}
	if got := Float("ANALOGY_TEST_FLOAT", 0.1); got != 0.9 {
		t.Fatalf("Float: got %v", got)
	}
	if got := Bool("ANALOGY_TEST_BOOL", true); got {
		t.Fatalf("Bool: expected false")
	}
	if got := Seconds("ANALOGY_TEST_SECONDS", time.Minute); got != 30*time.Second {
		t.Fatalf("Seconds: got %v", got)
	}
	list := List("ANALOGY_TEST_LIST", nil)
	if len(list) != 2 || list[0] != "jwt" || list[1] != "session" {
		t.Fatalf("List: got %v", list)
	}
	if got := String("ANALOGY_TEST_UNSET", "def"); got != "def" {
		t.Fatalf("String default: got %q", got)
	}
}
