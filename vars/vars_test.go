package vars

import "testing"

func TestStrToBool(t *testing.T) {
	for str, expected := range map[string]bool{
		"true":  true,
		"Y":     true,
		"yes":   true,
		"f":     false,
		"NO":    false,
		"maybe": false,
		" on ":  true,
		"1":     true,
		"0":     false,
	} {
		if StrToBool(str) != expected {
			t.Fatalf("%s: got %v", str, !expected)
		}
	}
}

func TestFirstNonZero(t *testing.T) {
	if v := FirstNonZero("", "text", "yaml"); v != "text" {
		t.Fatalf("got %v", v)
	}
	if v := FirstNonZero(0, 0); v != 0 {
		t.Fatalf("got %v", v)
	}
}

func TestDerefOrZero(t *testing.T) {
	if v := DerefOrZero[int](nil); v != 0 {
		t.Fatalf("got %v", v)
	}
	s := "foo"
	if v := DerefOrZero(&s); v != "foo" {
		t.Fatalf("got %v", v)
	}
}
