package charclass

import "testing"

func TestIsChar(t *testing.T) {
	cases := []struct {
		r    rune
		want bool
	}{
		{0x9, true}, {0xA, true}, {0xD, true},
		{0x8, false}, {0xB, false},
		{0x20, true}, {0xD7FF, true}, {0xD800, false}, {0xDFFF, false},
		{0xE000, true}, {0xFFFD, true}, {0xFFFE, false},
		{0x10000, true}, {0x10FFFF, true}, {0x110000, false},
	}
	for _, c := range cases {
		if got := IsChar(c.r); got != c.want {
			t.Errorf("IsChar(%#x) = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestIsPubidChar(t *testing.T) {
	for _, r := range []rune{' ', '\r', '\n', 'a', 'Z', '5', '-', '\'', '(', ')', '+', ',', '.', '/', ':', '=', '?', ';', '!', '*', '#', '@', '$', '_', '%'} {
		if !IsPubidChar(r) {
			t.Errorf("IsPubidChar(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{'<', '>', '&', '"', '[', ']', '{', '}', '\\'} {
		if IsPubidChar(r) {
			t.Errorf("IsPubidChar(%q) = true, want false", r)
		}
	}
}

func TestUTF8Size(t *testing.T) {
	cases := []struct {
		r    rune
		want int
	}{
		{'a', 1}, {0x7F, 1}, {0x80, 2}, {0x7FF, 2}, {0x800, 3}, {0xFFFF, 3},
		{0x10000, 4}, {0x10FFFF, 4},
	}
	for _, c := range cases {
		if got := UTF8Size(c.r); got != c.want {
			t.Errorf("UTF8Size(%#x) = %d, want %d", c.r, got, c.want)
		}
	}
}

func TestEdition5NameChars(t *testing.T) {
	var e Edition5
	if e.Edition() != 5 {
		t.Fatalf("Edition() = %d, want 5", e.Edition())
	}
	for _, r := range []rune{':', '_', 'a', 'Z', 0x370, 0x2070} {
		if !e.IsNameStartChar(r) {
			t.Errorf("Edition5.IsNameStartChar(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{'-', '.', '5'} {
		if e.IsNameStartChar(r) {
			t.Errorf("Edition5.IsNameStartChar(%q) = true, want false", r)
		}
		if !e.IsNameChar(r) {
			t.Errorf("Edition5.IsNameChar(%q) = false, want true", r)
		}
	}
	if !e.IsNameChar(0xB7) {
		t.Error("Edition5.IsNameChar(0xB7) = false, want true (middle dot)")
	}
}

func TestEdition4NameChars(t *testing.T) {
	var e Edition4
	if e.Edition() != 4 {
		t.Fatalf("Edition() = %d, want 4", e.Edition())
	}
	for _, r := range []rune{':', '_', 'a', 'Z', 0x0041, 0x4E00} {
		if !e.IsNameStartChar(r) {
			t.Errorf("Edition4.IsNameStartChar(%q) = false, want true", r)
		}
	}
	if e.IsNameStartChar('5') {
		t.Error("Edition4.IsNameStartChar('5') = true, want false")
	}
	if !e.IsNameChar('5') {
		t.Error("Edition4.IsNameChar('5') = false, want true")
	}
	if !e.IsNameChar(0x00B7) {
		t.Error("Edition4.IsNameChar(extender 0xB7) = false, want true")
	}
}

func TestInRangesBinarySearchBoundaries(t *testing.T) {
	ranges := []runeRange{{1, 2}, {5, 5}, {10, 20}}
	for _, r := range []rune{0, 1, 2, 3, 5, 6, 9, 10, 15, 20, 21} {
		want := (r >= 1 && r <= 2) || r == 5 || (r >= 10 && r <= 20)
		if got := inRanges(r, ranges); got != want {
			t.Errorf("inRanges(%d) = %v, want %v", r, got, want)
		}
	}
}
