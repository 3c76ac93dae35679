package calculator

import "testing"

func TestNextKey(t *testing.T) {
	tests := []struct {
		in       string
		consumed int
		want     key
	}{
		{"7", 1, key{kind: keyRune, r: '7'}},
		{"÷x", 2, key{kind: keyRune, r: '÷'}},
		{"\n", 1, key{kind: keyEnter}},
		{"\x7f", 1, key{kind: keyBackspace}},
		{"\t", 1, key{kind: keyTab}},
		{"\x1b", 1, key{kind: keyEsc}},
		{"\x1bx", 1, key{kind: keyEsc}},
		{"\x1b[A", 3, key{kind: keyUp}},
		{"\x1b[B1", 3, key{kind: keyDown}},
		{"\x1b[3~", 4, key{kind: keyDelete}},
		{"\x1b[11~", 5, key{kind: keyF1}},
		{"\x1b[12~", 5, key{kind: keyF2}},
		{"\x1b[13~", 5, key{kind: keyF3}},
		{"\x1b[15~", 5, key{kind: keyIgnored}},
		{"\x1b[H", 3, key{kind: keyIgnored}},
		{"\x1b[1;5A7", 6, key{kind: keyUp}},
		{"\x1b[3;2~", 6, key{kind: keyDelete}},
		{"\x1b[1;5H", 6, key{kind: keyIgnored}},
		{"\x1b[2\n", 3, key{kind: keyIgnored}},
		{"\x03", 1, key{kind: keyIgnored}},
	}
	for _, tt := range tests {
		n, k := nextKey([]byte(tt.in))
		if n != tt.consumed || k != tt.want {
			t.Fatalf("nextKey(%q)=(%d, %+v), want (%d, %+v)", tt.in, n, k, tt.consumed, tt.want)
		}
	}
}

func TestNextKeyIncomplete(t *testing.T) {
	for _, in := range []string{"", "\x1b[", "\x1b[1", "\x1b[12", "\x1b[1;", "\x1b[1;5", "\xc3"} {
		if n, _ := nextKey([]byte(in)); n != 0 {
			t.Fatalf("nextKey(%q) consumed %d, want 0", in, n)
		}
	}
}
