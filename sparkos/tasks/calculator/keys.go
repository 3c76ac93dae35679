package calculator

import "unicode/utf8"

type keyKind uint8

const (
	keyRune keyKind = iota
	keyEnter
	keyBackspace
	keyDelete
	keyTab
	keyEsc
	keyUp
	keyDown
	keyLeft
	keyRight
	keyF1
	keyF2
	keyF3
	keyIgnored
)

type key struct {
	kind keyKind
	r    rune
}

// nextKey decodes one key from VT100 input. It returns consumed == 0 when b
// holds an incomplete sequence that needs more bytes.
func nextKey(b []byte) (consumed int, k key) {
	if len(b) == 0 {
		return 0, key{}
	}
	switch b[0] {
	case 0x1b:
		return parseCSI(b)
	case '\r', '\n':
		return 1, key{kind: keyEnter}
	case 0x7f, 0x08:
		return 1, key{kind: keyBackspace}
	case '\t':
		return 1, key{kind: keyTab}
	}
	if b[0] < 0x20 {
		return 1, key{kind: keyIgnored}
	}
	if !utf8.FullRune(b) {
		return 0, key{}
	}
	r, n := utf8.DecodeRune(b)
	if r == utf8.RuneError {
		return n, key{kind: keyIgnored}
	}
	return n, key{kind: keyRune, r: r}
}

// parseCSI decodes ESC, ESC [ <final> and ESC [ <n> ~. Parameters after
// the first (ESC [ 1 ; 5 A) and intermediate bytes are consumed and ignored.
func parseCSI(b []byte) (int, key) {
	if len(b) < 2 || b[1] != '[' {
		return 1, key{kind: keyEsc}
	}

	n := 0
	i := 2
	for ; i < len(b) && b[i] >= '0' && b[i] <= '9'; i++ {
		n = n*10 + int(b[i]-'0')
	}
	for ; i < len(b) && b[i] >= 0x20 && b[i] <= 0x3f; i++ {
	}
	if i >= len(b) {
		return 0, key{}
	}
	if b[i] < 0x40 || b[i] > 0x7e {
		// Malformed; drop the introducer and let the rest decode normally.
		return i, key{kind: keyIgnored}
	}

	consumed := i + 1
	switch b[i] {
	case 'A':
		return consumed, key{kind: keyUp}
	case 'B':
		return consumed, key{kind: keyDown}
	case 'C':
		return consumed, key{kind: keyRight}
	case 'D':
		return consumed, key{kind: keyLeft}
	case '~':
		switch n {
		case 3:
			return consumed, key{kind: keyDelete}
		case 11:
			return consumed, key{kind: keyF1}
		case 12:
			return consumed, key{kind: keyF2}
		case 13:
			return consumed, key{kind: keyF3}
		}
	}
	return consumed, key{kind: keyIgnored}
}
