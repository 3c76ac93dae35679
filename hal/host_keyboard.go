package hal

type hostKeyboard struct {
	ch     chan KeyEvent
	script []KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) send(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

// queueScript schedules scripted key presses, one per feed call.
func (k *hostKeyboard) queueScript(keys string) {
	for _, r := range keys {
		code, text := scriptKey(r)
		if code != KeyUnknown {
			k.script = append(k.script, KeyEvent{Code: code, Press: true}, KeyEvent{Code: code})
			continue
		}
		k.script = append(k.script, KeyEvent{Press: true, Rune: text})
	}
}

// feed delivers the next scripted press (and its release). It reports
// whether any script remains.
func (k *hostKeyboard) feed() bool {
	if len(k.script) == 0 {
		return false
	}
	ev := k.script[0]
	k.script = k.script[1:]
	k.send(ev)
	if ev.Code != KeyUnknown && len(k.script) > 0 && !k.script[0].Press {
		k.send(k.script[0])
		k.script = k.script[1:]
	}
	return len(k.script) > 0
}

// scriptKey maps control characters in a key script to key codes:
// \n Enter, \t Tab, \b Backspace, \x1b Escape, \x01 F1, \x02 F2,
// \x0e Down, \x10 Up.
func scriptKey(r rune) (KeyCode, rune) {
	switch r {
	case '\n', '\r':
		return KeyEnter, 0
	case '\t':
		return KeyTab, 0
	case '\b', 0x7f:
		return KeyBackspace, 0
	case 0x1b:
		return KeyEscape, 0
	case 0x01:
		return KeyF1, 0
	case 0x02:
		return KeyF2, 0
	case 0x0e:
		return KeyDown, 0
	case 0x10:
		return KeyUp, 0
	default:
		return KeyUnknown, r
	}
}
