package chip8

const KeyCount = 16

const noKey = -1

// Keypad holds the state of the 16 key hex keypad.
//
// While a WaitKeyPress instruction is pending the keypad latches the first key
// that goes from released to pressed. Keys held before the wait started do not
// satisfy it.
type Keypad struct {
	keys    [KeyCount]bool
	waiting bool
	latched int
}

func (k *Keypad) Reset() {
	*k = Keypad{latched: noKey}
}

// Press marks key as held. Keys outside 0x0-0xF are ignored.
func (k *Keypad) Press(key uint8) {
	if key >= KeyCount {
		return
	}
	if !k.keys[key] && k.waiting && k.latched == noKey {
		k.latched = int(key)
	}
	k.keys[key] = true
}

func (k *Keypad) Release(key uint8) {
	if key >= KeyCount {
		return
	}
	k.keys[key] = false
}

// Set replaces the whole key state, latching press transitions like Press does.
func (k *Keypad) Set(state [KeyCount]bool) {
	for key, down := range state {
		if down {
			k.Press(uint8(key))
		} else {
			k.Release(uint8(key))
		}
	}
}

func (k *Keypad) IsPressed(key uint8) bool {
	return k.keys[key&0xf]
}

func (k *Keypad) State() [KeyCount]bool {
	return k.keys
}

// Waiting reports whether a WaitKeyPress instruction is pending.
func (k *Keypad) Waiting() bool {
	return k.waiting
}

// takePress starts a wait if none is pending and returns the latched key once there is one.
func (k *Keypad) takePress() (uint8, bool) {
	if !k.waiting {
		k.waiting = true
		k.latched = noKey
		return 0, false
	}
	if k.latched == noKey {
		return 0, false
	}

	key := uint8(k.latched)
	k.waiting = false
	k.latched = noKey
	return key, true
}
