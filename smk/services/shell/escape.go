package shell

// key is an editing key decoded from a VT100 escape sequence.
type key uint8

const (
	keyNone key = iota
	keyUp
	keyDown
	keyRight
	keyLeft
	keyDelete
	keyHome
	keyEnd
)

func (k key) String() string {
	switch k {
	case keyUp:
		return "up"
	case keyDown:
		return "down"
	case keyRight:
		return "right"
	case keyLeft:
		return "left"
	case keyDelete:
		return "delete"
	case keyHome:
		return "home"
	case keyEnd:
		return "end"
	default:
		return "none"
	}
}

// csiKey decodes the final byte of a three-byte "ESC [ x" sequence.
func csiKey(b byte) key {
	switch b {
	case 'A':
		return keyUp
	case 'B':
		return keyDown
	case 'C':
		return keyRight
	case 'D':
		return keyLeft
	case 'H':
		return keyHome
	case 'F':
		return keyEnd
	default:
		return keyNone
	}
}

// isTildeLead reports whether b starts an "ESC [ n ~" sequence.
func isTildeLead(b byte) bool {
	return b == '1' || b == '3' || b == '4'
}

// tildeKey decodes the digit of an "ESC [ n ~" sequence.
func tildeKey(n byte) key {
	switch n {
	case '1':
		return keyHome
	case '3':
		return keyDelete
	case '4':
		return keyEnd
	default:
		return keyNone
	}
}

// isCSIParam reports whether b is a CSI parameter or intermediate byte.
func isCSIParam(b byte) bool {
	return b >= 0x20 && b <= 0x3f
}

// isCSIFinal reports whether b ends a CSI sequence.
func isCSIFinal(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}
