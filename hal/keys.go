package hal

// AppendVT100 appends the bytes a VT100 terminal sends for ev. Key releases,
// non-ASCII runes and keys without an encoding append nothing.
func AppendVT100(dst []byte, ev KeyEvent) []byte {
	if !ev.Press {
		return dst
	}
	switch ev.Code {
	case KeyUp:
		return append(dst, "\x1b[A"...)
	case KeyDown:
		return append(dst, "\x1b[B"...)
	case KeyRight:
		return append(dst, "\x1b[C"...)
	case KeyLeft:
		return append(dst, "\x1b[D"...)
	case KeyHome:
		return append(dst, "\x1b[H"...)
	case KeyEnd:
		return append(dst, "\x1b[F"...)
	case KeyDelete:
		return append(dst, "\x1b[3~"...)
	case KeyEnter:
		return append(dst, '\r')
	case KeyEscape:
		return append(dst, 0x1b)
	case KeyBackspace:
		return append(dst, 0x7f)
	case KeyTab:
		return append(dst, '\t')
	case KeyUnknown:
		if ev.Rune > 0 && ev.Rune < 0x80 {
			return append(dst, byte(ev.Rune))
		}
	}
	return dst
}
