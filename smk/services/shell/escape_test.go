package shell

import "testing"

func TestCSIKey(t *testing.T) {
	tcs := []struct {
		in   byte
		want key
	}{
		{in: 'A', want: keyUp},
		{in: 'B', want: keyDown},
		{in: 'C', want: keyRight},
		{in: 'D', want: keyLeft},
		{in: 'H', want: keyHome},
		{in: 'F', want: keyEnd},
		{in: 'Z', want: keyNone},
		{in: '3', want: keyNone},
	}
	for _, tc := range tcs {
		if got := csiKey(tc.in); got != tc.want {
			t.Fatalf("csiKey(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestTildeKey(t *testing.T) {
	tcs := []struct {
		in   byte
		lead bool
		want key
	}{
		{in: '1', lead: true, want: keyHome},
		{in: '3', lead: true, want: keyDelete},
		{in: '4', lead: true, want: keyEnd},
		{in: '2', lead: false, want: keyNone},
		{in: 'A', lead: false, want: keyNone},
	}
	for _, tc := range tcs {
		if got := isTildeLead(tc.in); got != tc.lead {
			t.Fatalf("isTildeLead(%q) = %v; want %v", tc.in, got, tc.lead)
		}
		if got := tildeKey(tc.in); got != tc.want {
			t.Fatalf("tildeKey(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestCSIByteClasses(t *testing.T) {
	tcs := []struct {
		in           byte
		param, final bool
	}{
		{in: '0', param: true},
		{in: ';', param: true},
		{in: ' ', param: true},
		{in: '?', param: true},
		{in: '@', final: true},
		{in: 'C', final: true},
		{in: '~', final: true},
		{in: 0x7f},
		{in: '\r'},
	}
	for _, tc := range tcs {
		if got := isCSIParam(tc.in); got != tc.param {
			t.Fatalf("isCSIParam(%q) = %v; want %v", tc.in, got, tc.param)
		}
		if got := isCSIFinal(tc.in); got != tc.final {
			t.Fatalf("isCSIFinal(%q) = %v; want %v", tc.in, got, tc.final)
		}
	}
}
