package types

import "testing"

func TestKindsAreDisjointBits(t *testing.T) {
	kinds := []EventKind{
		KindDeviceArrival,
		KindDevNodesChanged,
		KindSessionLogon,
		KindSessionUnlock,
		KindConsoleConnect,
	}
	var seen EventMask
	for _, k := range kinds {
		if k&(k-1) != 0 {
			t.Fatalf("kind %s is not a single bit: %#x", k, uint32(k))
		}
		if seen.Has(k) {
			t.Fatalf("kind %s overlaps another kind", k)
		}
		seen |= EventMask(k)
	}
}

func TestDeviceAndSessionMasksDisjoint(t *testing.T) {
	if MaskDevice&MaskSession != 0 {
		t.Fatalf("device mask %#x overlaps session mask %#x", uint32(MaskDevice), uint32(MaskSession))
	}
	if MaskDevice|MaskSession == 0 {
		t.Fatalf("masks are empty")
	}
}

func TestMaskString(t *testing.T) {
	cases := []struct {
		mask EventMask
		want string
	}{
		{0, "none"},
		{EventMask(KindDeviceArrival), "DeviceArrival"},
		{EventMask(KindDeviceArrival | KindSessionUnlock), "DeviceArrival+SessionUnlock"},
		{MaskSession, "SessionLogon+SessionUnlock+ConsoleConnect"},
	}
	for _, tc := range cases {
		if got := tc.mask.String(); got != tc.want {
			t.Fatalf("mask %#x: got %q want %q", uint32(tc.mask), got, tc.want)
		}
	}
}
