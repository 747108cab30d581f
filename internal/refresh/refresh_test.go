package refresh

import (
	"errors"
	"testing"
)

func TestEnabledPreservesOrder(t *testing.T) {
	methods := Enabled(true, true, true, true)
	want := []Method{MethodDisplaySettings, MethodBroadcastColor, MethodInvalidate, MethodCalibrationLoader}
	if len(methods) != len(want) {
		t.Fatalf("got %d methods, want %d", len(methods), len(want))
	}
	for i := range want {
		if methods[i] != want[i] {
			t.Fatalf("method %d: got %s want %s", i, methods[i], want[i])
		}
	}

	if got := Enabled(false, false, false, false); len(got) != 0 {
		t.Fatalf("expected no methods, got %v", got)
	}

	subset := Enabled(false, true, false, true)
	if len(subset) != 2 || subset[0] != MethodBroadcastColor || subset[1] != MethodCalibrationLoader {
		t.Fatalf("subset: got %v", subset)
	}
}

func TestApplyContinuesPastFailures(t *testing.T) {
	fake := &FakeRefresher{
		Errs: map[Method]error{
			MethodBroadcastColor: errors.New("broadcast denied"),
		},
	}

	failures := Apply(fake, Enabled(true, true, true, true))

	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	if failures[0].Method != MethodBroadcastColor {
		t.Fatalf("failed method: got %s", failures[0].Method)
	}
	if fired := fake.FiredSnapshot(); len(fired) != 4 {
		t.Fatalf("expected all 4 methods attempted, got %v", fired)
	}
}
