package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/colorkeep/colorkeep/pkg/types"
)

func TestDrainReturnsUnionExactlyOnce(t *testing.T) {
	a := New(time.Hour) // timer never fires during the test
	defer a.Stop()

	a.Record(types.KindDeviceArrival)
	a.Record(types.KindSessionUnlock)
	a.Record(types.KindDeviceArrival)

	mask, _ := a.Drain()
	want := types.EventMask(types.KindDeviceArrival | types.KindSessionUnlock)
	if mask != want {
		t.Fatalf("drain: got %s want %s", mask, want)
	}

	mask, _ = a.Drain()
	if mask != 0 {
		t.Fatalf("second drain: got %s want none", mask)
	}
}

func TestEpochAdvancesPerRecord(t *testing.T) {
	a := New(time.Hour)
	defer a.Stop()

	if a.Epoch() != 0 {
		t.Fatalf("initial epoch: got %d", a.Epoch())
	}

	a.Record(types.KindDeviceArrival)
	_, epoch := a.Drain()
	if epoch != 1 {
		t.Fatalf("epoch after one record: got %d", epoch)
	}

	a.Record(types.KindDevNodesChanged)
	a.Record(types.KindSessionLogon)
	if a.Epoch() != 3 {
		t.Fatalf("epoch after three records: got %d", a.Epoch())
	}
}

func TestConcurrentRecordsAreNotLost(t *testing.T) {
	a := New(time.Hour)
	defer a.Stop()

	kinds := []types.EventKind{
		types.KindDeviceArrival,
		types.KindDevNodesChanged,
		types.KindSessionLogon,
		types.KindSessionUnlock,
		types.KindConsoleConnect,
	}

	var wg sync.WaitGroup
	for _, k := range kinds {
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(kind types.EventKind) {
				defer wg.Done()
				a.Record(kind)
			}(k)
		}
	}
	wg.Wait()

	mask, epoch := a.Drain()
	if mask != types.MaskDevice|types.MaskSession {
		t.Fatalf("drain after concurrent records: got %s", mask)
	}
	if epoch != 250 {
		t.Fatalf("epoch after 250 records: got %d", epoch)
	}
}

func TestStormCoalescesIntoOneFire(t *testing.T) {
	a := New(30 * time.Millisecond)
	defer a.Stop()

	for i := 0; i < 5; i++ {
		a.Record(types.KindDeviceArrival)
		time.Sleep(2 * time.Millisecond)
	}

	select {
	case <-a.Fired():
	case <-time.After(time.Second):
		t.Fatalf("expected a fire after the quiet period")
	}

	mask, _ := a.Drain()
	if mask != types.EventMask(types.KindDeviceArrival) {
		t.Fatalf("drain: got %s", mask)
	}

	// No further fires without new events.
	select {
	case <-a.Fired():
		t.Fatalf("unexpected second fire")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRecordReArmsQuietTimer(t *testing.T) {
	a := New(50 * time.Millisecond)
	defer a.Stop()

	a.Record(types.KindSessionUnlock)
	time.Sleep(30 * time.Millisecond)
	a.Record(types.KindSessionUnlock)

	// The first timer was re-armed, so nothing fires at the original
	// deadline.
	select {
	case <-a.Fired():
		t.Fatalf("fire before re-armed quiet period elapsed")
	case <-time.After(35 * time.Millisecond):
	}

	select {
	case <-a.Fired():
	case <-time.After(time.Second):
		t.Fatalf("expected fire after re-armed quiet period")
	}
}

func TestStopCancelsPendingTimer(t *testing.T) {
	a := New(20 * time.Millisecond)

	a.Record(types.KindDeviceArrival)
	a.Stop()

	select {
	case <-a.Fired():
		t.Fatalf("fire after Stop")
	case <-time.After(60 * time.Millisecond):
	}

	// Bits recorded after Stop still accumulate for a final drain.
	a.Record(types.KindSessionLogon)
	mask, _ := a.Drain()
	want := types.EventMask(types.KindDeviceArrival | types.KindSessionLogon)
	if mask != want {
		t.Fatalf("drain after stop: got %s want %s", mask, want)
	}
}
