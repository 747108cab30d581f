package notify

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

func TestReportDisabledIsNoop(t *testing.T) {
	fake := &FakeNotifier{}
	sink := Sink{Notifier: fake}

	sink.Report(false, "title", "body", true)

	if len(fake.SeenSnapshot()) != 0 {
		t.Fatalf("expected no notification when disabled")
	}
}

func TestReportDeliversTitleAndBody(t *testing.T) {
	fake := &FakeNotifier{}
	sink := Sink{Notifier: fake}

	sink.Report(true, "ColorKeep", "Color profile reapplied.", false)

	seen := fake.SeenSnapshot()
	if len(seen) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(seen))
	}
	if seen[0].Title != "ColorKeep" || seen[0].Body != "Color profile reapplied." {
		t.Fatalf("unexpected notification: %+v", seen[0])
	}
}

func TestReportFailureNeverPropagates(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	fake := &FakeNotifier{Err: errors.New("no interactive session")}
	sink := Sink{Notifier: fake, Logger: logger}

	sink.Report(true, "t", "b", false)
	if buf.Len() != 0 {
		t.Fatalf("non-verbose failure should be silent, logged %q", buf.String())
	}

	sink.Report(true, "t", "b", true)
	if !strings.Contains(buf.String(), "notification failed") {
		t.Fatalf("verbose failure should be logged, got %q", buf.String())
	}
}

func TestReportNilNotifier(t *testing.T) {
	// Must not panic.
	Sink{}.Report(true, "t", "b", true)
}
