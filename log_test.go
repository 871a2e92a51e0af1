package sumi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiagnosticLogPrefixes(t *testing.T) {
	log := NewDiagnosticLog(nil)
	log.Infof("Rendered %dx%d image", 512, 512)
	log.Warningf("pixel %d failed", 7)
	log.Errorf("compile failed: %s", "boom")

	want := []string{
		"Rendered 512x512 image",
		"WARNING: pixel 7 failed",
		"ERROR: compile failed: boom",
	}
	if diff := cmp.Diff(want, log.Strings()); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}

	wantJoined := "Rendered 512x512 image\nWARNING: pixel 7 failed\nERROR: compile failed: boom"
	if got := log.String(); got != wantJoined {
		t.Errorf("String() = %q, want %q", got, wantJoined)
	}
}

func TestLogLevelString(t *testing.T) {
	for level, want := range map[LogLevel]string{
		LevelInfo:    "info",
		LevelWarning: "warning",
		LevelError:   "error",
	} {
		if got := level.String(); got != want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestDiagnosticLogFlushOnce(t *testing.T) {
	var calls int
	var got []Line
	log := NewDiagnosticLog(func(lines []Line) {
		calls++
		got = lines
	})
	log.Infof("one")
	log.Flush()
	log.Flush() // deferred + explicit flush must not double-deliver
	if calls != 1 {
		t.Fatalf("sink called %d times, want 1", calls)
	}
	want := []Line{{Level: LevelInfo, Message: "one"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flushed lines mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagnosticLogNilSink(t *testing.T) {
	log := NewDiagnosticLog(nil)
	log.Errorf("x")
	log.Flush() // must not panic
	if log.Len() != 1 {
		t.Errorf("Len() = %d, want 1", log.Len())
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	log := NewDiagnosticLog(nil)
	log.Infof("a")
	lines := log.Lines()
	lines[0].Message = "mutated"
	if log.Lines()[0].Message != "a" {
		t.Error("Lines() exposed internal storage")
	}
}
