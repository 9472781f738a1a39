package progress

import (
	"errors"
	"io"
	"testing"
	"time"
)

func newTestBar() *LoadBar {
	return NewLoadBar(WithOutput(io.Discard), WithRefreshRate(10*time.Millisecond))
}

func TestLoadBar_Sized(t *testing.T) {
	b := newTestBar()
	b.LoadStarted("jobs.csv", 100)
	b.LoadRead(60)
	b.LoadRead(40)
	b.LoadFinished(nil)

	if b.bar != nil || b.container != nil {
		t.Fatal("Expected bar to be released after the load")
	}
}

func TestLoadBar_UnknownSizeFailure(t *testing.T) {
	b := newTestBar()
	b.LoadStarted("https://example.com/jobs.csv", -1)
	b.LoadRead(10)
	b.LoadFinished(errors.New("connection reset"))

	if b.bar != nil {
		t.Fatal("Expected bar to be released after a failed load")
	}
}

func TestLoadBar_FinishWithoutStart(t *testing.T) {
	b := newTestBar()
	b.LoadRead(10)
	b.LoadFinished(nil)
}
