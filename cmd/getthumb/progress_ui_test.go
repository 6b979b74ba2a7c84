package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"getthumb/internal/thumb"
)

func TestProgressUI(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressUI(&buf)

	p.StageStarted(thumb.StageExtract, 2)
	p.ItemDone(thumb.StageExtract, 1, 2)
	p.ItemDone(thumb.StageExtract, 2, 2)
	p.StageFinished(thumb.StageExtract, 1500*time.Millisecond, nil)
	p.StageStarted(thumb.StageBanner, 1)
	p.ItemDone(thumb.StageBanner, 1, 1)
	p.StageFinished(thumb.StageBanner, 20*time.Millisecond, errors.New("boom"))

	out := buf.String()
	for _, want := range []string{
		"Extracting frames (2)",
		"  [1/2]\n",
		"  [2/2]\n",
		"Extracting frames done (1.5s)",
		"Rendering banner\n",
		"Rendering banner FAILED (20ms)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "extract done") {
		t.Errorf("finished line should use the stage label:\n%s", out)
	}
	if strings.Contains(out, "[1/1]") {
		t.Errorf("single item stages should not print item lines:\n%s", out)
	}
}

func TestPickProgressWriterNonTerminal(t *testing.T) {
	if _, ok := pickProgressWriter(&bytes.Buffer{}); ok {
		t.Error("a buffer is not a terminal")
	}
}

func TestFormatShortDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{2500 * time.Millisecond, "2.5s"},
		{95 * time.Second, "1m35s"},
	}
	for _, tt := range tests {
		if got := formatShortDuration(tt.d); got != tt.want {
			t.Errorf("formatShortDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
