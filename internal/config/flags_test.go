package config

import (
	"testing"
	"time"

	"git.lost.host/meutraa/runbeat/internal/session"
)

func TestParseFlags(t *testing.T) {
	dir := t.TempDir()
	f, err := ParseFlags([]string{dir, "-r", "1.5", "--offset=-20ms", "--no-audio", "-D", "2"})
	if nil != err {
		t.Fatalf("parse: %v", err)
	}
	if f.Directory != dir || f.Rate != 1.5 || f.Offset != -20*time.Millisecond || !f.NoAudio || f.Difficulty != 2 {
		t.Fatalf("flags = %+v", f)
	}
	if f.Delay != session.StartDelay || f.Settings != "runbeat.yaml" || f.LogLevel != "info" {
		t.Fatalf("defaults = %+v", f)
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := map[string][]string{
		"missing directory": {},
		"not a directory":   {"/does/not/exist"},
		"bad level":         {t.TempDir(), "--log-level", "loud"},
	}
	for name, args := range tests {
		if _, err := ParseFlags(args); nil == err {
			t.Errorf("%s: expected an error", name)
		}
	}
}
