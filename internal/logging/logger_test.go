package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"git.lost.host/meutraa/runbeat/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFileCoreWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := zap.New(newFileCore(&buf, zapcore.InfoLevel))

	log.Debug("hidden")
	log.Info("judged", zap.String("result", "hit"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); nil != err {
		t.Fatalf("log line is not json: %q", buf.String())
	}
	if entry["message"] != "judged" || entry["level"] != "INFO" || entry["result"] != "hit" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log, err := Init(config.LoggingSettings{Directory: dir, MaxSize: 1}, "debug", false)
	if nil != err {
		t.Fatalf("init: %v", err)
	}
	log.Info("hello")
	log.Sync()

	if _, err := os.Stat(filepath.Join(dir, "runbeat.log")); nil != err {
		t.Fatalf("log file missing: %v", err)
	}
	if _, err := Init(config.LoggingSettings{Directory: dir}, "loud", false); nil == err {
		t.Fatal("expected an error for an unknown level")
	}
}
