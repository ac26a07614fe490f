package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/sortable/internal/errors"
	"github.com/vango-dev/sortable/pkg/sortable"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Server.HeartbeatDuration() != DefaultHeartbeatInterval {
		t.Errorf("HeartbeatDuration() = %v", cfg.Server.HeartbeatDuration())
	}
	if cfg.List.InsertPolicy != "drop" || cfg.List.Axis != "both" {
		t.Errorf("List policy/axis = %q/%q", cfg.List.InsertPolicy, cfg.List.Axis)
	}
	if cfg.List.Animation.Duration != "200ms" {
		t.Errorf("Animation.Duration = %q, want 200ms", cfg.List.Animation.Duration)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_JSON(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := Load(tmpDir); !errors.HasCode(err, "E101") {
		t.Fatalf("Load(empty dir) err = %v, want E101", err)
	}

	writeFile(t, tmpDir, "sortable.json", `{
  "server": {"port": 8080, "host": "0.0.0.0", "heartbeatInterval": "5s"},
  "list": {
    "items": ["a", "b", "c"],
    "animate": true,
    "insertPolicy": "over",
    "axis": "y",
    "draggingClassNames": ["dr1", "dr2"]
  },
  "log": {"level": "debug", "format": "json"}
}
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Address() != "0.0.0.0:8080" {
		t.Errorf("Address() = %q", cfg.Server.Address())
	}
	if cfg.Server.HeartbeatDuration() != 5*time.Second {
		t.Errorf("HeartbeatDuration() = %v", cfg.Server.HeartbeatDuration())
	}
	if cfg.Server.ReadTimeoutDuration() != DefaultReadTimeout {
		t.Errorf("ReadTimeoutDuration() = %v", cfg.Server.ReadTimeoutDuration())
	}
	if strings.Join(cfg.List.Items, ",") != "a,b,c" {
		t.Errorf("Items = %v", cfg.List.Items)
	}
	if strings.Join(cfg.List.DragoverClassNames, ",") != "dragover" {
		t.Errorf("DragoverClassNames should default, got %v", cfg.List.DragoverClassNames)
	}
	if cfg.Path() != filepath.Join(tmpDir, "sortable.json") {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoad_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "sortable.yml", `
server:
  port: 9000
list:
  items: [one, two]
  axis: x
  animation:
    duration: 150ms
    stagger: 10ms
log:
  level: warn
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.List.Axis != "x" || len(cfg.List.Items) != 2 {
		t.Errorf("List = %+v", cfg.List)
	}
	if cfg.List.Animation.Stagger != "10ms" {
		t.Errorf("Stagger = %q", cfg.List.Animation.Stagger)
	}
}

func TestLoad_PrefersJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "sortable.json", `{"server": {"port": 1111}}`)
	writeFile(t, tmpDir, "sortable.yaml", "server:\n  port: 2222\n")

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 1111 {
		t.Errorf("Server.Port = %d, want the JSON file's 1111", cfg.Server.Port)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		code    string
	}{
		{"missing", "", "", "E101"},
		{"bad json", "bad.json", `{"server": `, "E103"},
		{"bad yaml", "bad.yaml", "server: [", "E103"},
		{"bad port", "port.json", `{"server": {"port": 70000}}`, "E104"},
		{"bad duration", "dur.json", `{"server": {"readTimeout": "soon"}}`, "E104"},
		{"negative duration", "neg.json", `{"list": {"animation": {"delay": "-1s"}}}`, "E104"},
		{"bad policy", "policy.json", `{"list": {"insertPolicy": "hover"}}`, "E104"},
		{"bad axis", "axis.json", `{"list": {"axis": "z"}}`, "E104"},
		{"bad level", "level.json", `{"log": {"level": "loud"}}`, "E104"},
		{"bad format", "format.json", `{"log": {"format": "xml"}}`, "E104"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, "absent.json")
			if tt.file != "" {
				path = writeFile(t, tmpDir, tt.file, tt.content)
			}
			_, err := LoadFile(path)
			if !errors.HasCode(err, tt.code) {
				t.Errorf("LoadFile() err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadFile_InvalidDetailNamesField(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sortable.json", `{"list": {"axis": "z"}}`)
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "list.axis") {
		t.Errorf("err = %v, want detail naming list.axis", err)
	}
}

func TestListOptions(t *testing.T) {
	cfg := New()
	cfg.List.Animate = true
	cfg.List.Multiple = true
	cfg.List.InsertPolicy = "over"
	cfg.List.Axis = "y"
	cfg.List.DraggingClassNames = []string{"dr"}
	cfg.List.Animation = AnimationConfig{
		Duration: "300ms",
		Delay:    "50ms",
		Stagger:  "10ms",
		Timing:   "ease-in",
	}

	opts, err := cfg.ListOptions()
	if err != nil {
		t.Fatalf("ListOptions() error = %v", err)
	}
	o := sortable.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if !o.Animate || !o.Multiple {
		t.Errorf("Animate/Multiple = %v/%v", o.Animate, o.Multiple)
	}
	if o.InsertPolicy != sortable.InsertWhileOver || o.Axis != sortable.AxisY {
		t.Errorf("policy/axis = %v/%v", o.InsertPolicy, o.Axis)
	}
	if strings.Join(o.DraggingClassNames, ",") != "dr" {
		t.Errorf("DraggingClassNames = %v", o.DraggingClassNames)
	}
	if got := o.AnimationDuration(3); got != 300*time.Millisecond {
		t.Errorf("AnimationDuration(3) = %v", got)
	}
	if got := o.AnimationDelay(2); got != 70*time.Millisecond {
		t.Errorf("AnimationDelay(2) = %v, want 70ms", got)
	}
	if got := o.AnimationTiming(0); got != "ease-in" {
		t.Errorf("AnimationTiming(0) = %q", got)
	}

	cfg.List.Axis = "diagonal"
	if _, err := cfg.ListOptions(); !errors.HasCode(err, "E104") {
		t.Errorf("ListOptions() with bad axis err = %v, want E104", err)
	}
}

func TestLogConfig(t *testing.T) {
	for level, want := range map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "": slog.LevelInfo,
		"warning": slog.LevelWarn, "error": slog.LevelError,
	} {
		got, err := LogConfig{Level: level}.SlogLevel()
		if err != nil || got != want {
			t.Errorf("SlogLevel(%q) = %v, %v; want %v", level, got, err, want)
		}
	}

	var buf bytes.Buffer
	logger := LogConfig{Level: "debug", Format: "json"}.NewLogger(&buf)
	logger.Debug("moved", "source", 1)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("json handler output %q: %v", buf.String(), err)
	}
	if entry["msg"] != "moved" || entry["source"] != float64(1) {
		t.Errorf("entry = %v", entry)
	}

	buf.Reset()
	LogConfig{Level: "warn", Format: "text"}.NewLogger(&buf).Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buf.String())
	}
}
