package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestNew_Defaults(t *testing.T) {
	log, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) failed: %v", err)
	}
	log.Info("default logger works", zap.String("test", "value"))
}

func TestNew_MergesZeroValues(t *testing.T) {
	log, err := New(&Config{Level: "debug"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	log.Debug("debug enabled")
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"invalid level", &Config{Level: "verbose", Encoding: "json"}},
		{"invalid encoding", &Config{Level: "info", Encoding: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"valid json", &Config{Level: "info", Encoding: "json"}, false},
		{"valid console", &Config{Level: "debug", Encoding: "console"}, false},
		{"bad level", &Config{Level: "loud", Encoding: "json"}, true},
		{"bad encoding", &Config{Level: "info", Encoding: "text"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Debug("discarded")
	log.Error("also discarded")
	if err := log.Sync(); err != nil {
		t.Errorf("Sync on nop logger: %v", err)
	}
}

func TestDefault_SetDefault(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	nop := Nop()
	SetDefault(nop)
	if Default() != nop {
		t.Error("Default did not return the injected logger")
	}
}
