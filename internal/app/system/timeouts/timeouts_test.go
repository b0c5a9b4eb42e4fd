package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaults(t *testing.T) {
	Reset()
	if Ping() != DefaultPing || Read() != DefaultRead || List() != DefaultList || Write() != DefaultWrite {
		t.Fatalf("unexpected defaults: %+v", Current())
	}
}

func TestConfigure_IgnoresZero(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Configure(Config{Read: 7 * time.Second})
	if Read() != 7*time.Second {
		t.Errorf("Read = %v, want 7s", Read())
	}
	if Write() != DefaultWrite {
		t.Errorf("Write = %v, want default", Write())
	}
}

func TestWithTimeout_LogsOnDeadline(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)

	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, log, "slow op")
	<-ctx.Done()
	cancel()

	if logs.Len() != 1 {
		t.Fatalf("expected 1 warning, got %d", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["operation"]; got != "slow op" {
		t.Errorf("operation = %v", got)
	}
}

func TestWithTimeout_QuietOnCancel(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	_, cancel := WithTimeout(context.Background(), time.Minute, zap.New(core), "fast op")
	cancel()
	if logs.Len() != 0 {
		t.Errorf("expected no warnings, got %d", logs.Len())
	}
}
