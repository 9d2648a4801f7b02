package timeouts

import (
	"context"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	Reset()
	if Ping() != DefaultPing || Short() != DefaultShort || Medium() != DefaultMedium || Sweep() != DefaultSweep {
		t.Errorf("Current() = %+v, want defaults", Current())
	}
}

func TestConfigure_IgnoresZero(t *testing.T) {
	defer Reset()
	Configure(Config{Medium: 3 * time.Second})

	if Medium() != 3*time.Second {
		t.Errorf("Medium() = %v, want 3s", Medium())
	}
	if Short() != DefaultShort {
		t.Errorf("Short() = %v, want default %v", Short(), DefaultShort)
	}
}

func TestWithTimeout(t *testing.T) {
	defer Reset()
	Configure(Config{Short: time.Minute})

	ctx, cancel := WithTimeout(context.Background(), Short)
	defer cancel()
	dl, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if left := time.Until(dl); left <= 50*time.Second || left > time.Minute {
		t.Errorf("deadline in %v, want about 1m", left)
	}
}
