package main

import (
	"strconv"
	"testing"
	"time"
)

func TestEnvValue(t *testing.T) {
	t.Setenv("TEST_DURATION", "2s")
	if got := envValue("TEST_DURATION", time.Second, time.ParseDuration); got != 2*time.Second {
		t.Errorf("duration = %v, want 2s", got)
	}
	t.Setenv("TEST_DURATION", "notaduration")
	if got := envValue("TEST_DURATION", 3*time.Second, time.ParseDuration); got != 3*time.Second {
		t.Errorf("malformed duration = %v, want fallback 3s", got)
	}

	t.Setenv("TEST_INT", "42")
	if got := envValue("TEST_INT", 7, strconv.Atoi); got != 42 {
		t.Errorf("int = %d, want 42", got)
	}
	if got := envValue("TEST_INT_UNSET", 9, strconv.Atoi); got != 9 {
		t.Errorf("unset int = %d, want 9", got)
	}

	cases := []struct {
		val      string
		fallback bool
		want     bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"false", true, false},
		{"notabool", true, true},
		{"", false, false},
	}
	for _, c := range cases {
		t.Setenv("TEST_BOOL", c.val)
		if got := envValue("TEST_BOOL", c.fallback, strconv.ParseBool); got != c.want {
			t.Errorf("bool %q (fallback %v) = %v, want %v", c.val, c.fallback, got, c.want)
		}
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	if got := getEnv("TEST_STRING", "fallback"); got != "value" {
		t.Errorf("getEnv = %q, want value", got)
	}
	if got := getEnv("TEST_STRING_UNSET", "fallback"); got != "fallback" {
		t.Errorf("getEnv fallback = %q, want fallback", got)
	}
}

func TestNewAppFromEnv(t *testing.T) {
	t.Setenv(envPersistSessions, "true")
	t.Setenv(envSessionTimeout, "45m")
	t.Setenv(envRateLimitBurst, "bogus")
	t.Setenv(envDataFile, "custom.csv")
	app := newAppFromEnv()
	if !app.PersistSessions || app.SessionTimeout != 45*time.Minute {
		t.Errorf("sessions = %v, %v", app.PersistSessions, app.SessionTimeout)
	}
	if app.RateLimitBurst != 10 {
		t.Errorf("malformed burst should fall back to 10, got %d", app.RateLimitBurst)
	}
	if app.DataFile != "custom.csv" || app.GameSessions == nil || app.LimiterMap == nil {
		t.Errorf("app = %+v", app)
	}
}
