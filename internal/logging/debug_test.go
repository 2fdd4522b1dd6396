package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv("OPDASH_DEBUG", "")
	if DebugEnabled() {
		t.Error("DebugEnabled() should return false when OPDASH_DEBUG is empty")
	}

	t.Setenv("OPDASH_DEBUG", "1")
	if !DebugEnabled() {
		t.Error("DebugEnabled() should return true when OPDASH_DEBUG is set")
	}
}

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	t.Setenv("OPDASH_DEBUG", "")
	Debugf("hidden %s", "message")
	if buf.Len() != 0 {
		t.Errorf("Debugf wrote output with debug disabled: %q", buf.String())
	}

	t.Setenv("OPDASH_DEBUG", "1")
	SetOutput(&buf)
	Debugf("visible %s", "message")
	if !strings.Contains(buf.String(), "visible message") {
		t.Errorf("Debugf output = %q, want it to contain the message", buf.String())
	}
}

func TestDebugln(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("OPDASH_DEBUG", "1")
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	Debugln("status changed")
	if !strings.Contains(buf.String(), "status changed") {
		t.Errorf("Debugln output = %q", buf.String())
	}
}

func TestLogger_InfoAlwaysWritten(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("OPDASH_DEBUG", "")
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	Logger().Info("server started", "addr", "127.0.0.1:8080")
	if !strings.Contains(buf.String(), "addr=127.0.0.1:8080") {
		t.Errorf("Logger output = %q", buf.String())
	}
}
