package winium

import (
	"testing"
	"time"

	"github.com/mj1618/winium-desktop/internal/platform"
)

func TestCapabilities(t *testing.T) {
	caps := Capabilities(platform.SessionOptions{
		App:         `C:\Program Files\Ledger\ledger.exe`,
		Args:        "--profile test",
		LaunchDelay: 3 * time.Second,
		Attach:      true,
	})
	if caps["app"] != `C:\Program Files\Ledger\ledger.exe` {
		t.Errorf("app = %v", caps["app"])
	}
	if caps["args"] != "--profile test" {
		t.Errorf("args = %v", caps["args"])
	}
	if caps["launchDelay"] != 3 {
		t.Errorf("launchDelay = %v, want 3", caps["launchDelay"])
	}
	if caps["debugConnectToRunningApp"] != true {
		t.Errorf("debugConnectToRunningApp = %v, want true", caps["debugConnectToRunningApp"])
	}
}

func TestCapabilities_Minimal(t *testing.T) {
	caps := Capabilities(platform.SessionOptions{App: `C:\app.exe`})
	for _, k := range []string{"args", "launchDelay", "debugConnectToRunningApp"} {
		if _, ok := caps[k]; ok {
			t.Errorf("unexpected capability %q", k)
		}
	}
}

func TestInitRegistersBackend(t *testing.T) {
	if platform.NewDriverFunc == nil {
		t.Fatal("winium backend did not register")
	}
}
