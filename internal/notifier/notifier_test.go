package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/doselog/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (p *mockProcess) Pid() int           { return p.pid }
func (p *mockProcess) PPid() int          { return 0 }
func (p *mockProcess) Executable() string { return p.executable }

func withConfigDir(t *testing.T, dir string) {
	t.Helper()
	old := userConfigDirFunc
	userConfigDirFunc = func() (string, error) { return dir, nil }
	t.Cleanup(func() { userConfigDirFunc = old })
}

func withProcess(t *testing.T, fn func(int) (ps.Process, error)) {
	t.Helper()
	old := findProcessFunc
	findProcessFunc = fn
	t.Cleanup(func() { findProcessFunc = old })
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	withConfigDir(t, tempDir)
	trayDir := filepath.Join(tempDir, constants.TrayAppIdentifier)

	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != trayDir {
		t.Errorf("default dir = %s, want %s", dir, trayDir)
	}

	if err := os.MkdirAll(trayDir, 0o755); err != nil {
		t.Fatal(err)
	}
	settings := filepath.Join(trayDir, "settings.json")

	customDir := "/custom/doselog/dir"
	if err := os.WriteFile(settings, []byte(fmt.Sprintf(`{"settings": {"lockfile_dir": %q}}`, customDir)), 0o644); err != nil {
		t.Fatal(err)
	}
	if dir, _ := GetTrayAppConfigDir(); dir != customDir {
		t.Errorf("custom dir = %s, want %s", dir, customDir)
	}

	if err := os.WriteFile(settings, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if dir, _ := GetTrayAppConfigDir(); dir != trayDir {
		t.Errorf("malformed settings dir = %s, want %s", dir, trayDir)
	}
}

func TestParseTrayLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    trayLock
		wantErr string
	}{
		{name: "valid", content: "8080|12345|s3cret\n", want: trayLock{Port: 8080, PID: 12345, Secret: "s3cret"}},
		{name: "two parts", content: "8080|12345", wantErr: "malformed"},
		{name: "garbage", content: "invalid", wantErr: "malformed"},
		{name: "empty secret", content: "8080|12345|", wantErr: "secret"},
		{name: "empty port", content: "|12345|abc", wantErr: "port"},
		{name: "port out of range", content: "99999|12345|abc", wantErr: "outside valid range"},
		{name: "bad pid", content: "8080|abc|abc", wantErr: "process ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTrayLock(tt.content)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("parseTrayLock() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseTrayLock() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadTrayLockMissing(t *testing.T) {
	_, err := readTrayLock(filepath.Join(t.TempDir(), constants.NotifierLockfileName))
	if !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("readTrayLock() error = %v, want ErrTrayNotRunning", err)
	}
}

func TestVerifyTrayProcess(t *testing.T) {
	tests := []struct {
		name    string
		find    func(int) (ps.Process, error)
		wantErr bool
	}{
		{name: "not running", find: func(int) (ps.Process, error) { return nil, nil }, wantErr: true},
		{name: "lookup error", find: func(int) (ps.Process, error) { return nil, errors.New("boom") }, wantErr: true},
		{name: "wrong executable", find: func(pid int) (ps.Process, error) {
			return &mockProcess{pid: pid, executable: "other-app"}, nil
		}, wantErr: true},
		{name: "tray", find: func(pid int) (ps.Process, error) {
			return &mockProcess{pid: pid, executable: "doselog-tray"}, nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withProcess(t, tt.find)
			err := verifyTrayProcess(42)
			if (err != nil) != tt.wantErr {
				t.Errorf("verifyTrayProcess() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func newTrayServer(t *testing.T, secret string, hits *atomic.Int32) (*httptest.Server, int) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get(SecretHeader) != secret {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Unauthorized"))
			return
		}
		var payload WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatal(err)
	}
	return server, port
}

func TestNotify(t *testing.T) {
	var hits atomic.Int32
	_, port := newTrayServer(t, "test-secret", &hits)

	configDir := t.TempDir()
	withConfigDir(t, configDir)
	withProcess(t, func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "doselog-tray"}, nil
	})

	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0o755); err != nil {
		t.Fatal(err)
	}
	lock := fmt.Sprintf("%d|%d|test-secret", port, os.Getpid())
	if err := os.WriteFile(filepath.Join(trayDir, constants.NotifierLockfileName), []byte(lock), 0o600); err != nil {
		t.Fatal(err)
	}

	n := New()
	if err := n.Notify("Refill needed for Lisinopril"); err != nil {
		t.Fatalf("Notify() failed: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 request, got %d", hits.Load())
	}

	hits.Store(0)
	if err := n.Notify("fail"); err == nil {
		t.Fatal("expected error when the tray rejects the notification")
	}
	if int(hits.Load()) != constants.NotifyMaxRetries {
		t.Errorf("expected %d attempts, got %d", constants.NotifyMaxRetries, hits.Load())
	}
}

func TestNotifyWrongSecret(t *testing.T) {
	var hits atomic.Int32
	_, port := newTrayServer(t, "test-secret", &hits)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	n := New()
	err := n.send(ctx, trayLock{Port: port, PID: 1, Secret: "wrong"}, WebhookPayload{Text: "hello"})
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("send() error = %v, want 401", err)
	}
}

func TestNotifyTrayNotRunning(t *testing.T) {
	withConfigDir(t, t.TempDir())
	if err := New().Notify("hello"); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("Notify() error = %v, want ErrTrayNotRunning", err)
	}
}
