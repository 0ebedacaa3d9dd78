// Package notifier forwards alerts to the doselog desktop tray app, which
// listens on a loopback port advertised through a lockfile.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

var ErrTrayNotRunning = errors.New("doselog-tray is not running")

// SecretHeader carries the shared secret from the lockfile.
const SecretHeader = "X-Doselog-Secret"

type Notifier struct {
	client *http.Client
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// trayLock is the parsed "port|pid|secret" lockfile written by the tray app.
type trayLock struct {
	Port   int
	PID    int
	Secret string
}

func New() *Notifier {
	return &Notifier{client: &http.Client{Timeout: 2 * time.Second}}
}

// Notify shows text as a desktop notification. Transient send failures are retried.
func (n *Notifier) Notify(text string) error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	lock, err := readTrayLock(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}
	if err := verifyTrayProcess(lock.PID); err != nil {
		return err
	}

	payload := WebhookPayload{Text: text, DurationMs: constants.NotificationDurationMs}

	var lastErr error
	for attempt := 1; attempt <= constants.NotifyMaxRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		lastErr = n.send(ctx, lock, payload)
		cancel()
		if lastErr == nil {
			return nil
		}
		logger.Debug("notification attempt failed", "attempt", attempt, "error", lastErr)
		time.Sleep(constants.NotifyRetryDelay)
	}
	return fmt.Errorf("failed to send notification after %d attempts: %w", constants.NotifyMaxRetries, lastErr)
}

// GetTrayAppConfigDir returns the directory holding the tray app's lockfile.
// The tray's settings.json may redirect it with settings.lockfile_dir.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}

	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err != nil {
		logger.Warn("ignoring malformed tray settings", "error", err)
		return trayConfigDir, nil
	}
	if dir := store.Settings.LockfileDir; dir != nil && *dir != "" {
		return *dir, nil
	}
	return trayConfigDir, nil
}

func readTrayLock(path string) (trayLock, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return trayLock{}, ErrTrayNotRunning
	}
	return parseTrayLock(string(content))
}

func parseTrayLock(content string) (trayLock, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return trayLock{}, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return trayLock{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return trayLock{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return trayLock{}, errors.New("invalid process ID in lockfile")
	}

	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return trayLock{}, errors.New("secret in lockfile is empty")
	}

	return trayLock{Port: port, PID: pid, Secret: secret}, nil
}

// verifyTrayProcess guards against a stale lockfile whose PID was reused.
func verifyTrayProcess(pid int) error {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, process.Executable())
	}
	return nil
}

func (n *Notifier) send(ctx context.Context, lock trayLock, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://127.0.0.1:%d", lock.Port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SecretHeader, lock.Secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
}
