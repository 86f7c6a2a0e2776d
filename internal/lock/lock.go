// Package lock keeps two wikigen runs from rewriting the same wiki checkout
// at once.
package lock

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bedrock-oss/wikigen/internal/config"
)

// FileName is the lock file created in the wiki root.
const FileName = ".wikigen.lock"

// DefaultTTL bounds how long a lock left behind by a crashed run blocks others.
const DefaultTTL = 30 * time.Minute

var ErrActiveLock = errors.New("lock already active")

// Info represents lock metadata stored on disk.
type Info struct {
	Command    string    `json:"command"`
	PID        int       `json:"pid"`
	Host       string    `json:"host"`
	StartedAt  time.Time `json:"started_at"`
	TTLMinutes int       `json:"ttl_minutes"`
}

// ExpiresAt returns the timestamp when the lock expires.
func (i Info) ExpiresAt() time.Time {
	return i.StartedAt.Add(time.Duration(i.TTLMinutes) * time.Minute)
}

// Expired indicates whether the lock TTL has elapsed at now.
func (i Info) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt())
}

// Manager orchestrates lock operations.
type Manager struct {
	opts *config.Options
	log  *logrus.Entry
	now  func() time.Time
}

// NewManager constructs a lock manager.
func NewManager(opts *config.Options) *Manager {
	return &Manager{
		opts: opts,
		log:  opts.Logger().WithField("component", "lock"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Path returns the on-disk path to the lock file.
func (m *Manager) Path() string {
	return filepath.Join(m.opts.RootDir, FileName)
}

// Load retrieves lock information if present.
func (m *Manager) Load() (*Info, error) {
	// #nosec G304 -- lock file path is constructed via controlled configuration
	data, err := os.ReadFile(m.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse lock file: %w", err)
	}
	return &info, nil
}

// Acquire takes the wiki lock for command and returns the function that
// releases it. An expired or unreadable lock is replaced. Dry runs never
// touch the lock since they write nothing.
func (m *Manager) Acquire(command string, ttl time.Duration) (func() error, error) {
	if ttl < time.Minute {
		return nil, fmt.Errorf("ttl must be at least one minute")
	}
	if m.opts.DryRun {
		m.log.WithFields(logrus.Fields{
			"action":  "lock",
			"command": command,
			"dryRun":  true,
		}).Info("Skipping lock in dry-run mode")
		return func() error { return nil }, nil
	}

	host, _ := os.Hostname()
	info := Info{
		Command:    command,
		PID:        os.Getpid(),
		Host:       host,
		StartedAt:  m.now(),
		TTLMinutes: int(ttl / time.Minute),
	}
	payload, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		err := m.create(payload)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) || attempt > 0 {
			return nil, err
		}
		existing, lerr := m.Load()
		if lerr == nil && existing != nil && !existing.Expired(m.now()) {
			return nil, fmt.Errorf("%w: %s (pid %d on %s) since %s",
				ErrActiveLock, existing.Command, existing.PID, existing.Host, existing.StartedAt.Format(time.RFC3339))
		}
		m.log.WithField("path", m.Path()).Warn("Replacing stale lock")
		if err := os.Remove(m.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	m.log.WithFields(logrus.Fields{
		"action":  "lock",
		"command": command,
		"ttl":     info.TTLMinutes,
	}).Info("Lock acquired")
	return m.release, nil
}

func (m *Manager) create(payload []byte) error {
	// #nosec G304 -- lock file path is constructed via controlled configuration
	f, err := os.OpenFile(m.Path(), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(payload); err != nil {
		// #nosec G104 -- cleanup best-effort after a failed write
		f.Close()
		// #nosec G104 -- cleanup best-effort after a failed write
		os.Remove(m.Path())
		return fmt.Errorf("failed to write lock file: %w", err)
	}
	return f.Close()
}

func (m *Manager) release() error {
	if err := os.Remove(m.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	m.log.WithField("action", "unlock").Info("Lock released")
	return nil
}
