package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/go-logr/logr"
)

type linuxManager struct {
	*Catalog
	cacheCmd string
	log      logr.Logger

	mu      sync.Mutex
	running bool
	pending bool
	wg      sync.WaitGroup
}

func newLinuxManager(log logr.Logger) Manager {
	return &linuxManager{
		Catalog:  NewCatalog(ReadFaces, log),
		cacheCmd: "fc-cache",
		log:      log,
	}
}

func (m *linuxManager) GetFontPaths() (FontPaths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return FontPaths{}, fmt.Errorf("getting user home directory: %w", err)
	}

	paths := FontPaths{
		SystemDir: "/usr/local/share/fonts",
		UserDir:   filepath.Join(homeDir, ".local/share/fonts"),
	}

	return paths, nil
}

// NotifyFontChange asks fontconfig to rescan, so that other processes
// observe the new font set. It returns once the rescan has started. While
// one is running further changes are folded into a single follow-up run.
func (m *linuxManager) NotifyFontChange() error {
	if _, err := exec.LookPath(m.cacheCmd); err != nil {
		return fmt.Errorf("updating font cache: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		m.pending = true
		return nil
	}
	return m.startLocked()
}

func (m *linuxManager) startLocked() error {
	cmd := exec.Command(m.cacheCmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("running %s: %w", m.cacheCmd, err)
	}
	m.running = true
	m.wg.Add(1)
	go m.reap(cmd)
	return nil
}

func (m *linuxManager) reap(cmd *exec.Cmd) {
	defer m.wg.Done()
	if err := cmd.Wait(); err != nil {
		m.log.V(1).Info("font cache refresh failed", "command", m.cacheCmd, "error", err.Error())
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
	if !m.pending {
		return
	}
	m.pending = false
	if err := m.startLocked(); err != nil {
		m.log.V(1).Info("font cache refresh failed", "command", m.cacheCmd, "error", err.Error())
	}
}

// wait blocks until no refresh is running or queued.
func (m *linuxManager) wait() {
	m.wg.Wait()
}
