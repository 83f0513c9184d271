package fm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/logandonley/fontmatch/internal/platform"
)

// Manager handles font operations
type Manager interface {
	// Register installs a font file as a platform font resource
	Register(path string) error

	// Unregister removes one registration of a font file
	Unregister(path string) error

	// FindBestMatch returns the font the platform would select for req
	FindBestMatch(req Request) (Candidate, bool, error)

	// Rank returns every candidate for req, best first
	Rank(req Request) ([]Scored, error)

	// Resolve returns the file backing a selected candidate
	Resolve(c Candidate) (string, error)

	// MatchFile selects a font for req and resolves its file
	MatchFile(req Request) (string, bool, error)

	// RegisterArchive unpacks a zip of fonts and registers each one
	RegisterArchive(path string) ([]string, error)

	// Registered lists the fonts registered through this manager
	Registered() []RegisteredFont

	// RegisterFromConfig registers the fonts listed in a config file
	RegisterFromConfig(reader io.Reader) error

	// Close releases every registration still held
	Close() error
}

// DefaultManager provides the standard font management implementation
type DefaultManager struct {
	platform  platform.Manager
	resources *ResourceManager
	matcher   *Matcher
	resolver  *Resolver
	log       logr.Logger

	mu     sync.Mutex
	staged []string // directories holding unpacked archives
}

var _ Manager = (*DefaultManager)(nil)

// Option configures a DefaultManager.
type Option func(*DefaultManager)

// WithLogger sets the logger used by the manager and its components.
func WithLogger(log logr.Logger) Option {
	return func(m *DefaultManager) {
		m.log = log
	}
}

// NewManager creates a new font manager using platform-specific settings
func NewManager(opts ...Option) *DefaultManager {
	m := &DefaultManager{log: logr.Discard()}
	for _, opt := range opts {
		opt(m)
	}
	return m.init(platform.New(m.log.WithName("platform")))
}

// NewManagerWithPlatform creates a manager on top of the given platform
// services.
func NewManagerWithPlatform(p platform.Manager, opts ...Option) *DefaultManager {
	m := &DefaultManager{log: logr.Discard()}
	for _, opt := range opts {
		opt(m)
	}
	return m.init(p)
}

func (m *DefaultManager) init(p platform.Manager) *DefaultManager {
	m.platform = p
	m.resources = NewResourceManager(p, p, m.log.WithName("resources"))
	m.matcher = NewMatcher(p, m.resources, m.log.WithName("match"))
	m.resolver = NewResolver(p, m.log.WithName("resolve"))
	return m
}

func (m *DefaultManager) Register(path string) error {
	return m.resources.Register(path)
}

func (m *DefaultManager) Unregister(path string) error {
	return m.resources.Unregister(path)
}

func (m *DefaultManager) FindBestMatch(req Request) (Candidate, bool, error) {
	return m.matcher.FindBestMatch(req)
}

func (m *DefaultManager) Rank(req Request) ([]Scored, error) {
	return m.matcher.Rank(req)
}

func (m *DefaultManager) Resolve(c Candidate) (string, error) {
	return m.resolver.Resolve(c)
}

// MatchFile selects the best candidate for req and resolves its backing
// file. ok is false when no font of the family is installed.
func (m *DefaultManager) MatchFile(req Request) (path string, ok bool, err error) {
	best, ok, err := m.matcher.FindBestMatch(req)
	if err != nil || !ok {
		return "", ok, err
	}
	path, err = m.resolver.Resolve(best)
	if err != nil {
		return "", true, err
	}
	return path, true, nil
}

func (m *DefaultManager) Registered() []RegisteredFont {
	return m.resources.Entries()
}

// Order returns the installation order of a font registered through m.
func (m *DefaultManager) Order(path string) (uint64, bool) {
	return m.resources.Order(path)
}

// Count returns the outstanding registrations of path.
func (m *DefaultManager) Count(path string) int {
	return m.resources.Count(path)
}

// RegisterArchive unpacks the fonts of a zip archive into a private
// directory and registers each of them. It returns the registered paths.
// The directory is removed by Close.
func (m *DefaultManager) RegisterArchive(path string) ([]string, error) {
	dir, err := os.MkdirTemp("", "fontmatch-*")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}

	files, err := extractFonts(path, dir)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("unpacking %s: %w", path, err)
	}

	m.mu.Lock()
	m.staged = append(m.staged, dir)
	m.mu.Unlock()

	var registered []string
	var errs []error
	for _, f := range files {
		if err := m.Register(f); err != nil {
			errs = append(errs, err)
			continue
		}
		registered = append(registered, f)
	}
	m.log.V(1).Info("registered font archive", "archive", path, "fonts", len(registered))
	return registered, errors.Join(errs...)
}

// Close releases every registration still held and removes unpacked
// archives.
func (m *DefaultManager) Close() error {
	errs := []error{m.resources.Close()}

	m.mu.Lock()
	staged := m.staged
	m.staged = nil
	m.mu.Unlock()

	for _, dir := range staged {
		if err := os.RemoveAll(dir); err != nil {
			errs = append(errs, fmt.Errorf("removing %s: %w", dir, err))
		}
	}
	return errors.Join(errs...)
}

// systemIndexer is implemented by platforms whose font set has to be
// loaded from the font directories.
type systemIndexer interface {
	AddSystemDir(dir string) (int, error)
}

// LoadSystemFonts makes the fonts installed in the system and user font
// directories visible to matching. These fonts are not owned by the
// manager and have installation order 0. Platforms that already expose
// installed fonts report 0.
func (m *DefaultManager) LoadSystemFonts() (int, error) {
	idx, ok := m.platform.(systemIndexer)
	if !ok {
		return 0, nil
	}

	paths, err := m.platform.GetFontPaths()
	if err != nil {
		return 0, fmt.Errorf("getting font paths: %w", err)
	}

	total := 0
	for _, dir := range []string{paths.SystemDir, paths.UserDir} {
		n, err := idx.AddSystemDir(dir)
		total += n
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return total, fmt.Errorf("loading fonts from %s: %w", dir, err)
		}
		m.log.V(1).Info("loaded system fonts", "dir", dir, "count", n)
	}
	return total, nil
}

// ParseFontSpec parses one line of a font list. It returns an empty path
// for blank lines and comments.
func ParseFontSpec(line string) (string, error) {
	// Skip empty lines and comments
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", nil
	}

	if q := line[0]; q == '"' || q == '\'' {
		if len(line) < 2 || line[len(line)-1] != q {
			return "", fmt.Errorf("unterminated quote in %q", line)
		}
		line = strings.TrimSpace(line[1 : len(line)-1])
		if line == "" {
			return "", fmt.Errorf("empty quoted font path")
		}
	}

	return line, nil
}

// RegisterFromConfig registers every font file listed in reader, one path
// per line. Lines naming a .zip archive are unpacked with RegisterArchive.
// Failing lines do not stop the others; their errors are joined.
func (m *DefaultManager) RegisterFromConfig(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	var errs []error

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		path, err := ParseFontSpec(scanner.Text())
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		if path == "" {
			continue
		}

		if IsArchive(path) {
			_, err = m.RegisterArchive(path)
		} else {
			err = m.Register(path)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: registering %s: %w", lineNo, path, err))
		}
	}

	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("reading config: %w", err))
	}

	return errors.Join(errs...)
}
