package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// WikiPathFile names the file remembering the local wiki checkout between runs.
const WikiPathFile = "wiki_local_path.txt"

// DefaultConfigFile is the job configuration looked up in the working directory.
const DefaultConfigFile = "wikigen.yaml"

// ctxKeyOptions is used to store options within a cobra command context.
type ctxKeyOptions struct{}

// Options contains global flags shared by all commands.
type Options struct {
	RootDir    string
	ConfigPath string
	JSONOutput bool
	Verbose    bool
	DryRun     bool
	LogFile    string

	logger   *logrus.Logger
	logClose func() error
}

var (
	optionsMu sync.RWMutex
	current   *Options
)

// New creates a new Options instance populated with defaults.
func New() *Options {
	return &Options{}
}

// Init populates options and configures logging. An empty root falls back to
// the path stored in wiki_local_path.txt, then to the working directory.
func (o *Options) Init(root, configPath string, jsonOut, verbose, dry bool, logFile string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine current directory: %w", err)
	}
	if root == "" {
		remembered, err := readWikiPathFile(filepath.Join(cwd, WikiPathFile))
		if err != nil {
			return err
		}
		root = remembered
	}
	if root == "" {
		root = cwd
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve root path: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return fmt.Errorf("root path invalid: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path invalid: %s is not a directory", absRoot)
	}

	if configPath == "" {
		configPath = filepath.Join(cwd, DefaultConfigFile)
	}
	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	o.RootDir = absRoot
	o.ConfigPath = absConfig
	o.JSONOutput = jsonOut
	o.Verbose = verbose
	o.DryRun = dry
	o.LogFile = logFile

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if verbose {
		logger.SetLevel(logrus.InfoLevel)
		var output io.Writer = os.Stderr
		if logFile != "" {
			// #nosec G304 -- log file path provided via command flag
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			output = f
			o.logClose = f.Close
		}
		logger.SetOutput(output)
	} else {
		logger.SetLevel(logrus.WarnLevel)
		logger.SetOutput(io.Discard)
	}

	o.logger = logger
	SetCurrent(o)

	return nil
}

// readWikiPathFile returns the first non-empty line of path, or "" when the file is absent.
func readWikiPathFile(path string) (string, error) {
	// #nosec G304 -- fixed file name in the working directory
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", WikiPathFile, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", WikiPathFile, err)
	}
	return "", nil
}

// PagePath resolves a wiki page path relative to the root directory.
func (o *Options) PagePath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(o.RootDir, filepath.FromSlash(rel))
}

// RelPath returns path relative to the root directory using forward
// slashes. Paths outside the root are returned unchanged.
func (o *Options) RelPath(path string) string {
	rel, err := filepath.Rel(o.RootDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// SetCurrent stores the provided options as the globally accessible configuration.
func SetCurrent(o *Options) {
	optionsMu.Lock()
	defer optionsMu.Unlock()
	current = o
}

// Current retrieves the globally stored options.
func Current() (*Options, error) {
	optionsMu.RLock()
	defer optionsMu.RUnlock()
	if current == nil {
		return nil, fmt.Errorf("configuration not initialised")
	}
	return current, nil
}

// Close releases any resources held by options (e.g., log files).
func (o *Options) Close() error {
	if o.logClose != nil {
		return o.logClose()
	}
	return nil
}

// WithContext returns a new context with the options stored.
func (o *Options) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKeyOptions{}, o)
}

// FromContext extracts Options from command context.
func FromContext(ctx context.Context) (*Options, error) {
	if ctx == nil {
		return nil, fmt.Errorf("nil context provided")
	}
	if opts, ok := ctx.Value(ctxKeyOptions{}).(*Options); ok {
		return opts, nil
	}
	return Current()
}

// Logger exposes the configured logger. Options that were never initialised
// get a logger that discards everything.
func (o *Options) Logger() *logrus.Logger {
	if o.logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		o.logger = logger
	}
	return o.logger
}
