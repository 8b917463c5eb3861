package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// ctxKeyOptions is used to store options within a cobra command context.
type ctxKeyOptions struct{}

// Options contains global flags shared by all commands.
type Options struct {
	JSONOutput bool
	Verbose    bool
	LogFile    string
	ConfigPath string
	Settings   Settings

	logger   *logrus.Logger
	logClose func() error
}

var (
	optionsMu sync.RWMutex
	current   *Options
)

// New creates a new Options instance populated with defaults.
func New() *Options {
	return &Options{Settings: DefaultSettings()}
}

// Init populates options, loads the config file and configures logging.
func (o *Options) Init(jsonOut, verbose bool, logFile, configPath string) error {
	o.JSONOutput = jsonOut
	o.Verbose = verbose
	o.LogFile = logFile

	if configPath == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			configPath = DefaultFile
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to inspect %s: %w", DefaultFile, err)
		}
	}
	if configPath != "" {
		settings, err := LoadSettings(configPath)
		if err != nil {
			return err
		}
		o.Settings = settings
	}
	o.ConfigPath = configPath

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

	if configPath != "" {
		logger.WithField("component", "config").WithField("path", configPath).Info("loaded config file")
	}
	return nil
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
