package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/stdmath/errors"
)

// EnvPrefix prefixes every environment override, e.g. STDMATH_MATH_TYPE.
const EnvPrefix = "STDMATH"

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver handles finding config and env files.
type Resolver struct {
	FileSystem FileSystem
	// Dirs are searched in order. Defaults to "." and "./config".
	Dirs []string
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns explicit paths if provided, otherwise searches for
// stdmath.yml and .env.
func (r *Resolver) ResolveFiles(opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.find("stdmath.yml", "stdmath.yaml")
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.find(".env")
	}
	return resolved
}

func (r *Resolver) find(names ...string) string {
	dirs := r.Dirs
	if len(dirs) == 0 {
		dirs = []string{".", "config"}
	}
	for _, dir := range dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if r.FileSystem.Exists(path) {
				return path
			}
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
	SearchDirs []string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path. Unlike a searched file,
// an explicit one must exist.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithSearchDirs replaces the directories searched for stdmath.yml and .env.
func WithSearchDirs(dirs ...string) LoaderOption {
	return func(lc *LoaderConfig) { lc.SearchDirs = dirs }
}

// Load builds the configuration from defaults, stdmath.yml, .env, and
// STDMATH_ environment variables, in increasing order of precedence. The
// result has defaults applied and is validated.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	if lc.ConfigFile != "" && !lc.FileSystem.Exists(lc.ConfigFile) {
		return nil, errors.InvalidInput("config", fmt.Sprintf("file %s does not exist", lc.ConfigFile))
	}

	resolver := &Resolver{FileSystem: lc.FileSystem, Dirs: lc.SearchDirs}
	files := resolver.ResolveFiles(lc)

	cfg, err := loadFromResolvedFiles(files, lc.FileSystem)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromResolvedFiles(files ResolvedFiles, fs FileSystem) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// 1. .env first so its values are visible as environment variables.
	// godotenv never overrides variables that are already set.
	if files.EnvFile != "" && fs.Exists(files.EnvFile) {
		if err := fs.LoadEnv(files.EnvFile); err != nil {
			return nil, errors.InvalidInput("env_file", err.Error()).WithCause(err)
		}
	}

	// 2. YAML on top of defaults.
	if files.ConfigFile != "" {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.InvalidInput("config", fmt.Sprintf("reading %s", files.ConfigFile)).WithCause(err)
		}
	}

	// 3. STDMATH_SECTION_KEY overrides section.key.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.InvalidInput("config", "failed to decode configuration").WithCause(err)
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys absent
// from the file.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("name", d.Name)
	v.SetDefault("environment", d.Environment)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.no_color", d.Logging.NoColor)
	v.SetDefault("logging.timestamp", d.Logging.Timestamp)
	v.SetDefault("logging.caller", d.Logging.Caller)
	v.SetDefault("math.type", d.Math.Type)
	v.SetDefault("math.format", d.Math.Format)
	v.SetDefault("math.repetition", d.Math.Repetition)
	v.SetDefault("telemetry.enabled", d.Telemetry.Enabled)
	v.SetDefault("telemetry.endpoint", d.Telemetry.Endpoint)
	v.SetDefault("telemetry.insecure", d.Telemetry.Insecure)
	v.SetDefault("telemetry.sample_rate", d.Telemetry.SampleRate)
	v.SetDefault("telemetry.interval", d.Telemetry.Interval)
}
