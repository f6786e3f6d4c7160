package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/logger"
)

// DefaultSearchDirs are the directories searched when none are given.
var DefaultSearchDirs = []string{".", "config"}

// FileSystem is the file access the loader needs.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

type osFileSystem struct{}

func (osFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadEnv loads path with godotenv. Variables already set are kept.
func (osFileSystem) LoadEnv(path string) error { return godotenv.Load(path) }

// LoaderConfig holds the loader's dependencies and overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	// ConfigFile skips the search for a YAML file.
	ConfigFile string
	// EnvFile skips the search for .env files.
	EnvFile string
	// SearchDirs replaces DefaultSearchDirs.
	SearchDirs []string
	// Environment selects .env.<environment>. Empty falls back to the
	// ENVIRONMENT variable (with EnvPrefix).
	Environment string
	// EnvPrefix is prepended to every environment variable name.
	EnvPrefix string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets the filesystem used to find and load files.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit YAML file.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithSearchDirs sets the directories searched for config and .env files.
func WithSearchDirs(dirs ...string) LoaderOption {
	return func(lc *LoaderConfig) { lc.SearchDirs = dirs }
}

// WithEnvironment selects the .env.<env> file to load.
func WithEnvironment(env string) LoaderOption {
	return func(lc *LoaderConfig) { lc.Environment = env }
}

// WithEnvPrefix namespaces environment variables, e.g. ORDERS_LOGGING_LEVEL.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

func newLoaderConfig(opts []LoaderOption) LoaderConfig {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = osFileSystem{}
	}
	if len(lc.SearchDirs) == 0 {
		lc.SearchDirs = DefaultSearchDirs
	}
	if lc.Environment == "" {
		lc.Environment = os.Getenv(EnvVar(lc.EnvPrefix, "environment"))
	}
	return lc
}

// Resolver finds the files LoadConfig reads.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles lists the files to load. EnvFiles are in load order; the
// first file to set a variable wins.
type ResolvedFiles struct {
	ConfigFile string
	EnvFiles   []string
}

// Resolve picks the YAML file and the .env files for name.
//
// The YAML file is the first of <name>.yml, <name>.yaml, config.yml and
// config.yaml found, each name tried in every search directory before the
// next. .env files are collected per directory: .env.<environment> and then
// .env.
func (r *Resolver) Resolve(name string, lc LoaderConfig) ResolvedFiles {
	dirs := lc.SearchDirs
	if len(dirs) == 0 {
		dirs = DefaultSearchDirs
	}

	files := ResolvedFiles{ConfigFile: lc.ConfigFile}
	if files.ConfigFile == "" {
		files.ConfigFile = r.firstExisting(configCandidates(name, dirs))
	}

	if lc.EnvFile != "" {
		files.EnvFiles = []string{lc.EnvFile}
		return files
	}
	for _, path := range envCandidates(lc.Environment, dirs) {
		if r.FileSystem.Exists(path) {
			files.EnvFiles = append(files.EnvFiles, path)
		}
	}
	return files
}

func (r *Resolver) firstExisting(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

func configCandidates(name string, dirs []string) []string {
	bases := []string{"config"}
	if name != "" && name != "config" {
		bases = []string{name, "config"}
	}
	var out []string
	for _, base := range bases {
		for _, dir := range dirs {
			out = append(out,
				filepath.Join(dir, base+".yml"),
				filepath.Join(dir, base+".yaml"),
			)
		}
	}
	return out
}

func envCandidates(environment string, dirs []string) []string {
	var out []string
	for _, dir := range dirs {
		if environment != "" {
			out = append(out, filepath.Join(dir, ".env."+environment))
		}
		out = append(out, filepath.Join(dir, ".env"))
	}
	return out
}

// LoadConfig decodes configuration for name into cfg, which must point to
// a struct. Values come from, highest first: the process environment, the
// resolved .env files, and the YAML file. Every mapstructure key of cfg
// can be set from the environment as its upper-cased path joined with
// underscores (telemetry.sample_rate is TELEMETRY_SAMPLE_RATE).
func LoadConfig(name string, cfg any, opts ...LoaderOption) error {
	t := reflect.TypeOf(cfg)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return errors.InvalidArgument("cfg", "must be a pointer to a struct")
	}

	lc := newLoaderConfig(opts)
	files := (&Resolver{FileSystem: lc.FileSystem}).Resolve(name, lc)
	log := logger.Get("config")

	for _, f := range files.EnvFiles {
		if !lc.FileSystem.Exists(f) {
			continue
		}
		if err := lc.FileSystem.LoadEnv(f); err != nil {
			log.Warn("failed to load env file", logger.Fields("file", f, logger.FieldError, err.Error()))
		}
	}

	v := viper.New()
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", files.ConfigFile, err)
		}
	}

	for _, key := range settingKeys(t.Elem(), "") {
		if err := v.BindEnv(key, EnvVar(lc.EnvPrefix, key)); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config for %s: %w", name, err)
	}

	log.Debug("config loaded", logger.Fields("file", files.ConfigFile, "env_files", files.EnvFiles))
	return nil
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(prefix, key string) string {
	name := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if prefix == "" {
		return name
	}
	return strings.ToUpper(prefix) + "_" + name
}

var timeType = reflect.TypeOf(time.Time{})

// settingKeys lists the dotted mapstructure paths of the leaf fields of t.
func settingKeys(t reflect.Type, parent string) []string {
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, opts, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" || (!f.IsExported() && !f.Anonymous) {
			continue
		}

		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		switch ft.Kind() {
		case reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
			continue
		}

		nested := ft.Kind() == reflect.Struct && ft != timeType
		if nested && strings.Contains(","+opts+",", ",squash,") {
			keys = append(keys, settingKeys(ft, parent)...)
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		key := name
		if parent != "" {
			key = parent + "." + name
		}
		if nested {
			keys = append(keys, settingKeys(ft, key)...)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}
