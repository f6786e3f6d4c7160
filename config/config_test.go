package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/lazykit/errors"
)

func TestSettingsApplyDefaults(t *testing.T) {
	var s Settings
	s.ApplyDefaults()

	if s.Environment != "development" {
		t.Errorf("environment = %q, want development", s.Environment)
	}
	if s.Logging.Level != "info" || s.Logging.Format != "console" {
		t.Errorf("unexpected logging defaults %+v", s.Logging)
	}
	if s.Telemetry.Exporter != ExporterOTLP || s.Telemetry.Endpoint != "localhost:4318" {
		t.Errorf("unexpected telemetry defaults %+v", s.Telemetry)
	}
	if s.Telemetry.Interval != 15*time.Second || s.Telemetry.SampleRate != 1.0 {
		t.Errorf("unexpected telemetry defaults %+v", s.Telemetry)
	}
}

func TestSettingsValidate(t *testing.T) {
	valid := func() Settings {
		s := Settings{Name: "svc"}
		s.ApplyDefaults()
		return s
	}

	tests := []struct {
		name   string
		mutate func(*Settings)
		errMsg string
	}{
		{"valid", func(*Settings) {}, ""},
		{"missing name", func(s *Settings) { s.Name = "" }, "name: is required"},
		{"bad environment", func(s *Settings) { s.Environment = "qa" }, "environment: must be one of"},
		{"bad sample rate", func(s *Settings) { s.Telemetry.SampleRate = 1.5 }, "telemetry.sample_rate"},
		{"bad exporter", func(s *Settings) { s.Telemetry.Exporter = "statsd" }, "telemetry.exporter"},
		{"otlp without endpoint", func(s *Settings) {
			s.Telemetry.Enabled = true
			s.Telemetry.Endpoint = ""
		}, "telemetry.endpoint: is required for the otlp exporter"},
		{"tracing with prometheus", func(s *Settings) {
			s.Telemetry.Exporter = ExporterPrometheus
			s.Telemetry.Tracing = true
		}, "telemetry.tracing"},
		{"bad log level", func(s *Settings) { s.Logging.Level = "loud" }, "logging"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := valid()
			tc.mutate(&s)
			err := s.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func TestSettingsValidate_IsInvalidArgument(t *testing.T) {
	s := Settings{Environment: "development"}
	s.ApplyDefaults()
	if err := s.Validate(); !stderrors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("got %v, want INVALID_ARGUMENT", err)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: orders
environment: staging
logging:
  level: warn
  format: json
telemetry:
  enabled: true
  exporter: prometheus
  interval: 5s
tasks:
  timeout: 2s
`)

	s, err := Load("orders", WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Name != "orders" || s.Environment != "staging" {
		t.Errorf("unexpected base settings %+v", s)
	}
	if s.Logging.Level != "warn" || s.Logging.Format != "json" {
		t.Errorf("unexpected logging %+v", s.Logging)
	}
	if !s.Telemetry.Enabled || s.Telemetry.Exporter != ExporterPrometheus || s.Telemetry.Interval != 5*time.Second {
		t.Errorf("unexpected telemetry %+v", s.Telemetry)
	}
	if s.Tasks.Timeout != 2*time.Second {
		t.Errorf("tasks.timeout = %v, want 2s", s.Tasks.Timeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: orders\ntelemetry:\n  sample_rate: 0.5\n")
	t.Setenv("TELEMETRY_SAMPLE_RATE", "0.25")

	s, err := Load("orders", WithConfigFile(path), WithEnvFile(filepath.Join(dir, "missing.env")))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Telemetry.SampleRate != 0.25 {
		t.Errorf("sample_rate = %v, want 0.25", s.Telemetry.SampleRate)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: orders\n")
	envPath := writeFile(t, dir, ".env", "LOGGING_FORMAT=json\n")
	t.Cleanup(func() { os.Unsetenv("LOGGING_FORMAT") })

	s, err := Load("orders", WithConfigFile(path), WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Logging.Format != "json" {
		t.Errorf("logging.format = %q, want json", s.Logging.Format)
	}
}

func TestLoad_NameFallsBackToArgument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "environment: production\n")

	s, err := Load("billing", WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Name != "billing" {
		t.Errorf("name = %q, want billing", s.Name)
	}
}

func TestLoad_InvalidFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: x\nenvironment: qa\n")

	if _, err := Load("x", WithConfigFile(path)); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var s Settings
	// A missing file leaves the struct empty without failing.
	err := LoadConfig("nonexistent", &s, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoad_EnvironmentDotEnvAndSearchDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "orders.yml", "environment: staging\nlogging:\n  level: error\n")
	writeFile(t, dir, ".env.staging", "LOGGING_FORMAT=json\n")
	writeFile(t, dir, ".env", "LOGGING_FORMAT=console\nLOGGING_LEVEL=warn\n")
	t.Cleanup(func() {
		os.Unsetenv("LOGGING_FORMAT")
		os.Unsetenv("LOGGING_LEVEL")
	})

	s, err := Load("orders", WithSearchDirs(dir), WithEnvironment("staging"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Environment != "staging" {
		t.Errorf("environment = %q, want staging", s.Environment)
	}
	if s.Logging.Format != "json" {
		t.Errorf("logging.format = %q, want json from .env.staging", s.Logging.Format)
	}
	if s.Logging.Level != "warn" {
		t.Errorf("logging.level = %q, want warn from .env over the yaml", s.Logging.Level)
	}
}

func TestLoad_EnvPrefix(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: orders\n")
	t.Setenv("ORDERS_TASKS_RETRY_MAX_ATTEMPTS", "4")
	t.Setenv("ORDERS_TASKS_TIMEOUT", "3s")

	s, err := Load("orders", WithConfigFile(path), WithEnvPrefix("orders"), WithSearchDirs(dir))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Tasks.Retry.MaxAttempts != 4 || s.Tasks.Timeout != 3*time.Second {
		t.Errorf("unexpected tasks %+v", s.Tasks)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: [unterminated\n")
	var s Settings
	if err := LoadConfig("x", &s, WithConfigFile(path), WithSearchDirs(dir)); err == nil {
		t.Fatal("expected a read error")
	}
}

func TestLoadConfig_RequiresStructPointer(t *testing.T) {
	var s Settings
	for _, cfg := range []any{nil, s, new(int)} {
		if err := LoadConfig("x", cfg); !stderrors.Is(err, errors.ErrInvalidArgument) {
			t.Errorf("LoadConfig(%T): got %v, want INVALID_ARGUMENT", cfg, err)
		}
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolver_ConfigSearchOrder(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		lc    LoaderConfig
		want  string
	}{
		{"named beats generic", []string{"config.yml", "config/orders.yml"}, LoaderConfig{}, "config/orders.yml"},
		{"cwd before config dir", []string{"orders.yaml", "config/orders.yml"}, LoaderConfig{}, "orders.yaml"},
		{"yml before yaml", []string{"orders.yaml", "orders.yml"}, LoaderConfig{}, "orders.yml"},
		{"generic fallback", []string{"config/config.yml"}, LoaderConfig{}, "config/config.yml"},
		{"nothing found", nil, LoaderConfig{}, ""},
		{"custom dirs", []string{"orders.yml", "deploy/orders.yml"}, LoaderConfig{SearchDirs: []string{"deploy"}}, "deploy/orders.yml"},
		{"explicit file", []string{"orders.yml"}, LoaderConfig{ConfigFile: "/etc/orders.yml"}, "/etc/orders.yml"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := &mockFS{files: map[string]bool{}}
			for _, f := range tc.files {
				fs.files[f] = true
			}
			got := (&Resolver{FileSystem: fs}).Resolve("orders", tc.lc)
			if got.ConfigFile != tc.want {
				t.Errorf("config = %q, want %q", got.ConfigFile, tc.want)
			}
		})
	}
}

func TestResolver_EnvFileOrder(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		".env":                true,
		".env.staging":        true,
		".env.production":     true,
		"config/.env":         true,
		"config/.env.staging": true,
	}}
	r := &Resolver{FileSystem: fs}

	tests := []struct {
		name string
		lc   LoaderConfig
		want []string
	}{
		{"staging", LoaderConfig{Environment: "staging"}, []string{".env.staging", ".env", "config/.env.staging", "config/.env"}},
		{"no environment", LoaderConfig{}, []string{".env", "config/.env"}},
		{"explicit file", LoaderConfig{EnvFile: "x.env", Environment: "staging"}, []string{"x.env"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Resolve("orders", tc.lc).EnvFiles
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEnvVar(t *testing.T) {
	tests := []struct {
		prefix, key, want string
	}{
		{"", "telemetry.sample_rate", "TELEMETRY_SAMPLE_RATE"},
		{"orders", "logging.level", "ORDERS_LOGGING_LEVEL"},
		{"", "name", "NAME"},
	}
	for _, tc := range tests {
		if got := EnvVar(tc.prefix, tc.key); got != tc.want {
			t.Errorf("EnvVar(%q, %q) = %q, want %q", tc.prefix, tc.key, got, tc.want)
		}
	}
}

func TestSettingKeys(t *testing.T) {
	type app struct {
		Settings `mapstructure:",squash"`
		Region   string `mapstructure:"region"`
	}
	keys := map[string]bool{}
	for _, k := range settingKeys(reflect.TypeOf(app{}), "") {
		keys[k] = true
	}
	for _, want := range []string{"name", "region", "telemetry.sample_rate", "logging.no_color", "tasks.retry.max_attempts"} {
		if !keys[want] {
			t.Errorf("missing key %q in %v", want, keys)
		}
	}
	for _, unwanted := range []string{"logging.writer", "tasks.retry.retryif", "tasks.retry.onretry", "settings.name"} {
		if keys[unwanted] {
			t.Errorf("unexpected key %q", unwanted)
		}
	}
}

func TestLoaderOptions(t *testing.T) {
	fs := &mockFS{}
	lc := newLoaderConfig([]LoaderOption{
		WithFileSystem(fs),
		WithConfigFile("/path/to/config.yml"),
		WithEnvFile("/path/to/.env"),
		WithSearchDirs("deploy"),
		WithEnvironment("production"),
		WithEnvPrefix("orders"),
	})
	if lc.FileSystem != fs || lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("options not applied: %+v", lc)
	}
	if len(lc.SearchDirs) != 1 || lc.SearchDirs[0] != "deploy" || lc.Environment != "production" || lc.EnvPrefix != "orders" {
		t.Errorf("options not applied: %+v", lc)
	}

	t.Setenv("ENVIRONMENT", "staging")
	def := newLoaderConfig(nil)
	if def.Environment != "staging" || len(def.SearchDirs) != len(DefaultSearchDirs) {
		t.Errorf("unexpected defaults %+v", def)
	}
}
