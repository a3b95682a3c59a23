package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"go.uber.org/mock/gomock"

	"github.com/furisto/ask/shared/mocks"
)

const configDir = "/home/user/.config/ask"

func newTestStore(t *testing.T, content string, env map[string]string) (*Store, *afero.Afero) {
	t.Helper()

	ctrl := gomock.NewController(t)
	userInfo := mocks.NewMockUserInfo(ctrl)
	userInfo.EXPECT().AskConfigDir().Return(configDir, nil).AnyTimes()

	fs := &afero.Afero{Fs: afero.NewMemMapFs()}
	if content != "" {
		if err := fs.WriteFile(configDir+"/config.yaml", []byte(content), 0600); err != nil {
			t.Fatalf("failed to seed config: %v", err)
		}
	}

	store, err := NewStore(fs, userInfo, WithEnv(func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}))
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}

	return store, fs
}

func TestSettingsDefaults(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, "", nil)

	settings, err := store.Settings()
	if err != nil {
		t.Fatalf("Settings() failed: %v", err)
	}

	expected := Settings{
		Surface:        "auto",
		MaxImageSize:   10 << 20,
		WebAddress:     "127.0.0.1:0",
		WebOpenBrowser: true,
		ServeTransport: "stdio",
		ServeAddress:   "127.0.0.1:8765",
		LogLevel:       "info",
		LogFormat:      "text",
	}
	if diff := cmp.Diff(expected, settings); diff != "" {
		t.Errorf("Settings() mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsPrecedence(t *testing.T) {
	t.Parallel()

	content := `
surface: terminal
timeout: 90s
images:
  max-size: 2048
web:
  open-browser: false
log:
  level: debug
`
	env := map[string]string{
		"ASK_SURFACE":          "web",
		"ASK_SERVE_TRANSPORT":  "http",
		"ASK_WEB_OPEN_BROWSER": "true",
	}
	store, _ := newTestStore(t, content, env)

	settings, err := store.Settings()
	if err != nil {
		t.Fatalf("Settings() failed: %v", err)
	}

	expected := Settings{
		Surface:        "web",
		Timeout:        90 * time.Second,
		MaxImageSize:   2048,
		WebAddress:     "127.0.0.1:0",
		WebOpenBrowser: true,
		ServeTransport: "http",
		ServeAddress:   "127.0.0.1:8765",
		LogLevel:       "debug",
		LogFormat:      "text",
	}
	if diff := cmp.Diff(expected, settings); diff != "" {
		t.Errorf("Settings() mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsInvalidValues(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, "surface: desktop\n", map[string]string{"ASK_TIMEOUT": "soon"})

	_, err := store.Settings()
	if err == nil {
		t.Fatal("Settings() accepted invalid values")
	}

	expected := `config.yaml: invalid value "desktop" for surface: expected one of auto, terminal, web
ASK_TIMEOUT: invalid value "soon" for timeout: expected a duration like 30s or 5m`
	if diff := cmp.Diff(expected, err.Error()); diff != "" {
		t.Errorf("Settings() error mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Parallel()

	store, fs := newTestStore(t, "", map[string]string{"ASK_LOG_LEVEL": "warn"})
	dotenv := "ASK_SURFACE=terminal\nASK_LOG_LEVEL=debug\nUNRELATED=1\n"
	if err := fs.WriteFile("/work/.env", []byte(dotenv), 0600); err != nil {
		t.Fatal(err)
	}

	if err := store.LoadDotEnv("/work/.env"); err != nil {
		t.Fatalf("LoadDotEnv() failed: %v", err)
	}
	if err := store.LoadDotEnv("/work/missing.env"); err != nil {
		t.Fatalf("LoadDotEnv() of a missing file failed: %v", err)
	}

	settings, err := store.Settings()
	if err != nil {
		t.Fatalf("Settings() failed: %v", err)
	}
	if settings.Surface != "terminal" {
		t.Errorf("surface = %q, want the .env value", settings.Surface)
	}
	if settings.LogLevel != "warn" {
		t.Errorf("log.level = %q, want the environment to win over .env", settings.LogLevel)
	}
	if _, ok := store.Override("unrelated"); ok {
		t.Error("non ASK_ variables must not be picked up")
	}
}

func TestStoreSetFlushDelete(t *testing.T) {
	t.Parallel()

	store, fs := newTestStore(t, "", nil)

	for key, raw := range map[string]string{"web.open-browser": "false", "images.max-size": "4096", "timeout": "2m"} {
		value, err := ParseValue(key, raw)
		if err != nil {
			t.Fatalf("ParseValue(%s) failed: %v", key, err)
		}
		if err := store.Set(key, value); err != nil {
			t.Fatalf("Set(%s) failed: %v", key, err)
		}
	}
	if err := store.Flush(); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}

	content, err := fs.ReadFile(configDir + "/config.yaml")
	if err != nil {
		t.Fatal(err)
	}
	expected := "images:\n    max-size: 4096\n\ntimeout: 2m0s\n\nweb:\n    open-browser: false\n"
	if diff := cmp.Diff(expected, string(content)); diff != "" {
		t.Errorf("config.yaml mismatch (-want +got):\n%s", diff)
	}

	if err := store.Delete("images.max-size"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok := store.Get("images"); ok {
		t.Error("empty section was not removed")
	}

	reloaded, _ := newTestStore(t, string(content), nil)
	value, ok := reloaded.Get("web.open-browser")
	if b, isBool := value.Bool(); !ok || !isBool || b {
		t.Errorf("web.open-browser = %v after reload, want false", value.Raw())
	}
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	scenarios := []struct {
		Key      string
		Raw      string
		Expected any
		Error    string
	}{
		{Key: "surface", Raw: " Web ", Expected: "web"},
		{Key: "timeout", Raw: "90s", Expected: "1m30s"},
		{Key: "timeout", Raw: "-1s", Error: `invalid value "-1s" for timeout: expected a duration like 30s or 5m`},
		{Key: "images.max-size", Raw: "0", Error: `invalid value "0" for images.max-size: expected a positive integer`},
		{Key: "web.open-browser", Raw: "yes", Error: `invalid value "yes" for web.open-browser: expected true or false`},
		{Key: "serve.address", Raw: ":9000", Expected: ":9000"},
		{Key: "log", Raw: "debug", Error: `"log" is a section, set one of its keys instead`},
	}

	for _, scenario := range scenarios {
		value, err := ParseValue(scenario.Key, scenario.Raw)

		var got string
		if err != nil {
			got = err.Error()
		}
		if diff := cmp.Diff(scenario.Error, got); diff != "" {
			t.Errorf("ParseValue(%s, %q) error mismatch (-want +got):\n%s", scenario.Key, scenario.Raw, diff)
		}
		if diff := cmp.Diff(scenario.Expected, value); diff != "" {
			t.Errorf("ParseValue(%s, %q) mismatch (-want +got):\n%s", scenario.Key, scenario.Raw, diff)
		}
	}
}

func TestValidateKey(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"surface", "web", "web.address", "telemetry.sentry-dsn"} {
		if err := ValidateKey(key); err != nil {
			t.Errorf("ValidateKey(%s) failed: %v", key, err)
		}
	}
	if err := ValidateKey("cmd.new.agent"); err == nil {
		t.Error("ValidateKey() accepted an unknown key")
	}

	err := ValidateKey("web.adress")
	expected := `unsupported configuration key "web.adress", did you mean "web.address"?`
	if err == nil || err.Error() != expected {
		t.Errorf("ValidateKey() = %v, want %s", err, expected)
	}
}

func TestEnvName(t *testing.T) {
	t.Parallel()

	if got := EnvName("telemetry.sentry-dsn"); got != "ASK_TELEMETRY_SENTRY_DSN" {
		t.Errorf("EnvName() = %s", got)
	}
}
