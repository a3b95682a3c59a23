package cmd

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/furisto/ask/shared/conv"
)

func TestConfig(t *testing.T) {
	setup := &TestSetup{}

	setup.RunTests(t, []TestScenario{
		{
			Name:    "set writes the typed value",
			Command: []string{"config", "set", "web.open-browser", "false"},
			Expected: TestExpectation{
				Files: map[string]string{testConfigFile: "web:\n    open-browser: false\n"},
			},
		},
		{
			Name:            "set keeps existing values",
			Command:         []string{"config", "set", "timeout", "90s"},
			SetupFileSystem: seedConfig("surface: web\n"),
			Expected: TestExpectation{
				Files: map[string]string{testConfigFile: "surface: web\n\ntimeout: 1m30s\n"},
			},
		},
		{
			Name:    "set rejects an invalid value",
			Command: []string{"config", "set", "surface", "desktop"},
			Expected: TestExpectation{
				Error: `invalid value "desktop" for surface: expected one of auto, terminal, web`,
			},
		},
		{
			Name:    "set rejects an unknown key",
			Command: []string{"config", "set", "cmd.new.agent", "coder"},
			Expected: TestExpectation{
				Error: `unsupported configuration key "cmd.new.agent", supported keys are: surface, timeout, images.max-size, web.address, web.open-browser, serve.transport, serve.address, log.level, log.file, log.format, telemetry.sentry-dsn, images, web, serve, log, telemetry`,
			},
		},
		{
			Name:            "set can fix a broken config",
			Command:         []string{"config", "set", "surface", "terminal"},
			SetupFileSystem: seedConfig("surface: desktop\n"),
			Expected: TestExpectation{
				Files: map[string]string{testConfigFile: "surface: terminal\n"},
			},
		},
		{
			Name:            "get leaf",
			Command:         []string{"config", "get", "log.level"},
			SetupFileSystem: seedConfig("log:\n  level: debug\n  format: json\n"),
			Expected:        TestExpectation{Stdout: conv.Ptr("debug\n")},
		},
		{
			Name:            "get section",
			Command:         []string{"config", "get", "log"},
			SetupFileSystem: seedConfig("log:\n  level: debug\n  format: json\n"),
			Expected:        TestExpectation{Stdout: conv.Ptr("log.format: json\nlog.level: debug\n")},
		},
		{
			Name:     "get unset key prints nothing",
			Command:  []string{"config", "get", "surface"},
			Expected: TestExpectation{Stdout: conv.Ptr("")},
		},
		{
			Name:            "unset removes the empty section",
			Command:         []string{"config", "unset", "web.address"},
			SetupFileSystem: seedConfig("surface: web\nweb:\n  address: 127.0.0.1:4000\n"),
			Expected: TestExpectation{
				Files: map[string]string{testConfigFile: "surface: web\n"},
			},
		},
		{
			Name:            "list",
			Command:         []string{"config", "list"},
			SetupFileSystem: seedConfig("surface: web\nweb:\n  open-browser: false\n"),
			Expected:        TestExpectation{Stdout: conv.Ptr("surface: web\nweb.open-browser: false\n")},
		},
		{
			Name:            "list effective",
			Command:         []string{"config", "list", "--effective"},
			SetupFileSystem: seedConfig("timeout: 5m\n"),
			SetupEnv:        map[string]string{"ASK_SURFACE": "terminal"},
			Expected: TestExpectation{Stdout: conv.Ptr(`surface: terminal (from ASK_SURFACE)
timeout: 5m0s
images.max-size: 10485760
web.address: 127.0.0.1:0
web.open-browser: true
serve.transport: stdio
serve.address: 127.0.0.1:8765
log.level: info
log.file: 
log.format: text
telemetry.sentry-dsn: 
`)},
		},
		{
			Name:            "list effective with a .env file",
			Command:         []string{"config", "list", "--effective"},
			SetupFileSystem: func(fs *afero.Afero) { _ = fs.WriteFile(testWorkDir+"/.env", []byte("ASK_LOG_LEVEL=warn\n"), 0600) },
			Expected: TestExpectation{Stdout: conv.Ptr(`surface: auto
timeout: 0s
images.max-size: 10485760
web.address: 127.0.0.1:0
web.open-browser: true
serve.transport: stdio
serve.address: 127.0.0.1:8765
log.level: warn (from ASK_LOG_LEVEL)
log.file: 
log.format: text
telemetry.sentry-dsn: 
`)},
		},
		{
			Name:    "describe",
			Command: []string{"config", "describe", "serve.transport"},
			Expected: TestExpectation{Stdout: conv.Ptr("serve.transport\n\n" +
				"  Transport used by `ask serve`.\n\n" +
				"  Type                         Default\n" +
				"  stdio | http                 stdio\n\n" +
				"  Environment: ASK_SERVE_TRANSPORT\n" +
				"  Example: ask config set serve.transport http\n")},
		},
		{
			Name:     "describe unknown key",
			Command:  []string{"config", "describe", "editor"},
			Expected: TestExpectation{Error: "unknown configuration key: editor"},
		},
	})
}
