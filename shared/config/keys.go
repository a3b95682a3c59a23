package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
)

// KeyType is the kind of value a configuration key holds.
type KeyType string

const (
	TypeString   KeyType = "string"
	TypeBool     KeyType = "bool"
	TypeInt      KeyType = "int"
	TypeDuration KeyType = "duration"
	TypeEnum     KeyType = "enum"
)

type KeySpec struct {
	Key         string
	Type        KeyType
	Values      []string
	Default     string
	Description string
	Example     string
}

var keySpecs = []KeySpec{
	{
		Key:         "surface",
		Type:        TypeEnum,
		Values:      []string{"auto", "terminal", "web"},
		Default:     "auto",
		Description: "Where questions are shown. auto uses the terminal when one is attached and\n  the browser otherwise.",
		Example:     "ask config set surface web",
	},
	{
		Key:         "timeout",
		Type:        TypeDuration,
		Default:     "0s",
		Description: "How long a question waits for an answer before it is cancelled. 0 waits forever.",
		Example:     "ask config set timeout 10m",
	},
	{
		Key:         "images.max-size",
		Type:        TypeInt,
		Default:     "10485760",
		Description: "Largest image, in bytes, that can be attached to an answer.",
		Example:     "ask config set images.max-size 5242880",
	},
	{
		Key:         "web.address",
		Type:        TypeString,
		Default:     "127.0.0.1:0",
		Description: "Listen address of the browser question page. Port 0 picks a free port.",
		Example:     "ask config set web.address 127.0.0.1:4567",
	},
	{
		Key:         "web.open-browser",
		Type:        TypeBool,
		Default:     "true",
		Description: "Open the question page in the default browser. When false the URL is only logged.",
		Example:     "ask config set web.open-browser false",
	},
	{
		Key:         "serve.transport",
		Type:        TypeEnum,
		Values:      []string{"stdio", "http"},
		Default:     "stdio",
		Description: "Transport used by `ask serve`.",
		Example:     "ask config set serve.transport http",
	},
	{
		Key:         "serve.address",
		Type:        TypeString,
		Default:     "127.0.0.1:8765",
		Description: "Listen address of `ask serve` with the http transport.",
		Example:     "ask config set serve.address :8765",
	},
	{
		Key:         "log.level",
		Type:        TypeEnum,
		Values:      []string{"debug", "info", "warn", "error"},
		Default:     "info",
		Description: "Minimum level of log records.",
		Example:     "ask config set log.level debug",
	},
	{
		Key:         "log.file",
		Type:        TypeString,
		Description: "Write logs to this file instead of stderr. The file is rotated at 10 MB.",
		Example:     "ask config set log.file ~/.local/state/ask/ask.log",
	},
	{
		Key:         "log.format",
		Type:        TypeEnum,
		Values:      []string{"text", "json", "pretty"},
		Default:     "text",
		Description: "Log record format.",
		Example:     "ask config set log.format json",
	},
	{
		Key:         "telemetry.sentry-dsn",
		Type:        TypeString,
		Description: "Report crashes to this Sentry DSN. Crash reporting is off when unset.",
		Example:     "ask config set telemetry.sentry-dsn https://key@o0.ingest.sentry.io/0",
	},
}

// SupportedKeys lists every settable key followed by the section keys that
// group them.
func SupportedKeys() []string {
	keys := make([]string, 0, len(keySpecs))
	sections := make(map[string]bool)
	var sectionKeys []string

	for _, spec := range keySpecs {
		keys = append(keys, spec.Key)
		if section, _, ok := strings.Cut(spec.Key, "."); ok && !sections[section] {
			sections[section] = true
			sectionKeys = append(sectionKeys, section)
		}
	}

	return append(keys, sectionKeys...)
}

func LookupKey(key string) (KeySpec, bool) {
	for _, spec := range keySpecs {
		if spec.Key == key {
			return spec, true
		}
	}
	return KeySpec{}, false
}

// ValidateKey accepts leaf keys and the sections that group them.
func ValidateKey(key string) error {
	if slices.Contains(SupportedKeys(), key) {
		return nil
	}
	if matches := fuzzy.Find(key, SupportedKeys()); len(matches) > 0 {
		return fmt.Errorf("unsupported configuration key %q, did you mean %q?", key, matches[0].Str)
	}
	return fmt.Errorf("unsupported configuration key %q, supported keys are: %s", key, strings.Join(SupportedKeys(), ", "))
}

// ParseValue converts the textual form of a value for key into the type it is
// stored as.
func ParseValue(key string, raw string) (any, error) {
	spec, ok := LookupKey(key)
	if !ok {
		if ValidateKey(key) == nil {
			return nil, fmt.Errorf("%q is a section, set one of its keys instead", key)
		}
		return nil, ValidateKey(key)
	}

	raw = strings.TrimSpace(raw)
	switch spec.Type {
	case TypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for %s: expected true or false", raw, key)
		}
		return b, nil
	case TypeInt:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || i <= 0 {
			return nil, fmt.Errorf("invalid value %q for %s: expected a positive integer", raw, key)
		}
		return i, nil
	case TypeDuration:
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid value %q for %s: expected a duration like 30s or 5m", raw, key)
		}
		return d.String(), nil
	case TypeEnum:
		value := strings.ToLower(raw)
		if !slices.Contains(spec.Values, value) {
			return nil, fmt.Errorf("invalid value %q for %s: expected one of %s", raw, key, strings.Join(spec.Values, ", "))
		}
		return value, nil
	}

	return raw, nil
}

// EnvName is the environment variable that overrides key.
func EnvName(key string) string {
	return "ASK_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

func getNestedValue(data map[string]any, key string) (any, bool) {
	keys := strings.Split(key, ".")
	current := data

	for i, k := range keys {
		if value, exists := current[k]; exists {
			if i == len(keys)-1 {
				return value, true
			}

			if nested, ok := value.(map[string]any); ok {
				current = nested
			} else {
				return nil, false
			}
		} else {
			return nil, false
		}
	}

	return nil, false
}

func setNestedValue(data map[string]any, key string, value any) error {
	keys := strings.Split(key, ".")
	for i, k := range keys {
		if k == "" {
			return fmt.Errorf("invalid key: empty path segment at position %d", i)
		}
	}
	current := data

	for i := 0; i < len(keys)-1; i++ {
		k := keys[i]
		if existing, exists := current[k]; exists {
			if nested, ok := existing.(map[string]any); ok {
				current = nested
			} else {
				return fmt.Errorf("key '%s' already exists as a non-object value", strings.Join(keys[:i+1], "."))
			}
		} else {
			newMap := make(map[string]any)
			current[k] = newMap
			current = newMap
		}
	}

	finalKey := keys[len(keys)-1]
	current[finalKey] = value

	return nil
}

func unsetNestedValue(data map[string]any, key string) error {
	keys := strings.Split(key, ".")
	current := data

	for i := 0; i < len(keys)-1; i++ {
		k := keys[i]
		if existing, exists := current[k]; exists {
			if nested, ok := existing.(map[string]any); ok {
				current = nested
			} else {
				return nil
			}
		} else {
			return nil
		}
	}

	finalKey := keys[len(keys)-1]
	delete(current, finalKey)

	cleanupEmptyMaps(data, keys[:len(keys)-1])
	return nil
}

func cleanupEmptyMaps(data map[string]any, keyPath []string) {
	if len(keyPath) == 0 {
		return
	}

	current := data
	for i := 0; i < len(keyPath)-1; i++ {
		if nested, ok := current[keyPath[i]].(map[string]any); ok {
			current = nested
		} else {
			return
		}
	}

	targetKey := keyPath[len(keyPath)-1]
	if targetMap, ok := current[targetKey].(map[string]any); ok && len(targetMap) == 0 {
		delete(current, targetKey)
		cleanupEmptyMaps(data, keyPath[:len(keyPath)-1])
	}
}

func IsLeafValue(value any) bool {
	switch value.(type) {
	case map[string]any:
		return false
	case []any:
		if arr, ok := value.([]any); ok && len(arr) > 0 {
			if _, isMap := arr[0].(map[string]any); isMap {
				return false
			}
		}
		return true
	default:
		return true
	}
}
