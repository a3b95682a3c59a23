package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/furisto/ask/shared"
)

const fileName = "config.yaml"

type StoreOption func(*Store)

// WithEnv replaces the process environment used for overrides.
func WithEnv(lookup func(string) (string, bool)) StoreOption {
	return func(s *Store) {
		s.lookupEnv = lookup
	}
}

// Store holds the settings of config.yaml. Environment variables named by
// EnvName take precedence over the file when values are resolved.
type Store struct {
	settings  map[string]any
	dotenv    map[string]string
	fs        *afero.Afero
	userInfo  shared.UserInfo
	lookupEnv func(string) (string, bool)
}

func NewStore(fs *afero.Afero, userInfo shared.UserInfo, opts ...StoreOption) (*Store, error) {
	store := &Store{
		settings:  make(map[string]any),
		dotenv:    make(map[string]string),
		fs:        fs,
		userInfo:  userInfo,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(store)
	}

	err := store.load()
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (c *Store) path() (string, error) {
	configDir, err := c.userInfo.AskConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to retrieve ask config directory: %w", err)
	}
	return filepath.Join(configDir, fileName), nil
}

func (c *Store) load() error {
	settingsFile, err := c.path()
	if err != nil {
		return err
	}

	exists, err := c.fs.Exists(settingsFile)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if !exists {
		return nil
	}

	content, err := c.fs.ReadFile(settingsFile)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var settings map[string]any
	if err := yaml.Unmarshal(content, &settings); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", settingsFile, err)
	}
	if settings != nil {
		c.settings = settings
	}

	return nil
}

// LoadDotEnv reads ASK_ variables from a .env file. Variables already set in
// the environment win over the file. A missing file is not an error.
func (c *Store) LoadDotEnv(path string) error {
	exists, err := c.fs.Exists(path)
	if err != nil || !exists {
		return err
	}

	file, err := c.fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	values, err := godotenv.Parse(file)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for name, value := range values {
		if strings.HasPrefix(name, "ASK_") {
			c.dotenv[name] = value
		}
	}

	return nil
}

// Get returns the value stored in the config file.
func (c *Store) Get(key string) (Value, bool) {
	raw, found := getNestedValue(c.settings, key)
	if !found {
		return Value{}, false
	}

	return Value{raw: raw}, true
}

func (c *Store) GetOrDefault(key string, defaultValue Value) (Value, bool) {
	raw, found := getNestedValue(c.settings, key)
	if !found {
		return defaultValue, false
	}
	return Value{raw: raw}, true
}

// Override returns the environment override of key, if any.
func (c *Store) Override(key string) (string, bool) {
	name := EnvName(key)
	if value, ok := c.lookupEnv(name); ok {
		return value, true
	}
	value, ok := c.dotenv[name]
	return value, ok
}

// Resolve returns the effective value of a leaf key: the environment
// override, the file value or the key's default, in that order.
func (c *Store) Resolve(key string) (Value, error) {
	spec, ok := LookupKey(key)
	if !ok {
		return Value{}, ValidateKey(key)
	}

	raw, source := spec.Default, "default"
	if value, ok := c.Override(key); ok {
		raw, source = value, EnvName(key)
	} else if value, ok := c.Get(key); ok {
		raw, source = fmt.Sprint(value.Raw()), fileName
	}

	if raw == "" && spec.Type == TypeString {
		return Value{raw: ""}, nil
	}

	parsed, err := ParseValue(key, raw)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", source, err)
	}
	return Value{raw: parsed}, nil
}

func (c *Store) Set(key string, value any) error {
	return setNestedValue(c.settings, key, value)
}

func (c *Store) Flush() error {
	output, err := MarshalYAMLWithSpacing(c.settings)
	if err != nil {
		return err
	}

	configPath, err := c.path()
	if err != nil {
		return err
	}

	return c.fs.WriteFile(configPath, output, 0600)
}

func (c *Store) Delete(key string) error {
	err := unsetNestedValue(c.settings, key)
	if err != nil {
		return err
	}
	return nil
}

// All returns the file settings.
func (c *Store) All() map[string]any {
	return c.settings
}

func MarshalYAMLWithSpacing(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	var result []string

	for i, line := range lines {
		if i > 0 && len(line) > 0 && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			result = append(result, "")
		}
		result = append(result, line)
	}

	return []byte(strings.Join(result, "\n")), nil
}

type Value struct {
	raw any
}

func (v Value) String() (string, bool) {
	if str, ok := v.raw.(string); ok {
		return str, true
	}
	return "", false
}

func (v Value) Int() (int64, bool) {
	if i, ok := v.raw.(int64); ok {
		return i, true
	}
	if i, ok := v.raw.(int); ok {
		return int64(i), true
	}
	return 0, false
}

func (v Value) Bool() (bool, bool) {
	if b, ok := v.raw.(bool); ok {
		return b, true
	}
	return false, false
}

func (v Value) Raw() any {
	return v.raw
}
