package config

import (
	"errors"
	"time"
)

// Settings are the resolved values of every supported key.
type Settings struct {
	Surface        string
	Timeout        time.Duration
	MaxImageSize   int64
	WebAddress     string
	WebOpenBrowser bool
	ServeTransport string
	ServeAddress   string
	LogLevel       string
	LogFile        string
	LogFormat      string
	SentryDSN      string
}

func (c *Store) Settings() (Settings, error) {
	var (
		s    Settings
		errs []error
	)

	str := func(key string, dst *string) {
		value, err := c.Resolve(key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst, _ = value.String()
	}

	str("surface", &s.Surface)
	str("web.address", &s.WebAddress)
	str("serve.transport", &s.ServeTransport)
	str("serve.address", &s.ServeAddress)
	str("log.level", &s.LogLevel)
	str("log.file", &s.LogFile)
	str("log.format", &s.LogFormat)
	str("telemetry.sentry-dsn", &s.SentryDSN)

	var timeout string
	str("timeout", &timeout)
	if timeout != "" {
		s.Timeout, _ = time.ParseDuration(timeout)
	}

	if value, err := c.Resolve("images.max-size"); err != nil {
		errs = append(errs, err)
	} else {
		s.MaxImageSize, _ = value.Int()
	}

	if value, err := c.Resolve("web.open-browser"); err != nil {
		errs = append(errs, err)
	} else {
		s.WebOpenBrowser, _ = value.Bool()
	}

	return s, errors.Join(errs...)
}
