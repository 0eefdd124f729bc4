package transport

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

const DefaultPort = 700

var (
	ErrHostRequired         = errors.New("transport: host required")
	ErrInvalidPort          = errors.New("transport: port out of range")
	ErrTLSCAFileRequired    = errors.New("transport: tls ca file required")
	ErrTLSCertFileRequired  = errors.New("transport: tls cert file required")
	ErrTLSKeyFileRequired   = errors.New("transport: tls key file required")
	ErrTLSKeyPairIncomplete = errors.New("transport: tls cert and key must be set together")
	ErrTLSCertWithoutTLS    = errors.New("transport: client certificate set but tls disabled")
)

// TLSConfig selects server verification and the optional client certificate.
type TLSConfig struct {
	Enabled            bool
	CAFile             string
	CertFile           string
	KeyFile            string
	ServerName         string
	InsecureSkipVerify bool
}

// Config describes one registry endpoint.
type Config struct {
	Host           string
	Port           int
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Limits         Limits
	TLS            TLSConfig
}

func DefaultConfig() Config {
	return Config{
		Port:           DefaultPort,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		Limits:         DefaultLimits(),
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Port == 0 {
		c.Port = d.Port
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = d.ConnectTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.Limits.MaxPayloadBytes == 0 {
		c.Limits = d.Limits
	}
	return c
}

func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return ErrHostRequired
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}
	hasCert := strings.TrimSpace(c.TLS.CertFile) != ""
	hasKey := strings.TrimSpace(c.TLS.KeyFile) != ""
	if !c.TLS.Enabled {
		if hasCert || hasKey {
			return ErrTLSCertWithoutTLS
		}
		return nil
	}
	if strings.TrimSpace(c.TLS.CAFile) == "" && !c.TLS.InsecureSkipVerify {
		return ErrTLSCAFileRequired
	}
	switch {
	case hasCert && !hasKey:
		return fmt.Errorf("%w: %w", ErrTLSKeyPairIncomplete, ErrTLSKeyFileRequired)
	case hasKey && !hasCert:
		return fmt.Errorf("%w: %w", ErrTLSKeyPairIncomplete, ErrTLSCertFileRequired)
	}
	return nil
}

func (c Config) tlsConfig() (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: c.TLS.InsecureSkipVerify,
	}
	cfg.ServerName = strings.TrimSpace(c.TLS.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = c.Host
	}
	if caPath := strings.TrimSpace(c.TLS.CAFile); caPath != "" {
		caPEM, err := os.ReadFile(caPath)
		if err != nil {
			return nil, err
		}
		pool := x509.NewCertPool()
		if ok := pool.AppendCertsFromPEM(caPEM); !ok {
			return nil, fmt.Errorf("transport: parse tls ca bundle: %s", caPath)
		}
		cfg.RootCAs = pool
	}
	if c.TLS.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(c.TLS.CertFile, c.TLS.KeyFile)
		if err != nil {
			return nil, err
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}
