package common

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Store client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds the connection parameters shared by all adapters.
type ClientConfig struct {
	// remote store address
	Host string
	Port int

	// DB is the logical database selector
	DB int
	// Password is optional, empty means no authentication
	Password string

	// timeouts (0 means the client default)
	DialTimeoutSecond  int
	ReadTimeoutSecond  int
	WriteTimeoutSecond int

	// Logging configuration
	LogLevel string
}

// DefaultClientConfig returns the configuration used when nothing else is set
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Host:               "localhost",
		Port:               6379,
		DB:                 0,
		DialTimeoutSecond:  5,
		ReadTimeoutSecond:  5,
		WriteTimeoutSecond: 5,
		LogLevel:           "info",
	}
}

// Addr returns the host:port address of the remote store
func (c *ClientConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DialTimeout returns the dial timeout as a duration
func (c *ClientConfig) DialTimeout() time.Duration {
	return time.Duration(c.DialTimeoutSecond) * time.Second
}

// ReadTimeout returns the read timeout as a duration
func (c *ClientConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSecond) * time.Second
}

// WriteTimeout returns the write timeout as a duration
func (c *ClientConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSecond) * time.Second
}

// Validate checks the configuration for values the store client cannot use
func (c *ClientConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DB < 0 {
		return fmt.Errorf("invalid db %d", c.DB)
	}
	return nil
}

// String returns a formatted string representation of the client configuration.
// The password is never printed.
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Store Connection")
	addField("Address", c.Addr())
	addField("Database", strconv.Itoa(c.DB))
	addField("Authentication", fmt.Sprintf("%t", c.Password != ""))

	addSection("Timeouts")
	addField("Dial", fmt.Sprintf("%d sec", c.DialTimeoutSecond))
	addField("Read", fmt.Sprintf("%d sec", c.ReadTimeoutSecond))
	addField("Write", fmt.Sprintf("%d sec", c.WriteTimeoutSecond))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
