package rstore

import (
	"context"
	"errors"
	"fmt"
	"github.com/ValentinKolb/dStruct/lib/common"
	"github.com/ValentinKolb/dStruct/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/redis/go-redis/v9"
	"net"
	"os"
	"strings"
)

var (
	Logger = logger.GetLogger("rstore")
)

// Connect opens a connection to the remote store and verifies it with a PING.
// Failures are logged and returned as *store.Error with one of the codes
// RetCConnection, RetCAuth or RetCTimeout (RetCInvalidArgument for an unusable config).
//
// The client's own command retries are disabled. Retry policy belongs to the caller.
func Connect(ctx context.Context, config common.ClientConfig) (*redis.Client, error) {
	if err := config.Validate(); err != nil {
		Logger.Errorf("Invalid store configuration: %v", err)
		return nil, store.WrapError(store.RetCInvalidArgument, "invalid store configuration", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr(),
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  config.DialTimeout(),
		ReadTimeout:  config.ReadTimeout(),
		WriteTimeout: config.WriteTimeout(),
		MaxRetries:   -1,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		storeErr := classifyConnectError(config.Addr(), err)
		switch storeErr.Code {
		case store.RetCAuth:
			Logger.Errorf("Error authenticating to store at %s: %v", config.Addr(), err)
		case store.RetCTimeout:
			Logger.Errorf("Timeout while connecting to store at %s: %v", config.Addr(), err)
		default:
			Logger.Errorf("Error connecting to store at %s: %v", config.Addr(), err)
		}
		return nil, storeErr
	}

	Logger.Debugf("Connected to store at %s (db %d)", config.Addr(), config.DB)
	return client, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// classifyConnectError maps an error of the initial connection to the error taxonomy
func classifyConnectError(addr string, err error) *store.Error {
	switch {
	case isAuthError(err):
		return store.WrapError(store.RetCAuth, fmt.Sprintf("authenticating to %s", addr), err)
	case isTimeoutError(err):
		return store.WrapError(store.RetCTimeout, fmt.Sprintf("connecting to %s", addr), err)
	default:
		return store.WrapError(store.RetCConnection, fmt.Sprintf("connecting to %s", addr), err)
	}
}

// isAuthError checks if the store rejected the credentials
func isAuthError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "WRONGPASS") ||
		strings.HasPrefix(msg, "NOAUTH") ||
		strings.Contains(msg, "invalid password") ||
		strings.Contains(msg, "invalid username-password pair") ||
		strings.Contains(msg, "called without any password configured")
}

// isTimeoutError checks if err is a network or context timeout
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
