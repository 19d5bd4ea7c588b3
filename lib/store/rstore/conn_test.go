package rstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/ValentinKolb/dStruct/lib/store"
	"github.com/alicebob/miniredis/v2"
)

func TestConnect(t *testing.T) {
	m := startServer(t)

	client, err := Connect(context.Background(), configFor(t, m))
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Errorf("Expected a usable client, got %v", err)
	}
}

func TestConnectUnreachable(t *testing.T) {
	m := miniredis.NewMiniRedis()
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	config := configFor(t, m)
	m.Close()

	_, err := NewQueue[string](context.Background(), "jobs", config, nil)
	if !errors.Is(err, store.ErrConnection) {
		t.Errorf("Expected connection error, got %v", err)
	}

	_, err = NewStream[string](context.Background(), "orders", "workers", "w1", config, nil)
	if !errors.Is(err, store.ErrConnection) {
		t.Errorf("Expected connection error for stream, got %v", err)
	}
}

func TestConnectAuth(t *testing.T) {
	m := startServer(t)
	m.RequireAuth("secret")
	config := configFor(t, m)

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"no password", "", store.ErrAuth},
		{"wrong password", "wrong", store.ErrAuth},
		{"correct password", "secret", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.Password = tt.password
			kv, err := NewKeyValue[string](context.Background(), "kv", config, nil)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				_ = kv.Close()
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConnectTimeout(t *testing.T) {
	config := configFor(t, startServer(t))

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()

	_, err := Connect(ctx, config)
	if !errors.Is(err, store.ErrTimeout) {
		t.Errorf("Expected timeout error, got %v", err)
	}
}

func TestConnectInvalidConfig(t *testing.T) {
	config := configFor(t, startServer(t))
	config.Port = 0

	_, err := Connect(context.Background(), config)
	if !errors.Is(err, store.ErrInvalidArgument) {
		t.Errorf("Expected invalid argument error, got %v", err)
	}
}

func TestClassifyConnectError(t *testing.T) {
	tests := []struct {
		err  error
		want store.RetCode
	}{
		{errors.New("WRONGPASS invalid username-password pair or user is disabled."), store.RetCAuth},
		{errors.New("NOAUTH Authentication required."), store.RetCAuth},
		{errors.New("ERR invalid password"), store.RetCAuth},
		{errors.New("ERR AUTH <password> called without any password configured for the default user"), store.RetCAuth},
		{context.DeadlineExceeded, store.RetCTimeout},
		{fmt.Errorf("dial: %w", os.ErrDeadlineExceeded), store.RetCTimeout},
		{errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), store.RetCConnection},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got := classifyConnectError("localhost:6379", tt.err)
			if got.Code != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got.Code)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("Expected the cause to be wrapped")
			}
		})
	}
}
