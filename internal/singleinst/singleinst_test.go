package singleinst

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForSocket(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		if fi, err := os.Stat(path); err == nil && fi.Mode()&os.ModeSocket != 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("socket %s never appeared", path)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestForwardToRunningInstance(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "inkmark.sock")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan string, 1)
	go func() {
		_ = Serve(ctx, sock, log.New(io.Discard, "", 0), func(m Message) Response {
			if m.Name != OpenPath {
				return Response{OK: false, Msg: "unknown command"}
			}
			got <- m.Path
			return Response{OK: true}
		})
	}()
	waitForSocket(t, sock)

	require.True(t, Forward(ctx, sock, "/tmp/x.md"))
	select {
	case p := <-got:
		assert.Equal(t, "/tmp/x.md", p)
	case <-time.After(2 * time.Second):
		t.Fatal("handler never saw the forwarded path")
	}
}

func TestForwardWithoutServerFails(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "no-server.sock")
	assert.False(t, Forward(context.Background(), sock, "/tmp/x.md"))
}

func TestUnknownCommandRejected(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "inkmark.sock")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = Serve(ctx, sock, log.New(io.Discard, "", 0), func(m Message) Response {
			if m.Name != OpenPath {
				return Response{OK: false, Msg: "unknown command"}
			}
			return Response{OK: true}
		})
	}()
	waitForSocket(t, sock)

	resp, err := Request(ctx, sock, Message{Name: "bogus"})
	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Equal(t, "unknown command", resp.Msg)
}

func TestServeReplacesStaleSocket(t *testing.T) {
	dir := t.TempDir()
	sock := filepath.Join(dir, "inkmark.sock")
	// Leave a stale socket file behind, as a crashed instance would.
	require.NoError(t, os.WriteFile(sock, nil, 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = Serve(ctx, sock, log.New(io.Discard, "", 0), func(Message) Response { return Response{OK: true} })
	}()
	waitForSocket(t, sock)
	assert.True(t, Forward(ctx, sock, "/tmp/a.md"))
}

func TestSocketPathUsesRuntimeDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	p, err := SocketPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "inkmark.sock"), p)
}
