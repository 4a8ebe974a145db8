// Package singleinst lets a second `inkmark FILE` invocation hand its
// path to the already-running editor instead of starting another one.
// The channel is a Unix domain socket carrying one JSON request and one
// JSON response per connection.
package singleinst

import (
	"bufio"
	"context"
	"encoding/json"
	"log"
	"net"
	"os"
	"path/filepath"
)

// Message is a request from a second instance.
type Message struct {
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
}

// Response is the running instance's reply.
type Response struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg,omitempty"`
}

// OpenPath is the only command the server understands today.
const OpenPath = "open.path"

// SocketPath returns the per-user socket location and ensures its parent
// directory exists with private permissions.
func SocketPath() (string, error) {
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		p := filepath.Join(xdg, "inkmark.sock")
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return "", err
		}
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(home, ".local", "share", "inkmark", "instance.sock")
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return "", err
	}
	return p, nil
}

// Serve accepts connections at path until ctx is done, handling one
// Message per connection.
func Serve(ctx context.Context, path string, logger *log.Logger, handle func(Message) Response) error {
	// Remove stale socket if present
	_ = os.Remove(path)
	l, err := net.Listen("unix", path)
	if err != nil {
		return err
	}
	defer l.Close()
	defer os.Remove(path)
	_ = os.Chmod(path, 0o600)

	go func() {
		<-ctx.Done()
		_ = l.Close()
	}()

	for {
		c, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if logger != nil {
				logger.Printf("instance server accept: %v", err)
			}
			return err
		}
		go func(conn net.Conn) {
			defer conn.Close()
			dec := json.NewDecoder(bufio.NewReader(conn))
			var m Message
			if err := dec.Decode(&m); err != nil {
				_ = json.NewEncoder(conn).Encode(Response{OK: false, Msg: "bad request"})
				return
			}
			resp := handle(m)
			_ = json.NewEncoder(conn).Encode(resp)
		}(c)
	}
}

// Request sends one Message to a running instance and waits for its
// Response. Dial failure means no instance is listening.
func Request(ctx context.Context, path string, m Message) (Response, error) {
	var r Response
	d := &net.Dialer{}
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return r, err
	}
	defer conn.Close()
	if err := json.NewEncoder(conn).Encode(m); err != nil {
		return r, err
	}
	dec := json.NewDecoder(bufio.NewReader(conn))
	if err := dec.Decode(&r); err != nil {
		return r, err
	}
	return r, nil
}

// Forward asks a running instance to open filePath. It reports true only
// when an instance answered and accepted.
func Forward(ctx context.Context, sock, filePath string) bool {
	resp, err := Request(ctx, sock, Message{Name: OpenPath, Path: filePath})
	return err == nil && resp.OK
}
