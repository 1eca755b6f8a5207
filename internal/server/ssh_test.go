package server

import (
	"bytes"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	gossh "golang.org/x/crypto/ssh"

	"ascii-donut/internal/anim"
	"ascii-donut/internal/config"
)

// syncBuffer collects session output across goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

const testRamp = ".oO@"

func startTestServer(t *testing.T) (string, *anim.Loop) {
	t.Helper()

	cfg, err := config.FromPreset(config.PresetCoarse)
	if err != nil {
		t.Fatal(err)
	}
	cfg.K1 = 15
	cfg.Ramp = testRamp
	cfg.Color = false

	loop := anim.NewLoop(anim.Schedule{Step: 0.1, Ratio: 0.2}, 100)
	go loop.Run()
	t.Cleanup(loop.Stop)

	s, err := NewSSHServer(cfg, loop)
	if err != nil {
		t.Fatal(err)
	}

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	srv := s.newServer()
	go srv.Serve(l)
	t.Cleanup(func() { srv.Close() })

	return l.Addr().String(), loop
}

func dial(t *testing.T, addr, user string) *gossh.Client {
	t.Helper()
	client, err := gossh.Dial("tcp", addr, &gossh.ClientConfig{
		User:            user,
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSessionStreamsFrames(t *testing.T) {
	addr, loop := startTestServer(t)
	client := dial(t, addr, "tester")

	sess, err := client.NewSession()
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	if err := sess.RequestPty("xterm", 10, 20, gossh.TerminalModes{}); err != nil {
		t.Fatal(err)
	}
	var out syncBuffer
	sess.Stdout = &out
	stdin, err := sess.StdinPipe()
	if err != nil {
		t.Fatal(err)
	}
	if err := sess.Shell(); err != nil {
		t.Fatal(err)
	}

	waitFor(t, "a drawn glyph", func() bool {
		return strings.ContainsAny(out.String(), testRamp)
	})
	if !strings.HasPrefix(out.String(), "\x1b[?1049h") {
		t.Errorf("session did not switch to the alternate screen: %q", out.String())
	}
	if loop.Viewers() != 1 {
		t.Errorf("Viewers() = %d, want 1", loop.Viewers())
	}

	stdin.Write([]byte("q"))
	done := make(chan struct{})
	go func() {
		sess.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end after q")
	}

	waitFor(t, "viewer removal", func() bool { return loop.Viewers() == 0 })
	if !strings.Contains(out.String(), "\x1b[?1049l") {
		t.Error("session did not restore the main screen")
	}
}

func TestSessionRequiresPTY(t *testing.T) {
	addr, loop := startTestServer(t)
	client := dial(t, addr, "nopty")

	sess, err := client.NewSession()
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	out, _ := sess.Output("")
	if !strings.Contains(string(out), "PTY required") {
		t.Errorf("output = %q, want the PTY error", out)
	}
	if loop.Viewers() != 0 {
		t.Errorf("Viewers() = %d, want 0", loop.Viewers())
	}
}
