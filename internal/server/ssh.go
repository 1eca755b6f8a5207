package server

import (
	"fmt"
	"io"
	"log"

	"github.com/gliderlabs/ssh"

	"ascii-donut/internal/anim"
	"ascii-donut/internal/config"
	"ascii-donut/internal/display"
	"ascii-donut/internal/render"
)

// SSHServer wraps the SSH listener and animation loop integration.
type SSHServer struct {
	loop    *anim.Loop
	cfg     config.Config
	ramp    render.GlyphRamp
	addr    string
	hostKey string
}

// NewSSHServer creates a new SSH server bound to cfg.Addr. Every session
// renders cfg's torus for its own terminal size.
func NewSSHServer(cfg config.Config, loop *anim.Loop) (*SSHServer, error) {
	ramp, err := cfg.GlyphRamp()
	if err != nil {
		return nil, fmt.Errorf("glyph ramp: %w", err)
	}
	return &SSHServer{
		loop:    loop,
		cfg:     cfg,
		ramp:    ramp,
		addr:    cfg.Addr,
		hostKey: cfg.HostKey,
	}, nil
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := s.newServer()

	// Set host key
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

func (s *SSHServer) newServer() *ssh.Server {
	return &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	// Viewport is fixed for the whole session
	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	pipeline, err := s.cfg.Pipeline(termW, termH)
	if err != nil {
		fmt.Fprintf(sess, "Error: %v\n", err)
		log.Printf("Rejected %s: %v", username, err)
		return
	}

	viewerID, frameCh := s.loop.AddViewer(username)
	log.Printf("Viewer connected: %s (%s) %dx%d", username, viewerID, termW, termH)
	defer func() {
		s.loop.RemoveViewer(viewerID)
		log.Printf("Viewer disconnected: %s (%s)", username, viewerID)
	}()

	color := s.cfg.Color && ptyReq.Term != "dumb"
	engine := render.NewEngine(termW, termH, s.ramp, color)

	// Setup terminal
	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.Reset)
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	quitCh := make(chan struct{})

	// Goroutine: read input
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				close(quitCh)
				return
			}
			if display.WantsQuit(buf[:n]) {
				close(quitCh)
				return
			}
		}
	}()

	// Goroutine: drain window changes; the session keeps its first size
	go func() {
		for range winCh {
		}
	}()

	// Main render loop: read from frame channel
	for {
		select {
		case <-quitCh:
			return
		case <-sess.Context().Done():
			return
		case f, ok := <-frameCh:
			if !ok {
				return
			}
			output := engine.Render(pipeline.Frame(f.A, f.B))
			if len(output) > 0 {
				if _, err := io.WriteString(sess, output); err != nil {
					return
				}
			}
		}
	}
}
