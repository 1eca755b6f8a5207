package display

import (
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ascii-donut/internal/anim"
	"ascii-donut/internal/render"
)

// statusRows is the space the status line takes below the frame.
const statusRows = 1

// sizeTimeout bounds how long Init waits for the first window size.
const sizeTimeout = time.Second

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
)

// Tea runs a bubbletea program and feeds it frames as messages.
type Tea struct {
	label   string
	opts    []tea.ProgramOption
	program *tea.Program

	sizeCh        chan tea.WindowSizeMsg
	width, height int

	done chan struct{}
	err  error

	quit     chan struct{}
	quitOnce sync.Once
}

// frameMsg carries one rendered frame into the program.
type frameMsg struct {
	fb    render.FrameBuffer
	frame anim.Frame
}

// NewTea returns a bubbletea surface. label names the preset in the status
// line; opts are passed to the program after the alternate screen option.
func NewTea(label string, opts ...tea.ProgramOption) *Tea {
	return &Tea{
		label:  label,
		opts:   opts,
		sizeCh: make(chan tea.WindowSizeMsg, 1),
		done:   make(chan struct{}),
		quit:   make(chan struct{}),
	}
}

// Init starts the program and waits for the terminal size.
func (t *Tea) Init() error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, t.opts...)
	t.program = tea.NewProgram(teaModel{owner: t}, opts...)

	go func() {
		_, err := t.program.Run()
		t.err = err
		close(t.done)
		t.stop()
	}()

	select {
	case sz := <-t.sizeCh:
		t.width, t.height = sz.Width, sz.Height-statusRows
	case <-time.After(sizeTimeout):
		t.width, t.height = DefaultWidth, DefaultHeight-statusRows
	case <-t.done:
		if t.err != nil {
			return fmt.Errorf("bubbletea: %w", t.err)
		}
		return errors.New("bubbletea: program exited during startup")
	}
	if t.height < 1 {
		t.height = 1
	}
	return nil
}

func (t *Tea) stop() {
	t.quitOnce.Do(func() { close(t.quit) })
}

// Size returns the frame area: the window minus the status line.
func (t *Tea) Size() (int, int) {
	return t.width, t.height
}

// Show hands fb to the program.
func (t *Tea) Show(fb render.FrameBuffer, f anim.Frame) error {
	select {
	case <-t.done:
		return t.err
	default:
	}
	t.program.Send(frameMsg{fb: fb, frame: f})
	return nil
}

// Quit is closed on a quit key or when the program exits.
func (t *Tea) Quit() <-chan struct{} {
	return t.quit
}

// Fini stops the program and waits for it to restore the terminal.
func (t *Tea) Fini() {
	if t.program == nil {
		return
	}
	t.program.Quit()
	<-t.done
}

type teaModel struct {
	owner  *Tea
	frame  string
	status string
}

func (m teaModel) Init() tea.Cmd {
	return nil
}

func (m teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		select {
		case m.owner.sizeCh <- msg:
		default:
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "esc", "ctrl+c":
			m.owner.stop()
			return m, tea.Quit
		}
	case frameMsg:
		m.frame = msg.fb.String()
		m.status = fmt.Sprintf("frame %d  A=%.2f  B=%.2f  q to quit", msg.frame.Tick, msg.frame.A, msg.frame.B)
	}
	return m, nil
}

func (m teaModel) View() string {
	return m.frame + "\n" + labelStyle.Render(m.owner.label) + " " + statusStyle.Render(m.status)
}
