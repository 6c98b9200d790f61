package tui

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/egoavara/rau/internal/debug"
	"github.com/egoavara/rau/internal/rau"
	"github.com/egoavara/rau/internal/router"
)

// Host is a rau.Dialogs that can wait for its dialogs to close.
type Host interface {
	rau.Dialogs
	Wait()
}

// NewHost returns bubbletea dialogs when in is a terminal, and line-based
// dialogs otherwise. interrupt is called when the user aborts with ctrl+c
// or input ends.
func NewHost(in io.Reader, out io.Writer, interrupt func()) Host {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return NewDialogs(in, out, interrupt)
	}
	return NewPlainDialogs(in, out, interrupt)
}

// Dialogs renders workflow dialogs as bubbletea programs, one at a time.
type Dialogs struct {
	in        io.Reader
	out       io.Writer
	interrupt func()
	active    *router.Active

	mu sync.Mutex
	wg sync.WaitGroup
}

// NewDialogs creates terminal dialogs reading keys from in.
func NewDialogs(in io.Reader, out io.Writer, interrupt func()) *Dialogs {
	return &Dialogs{
		in:        in,
		out:       out,
		interrupt: interrupt,
		active:    router.Current,
	}
}

// Show starts a program for req and returns immediately.
func (d *Dialogs) Show(req rau.DialogRequest) rau.Dialog {
	h := newHandle()
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(req, h)
	}()
	return h
}

// Wait blocks until every shown dialog has closed.
func (d *Dialogs) Wait() {
	d.wg.Wait()
}

func (d *Dialogs) run(req rau.DialogRequest, h *handle) {
	d.mu.Lock()

	var model interface {
		tea.Model
		router.Page
	}
	if len(req.Buttons) == 0 {
		model = NewProgressModel(req)
	} else {
		model = NewDialogModel(req)
	}

	p := tea.NewProgram(model, tea.WithInput(d.in), tea.WithOutput(d.out))
	if !h.attach(p) {
		d.mu.Unlock()
		close(h.done)
		return
	}
	previous := d.active.Swap(model)
	final, err := p.Run()
	d.active.SetPage(previous)
	d.mu.Unlock()
	// the terminal is restored once Run returns
	close(h.done)

	if err != nil {
		debug.Logf("dialog %q failed: %v", req.Title, err)
		return
	}

	switch m := final.(type) {
	case DialogModel:
		if m.Interrupted() {
			d.abort()
			return
		}
		if btn, ok := m.Chosen(); ok && btn.OnClick != nil {
			btn.OnClick()
		}
	case ProgressModel:
		if m.Interrupted() {
			d.abort()
		}
	}
}

func (d *Dialogs) abort() {
	if d.interrupt != nil {
		d.interrupt()
	}
}

// handle dismisses a dialog whether or not its program has started.
type handle struct {
	once      sync.Once
	dismissed chan struct{}
	done      chan struct{} // closed when the program exits or is skipped

	mu      sync.Mutex
	program *tea.Program
}

func newHandle() *handle {
	return &handle{
		dismissed: make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// attach binds p to the handle. It reports false when the dialog was
// dismissed first, in which case p must not run.
func (h *handle) attach(p *tea.Program) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.isDismissed() {
		return false
	}
	h.program = p
	return true
}

func (h *handle) isDismissed() bool {
	select {
	case <-h.dismissed:
		return true
	default:
		return false
	}
}

// Dismiss closes the dialog. When its program is already attached, Dismiss
// returns only after the program has exited and released the terminal.
func (h *handle) Dismiss() {
	h.once.Do(func() {
		h.mu.Lock()
		close(h.dismissed)
		p := h.program
		h.mu.Unlock()
		if p == nil {
			return
		}
		p.Send(dismissMsg{})
		<-h.done
	})
}
