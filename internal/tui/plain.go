package tui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/egoavara/rau/internal/i18n"
	"github.com/egoavara/rau/internal/rau"
	"github.com/egoavara/rau/internal/router"
)

// PlainDialogs renders dialogs as numbered prompts for non-interactive
// terminals and pipes.
type PlainDialogs struct {
	in        *bufio.Reader
	out       io.Writer
	interrupt func()
	active    *router.Active

	mu sync.Mutex
	wg sync.WaitGroup
}

type page string

func (p page) ID() string { return string(p) }

// NewPlainDialogs creates line-based dialogs.
func NewPlainDialogs(in io.Reader, out io.Writer, interrupt func()) *PlainDialogs {
	return &PlainDialogs{
		in:        bufio.NewReader(in),
		out:       out,
		interrupt: interrupt,
		active:    router.Current,
	}
}

// Show prints req and, when it has buttons, reads the choice in the
// background.
func (d *PlainDialogs) Show(req rau.DialogRequest) rau.Dialog {
	h := &plainHandle{dismissed: make(chan struct{})}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(req, h)
	}()
	return h
}

// Wait blocks until every shown dialog has closed.
func (d *PlainDialogs) Wait() {
	d.wg.Wait()
}

func (d *PlainDialogs) run(req rau.DialogRequest, h *plainHandle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if h.isDismissed() {
		return
	}

	if len(req.Buttons) == 0 {
		d.printf("%s...\n", joinNonEmpty(": ", req.Title, req.Message))
		return
	}

	previous := d.active.Swap(page("dialog/" + req.Title))
	btn, ok := d.prompt(req, h)
	d.active.SetPage(previous)

	if !ok {
		return
	}
	if btn.OnClick != nil {
		btn.OnClick()
	}
}

func (d *PlainDialogs) prompt(req rau.DialogRequest, h *plainHandle) (rau.Button, bool) {
	if req.Title != "" {
		d.printf("%s\n", req.Title)
	}
	if req.Message != "" {
		d.printf("%s\n", req.Message)
	}
	for i, btn := range req.Buttons {
		d.printf("  %d) %s\n", i+1, btn.Text)
	}

	for {
		d.printf("%s [1-%d]: ", i18n.Text("dialog.prompt", "Choose"), len(req.Buttons))
		line, err := d.in.ReadString('\n')
		if h.isDismissed() {
			return rau.Button{}, false
		}
		line = strings.TrimSpace(line)
		if line != "" {
			if btn, ok := pick(req.Buttons, line); ok {
				return btn, true
			}
			d.printf("%s\n", i18n.Text("dialog.invalid", "Invalid choice"))
		}
		if err != nil {
			d.printf("\n")
			if d.interrupt != nil {
				d.interrupt()
			}
			return rau.Button{}, false
		}
	}
}

func pick(buttons []rau.Button, answer string) (rau.Button, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(buttons) {
			return buttons[n-1], true
		}
		return rau.Button{}, false
	}
	for _, btn := range buttons {
		if strings.EqualFold(btn.Text, answer) {
			return btn, true
		}
	}
	return rau.Button{}, false
}

func (d *PlainDialogs) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(d.out, format, a...)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

type plainHandle struct {
	once      sync.Once
	dismissed chan struct{}
}

func (h *plainHandle) isDismissed() bool {
	select {
	case <-h.dismissed:
		return true
	default:
		return false
	}
}

func (h *plainHandle) Dismiss() {
	h.once.Do(func() { close(h.dismissed) })
}
