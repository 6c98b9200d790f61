package rau

import (
	"context"
	"fmt"
	"sync"

	"github.com/egoavara/rau/internal/debug"
	"github.com/egoavara/rau/internal/i18n"
)

// Workflow runs update checks against a host.
// A Workflow may be shared; every check runs as an independent flow.
type Workflow struct {
	host Host

	// Strings resolves user-facing text. Defaults to i18n.Text.
	Strings Lookup

	// MaxPermissionRetries bounds the "Try Again" loop after a denied
	// permission request. Zero leaves the loop to the user.
	MaxPermissionRetries int

	// Logf receives progress and error logs. Defaults to debug.Logf.
	Logf func(format string, args ...any)

	// Finished, when set, is called with the outcome of every flow.
	Finished func(Outcome)
}

// New creates a workflow bound to host.
func New(host Host) *Workflow {
	return &Workflow{
		host:    host,
		Strings: i18n.Text,
		Logf:    debug.Logf,
	}
}

// CheckUpdate starts an update check and returns immediately. Failures are
// handled inside the flow and never reported to the caller.
func (w *Workflow) CheckUpdate(opts Options) {
	go w.Run(context.Background(), opts)
}

// Run performs one update check and blocks until the flow reaches a
// terminal state.
func (w *Workflow) Run(ctx context.Context, opts Options) (out Outcome) {
	f := &flow{
		w:     w,
		ctx:   ctx,
		opts:  opts,
		state: StateIdle,
		trace: []State{StateIdle},
	}

	defer func() {
		if r := recover(); r != nil {
			w.logf("rau: flow panicked in %s: %v", f.state, r)
			f.err = fmt.Errorf("flow panicked: %v", r)
			f.state = StateFailed
			f.trace = append(f.trace, StateFailed)
		}
		// no dangling indicator on any exit path
		f.indicator.dismiss()

		out = Outcome{State: f.state, Err: f.err, Trace: f.trace}
		if w.Finished != nil {
			w.Finished(out)
		}
	}()

	f.run()
	return
}

func (w *Workflow) logf(format string, args ...any) {
	if w.Logf != nil {
		w.Logf(format, args...)
	}
}

// flow is the state of one check invocation.
type flow struct {
	w         *Workflow
	ctx       context.Context
	opts      Options
	state     State
	trace     []State
	err       error
	indicator *indicator
}

// to moves the flow to next. An illegal move fails the flow and returns false.
func (f *flow) to(next State) bool {
	if !f.state.CanTransition(next) {
		f.err = &FlowError{Kind: KindIllegalTransition, Err: fmt.Errorf("%s -> %s", f.state, next)}
		f.w.logf("rau: %v", f.err)
		f.state = StateFailed
		f.trace = append(f.trace, StateFailed)
		return false
	}
	f.w.logf("rau: %s -> %s", f.state, next)
	f.state = next
	f.trace = append(f.trace, next)
	return true
}

// finish ends the flow in a terminal state.
func (f *flow) finish(state State, err error) {
	if err != nil {
		f.w.logf("rau: %s", FormatError(err))
	}
	if f.to(state) {
		f.err = err
	}
}

func (f *flow) run() {
	host := f.w.host
	if host.Network == nil || host.Network.ConnectionType() == ConnectionNone {
		f.finish(StateOffline, &FlowError{Kind: KindNoConnectivity, Err: ErrNoConnectivity})
		return
	}

	if !f.to(StateChecking) {
		return
	}
	if f.opts.ShowProgressCheck {
		f.indicator = f.showIndicator("", f.w.text(keyCheckingUpdate))
	}

	result, err := host.Service.Check(f.ctx)
	f.indicator.dismiss()
	if err == nil && result == nil {
		err = ErrNoUpdate
	}
	if err != nil {
		if f.opts.ShowProgressErrorAlert {
			f.alert(f.w.text(keyNoUpdate))
		}
		f.finish(StateFailed, &FlowError{Kind: KindQueryFailure, Err: err})
		return
	}

	if !f.to(StateResultInterpreted) {
		return
	}
	meta := result.meta()
	title := meta.Title
	if title == "" {
		title = f.w.text(keyNewVersionAvailable)
	}
	message := f.w.composeMessage(result.NewVersion, meta.IsMandatory)
	f.w.logf("rau: version %s available (mandatory=%t)", result.NewVersion, meta.IsMandatory)

	if f.opts.Silent {
		f.startUpdate(result)
		return
	}

	if !f.to(StateConfirming) {
		return
	}
	buttons := []Button{{Text: f.w.text(keyUpdateNow), Role: RolePositive}}
	if !meta.IsMandatory {
		buttons = append(buttons, Button{Text: f.w.text(keyLater), Role: RoleNeutral})
	}
	role, ok := f.ask(DialogRequest{Title: title, Message: message, Buttons: buttons})
	if !ok {
		f.finish(StateCancelled, f.ctx.Err())
		return
	}
	if role != RolePositive {
		f.finish(StateCancelled, nil)
		return
	}

	f.startUpdate(result)
}

// startUpdate negotiates permissions where the platform needs them, then
// applies the update.
func (f *flow) startUpdate(result *Result) {
	if f.w.host.Platform.RequiresRuntimePermission && !f.negotiatePermission() {
		return
	}
	f.performUpdate(result)
}

func (f *flow) performUpdate(result *Result) {
	host := f.w.host
	meta := result.meta()

	f.indicator = f.showIndicator(f.w.text(keyWarning), f.w.text(keyUpdateInProgress))

	if meta.RedirectURL != "" {
		// the update replaces the binary itself, hand off to the host
		f.indicator.dismiss()
		if err := host.App.OpenURL(meta.RedirectURL); err != nil {
			f.finish(StateFailed, &FlowError{Kind: KindRedirectFailure, Err: err})
			return
		}
		f.to(StateRedirected)
		return
	}

	if !f.to(StateDownloading) {
		return
	}
	artifact, err := result.Download(f.ctx)
	if err != nil {
		f.indicator.dismiss()
		f.finish(StateFailed, &FlowError{Kind: KindDownloadFailure, Err: err})
		return
	}

	if !f.to(StateApplying) {
		return
	}
	if err := artifact.UpdateAll(f.ctx); err != nil {
		f.indicator.dismiss()
		f.finish(StateFailed, &FlowError{Kind: KindApplyFailure, Err: err})
		return
	}

	f.indicator.dismiss()
	if !f.to(StateRestarting) {
		return
	}
	if err := host.App.Restart(); err != nil {
		f.finish(StateFailed, &FlowError{Kind: KindRestartFailure, Err: err})
	}
}

// ask shows a modal dialog and waits for a button or context cancellation.
func (f *flow) ask(req DialogRequest) (ButtonRole, bool) {
	choice := make(chan ButtonRole, 1)
	for i := range req.Buttons {
		role := req.Buttons[i].Role
		req.Buttons[i].OnClick = func() {
			select {
			case choice <- role:
			default:
			}
		}
	}
	req.Cancelable = false

	d := f.show(req)
	select {
	case role := <-choice:
		return role, true
	case <-f.ctx.Done():
		d.Dismiss()
		return 0, false
	}
}

// alert shows an informational dialog with a single OK button and does not
// wait for it.
func (f *flow) alert(message string) {
	f.show(DialogRequest{
		Message:    message,
		Cancelable: f.w.host.Platform.SupportsCancelableDialogs,
		Buttons:    []Button{{Text: f.w.text(keyOK), Role: RolePositive, OnClick: func() {}}},
	})
}

func (f *flow) showIndicator(title, message string) *indicator {
	return &indicator{d: f.show(DialogRequest{Title: title, Message: message})}
}

func (f *flow) show(req DialogRequest) Dialog {
	if f.w.host.Dialogs == nil {
		return noDialog{}
	}
	return f.w.host.Dialogs.Show(req)
}

// indicator dismisses its dialog at most once. A nil indicator is inert.
type indicator struct {
	once sync.Once
	d    Dialog
}

func (i *indicator) dismiss() {
	if i == nil {
		return
	}
	i.once.Do(i.d.Dismiss)
}

type noDialog struct{}

func (noDialog) Dismiss() {}
