package rau

import "errors"

// errPermissionDenied is attached to flows the user abandons after a denial.
var errPermissionDenied = errors.New("storage permission was not granted")

// negotiatePermission makes sure storage may be written. A denial offers
// "Try Again" or "Cancel"; it reports false once the flow has ended.
func (f *flow) negotiatePermission() bool {
	perms := f.w.host.Permissions
	if perms == nil || perms.Check(WriteStorage) {
		return true
	}
	if !f.to(StateAwaitingPermission) {
		return false
	}

	for attempt := 1; ; attempt++ {
		ev, err := perms.Request(f.ctx, PermissionRequestCode, WriteStorage)
		if err != nil {
			if f.ctx.Err() != nil {
				f.finish(StateCancelled, f.ctx.Err())
				return false
			}
			f.finish(StateFailed, &FlowError{Kind: KindPermissionDenied, Err: err})
			return false
		}
		if ev.RequestCode == PermissionRequestCode && ev.Granted {
			return true
		}
		f.w.logf("rau: permission request %d denied (attempt %d)", ev.RequestCode, attempt)

		if limit := f.w.MaxPermissionRetries; limit > 0 && attempt > limit {
			f.finish(StateCancelled, &FlowError{Kind: KindPermissionDenied, Err: errPermissionDenied})
			return false
		}

		role, ok := f.ask(DialogRequest{
			Title:   f.w.text(keyPermissionTitle),
			Message: f.w.text(keyPermissionMessage),
			Buttons: []Button{
				{Text: f.w.text(keyTryAgain), Role: RolePositive},
				{Text: f.w.text(keyCancel), Role: RoleNegative},
			},
		})
		if !ok {
			f.finish(StateCancelled, f.ctx.Err())
			return false
		}
		if role != RolePositive {
			f.finish(StateCancelled, &FlowError{Kind: KindPermissionDenied, Err: errPermissionDenied})
			return false
		}

		if perms.Check(WriteStorage) {
			return true
		}
	}
}
