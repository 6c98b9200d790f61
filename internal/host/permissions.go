package host

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/egoavara/rau/internal/debug"
	"github.com/egoavara/rau/internal/rau"
)

const (
	keyGrantAccess = "grantWriteAccess"
	keyCheckAgain  = "checkAgain"
	keyDeny        = "deny"
)

var permissionFallbacks = map[string]string{
	keyGrantAccess: "Grant write access to %s, then choose Check again.",
	keyCheckAgain:  "Check again",
	keyDeny:        "Deny",
}

// Permissions maps workflow permissions onto file system access of the
// directory holding the binary.
type Permissions struct {
	dir     string
	dialogs rau.Dialogs
	strings rau.Lookup

	writable func(dir string) bool
}

// NewPermissions creates permissions for the directory of executable.
// Requests are presented through dialogs.
func NewPermissions(executable string, dialogs rau.Dialogs, strings rau.Lookup) *Permissions {
	return &Permissions{
		dir:      filepath.Dir(executable),
		dialogs:  dialogs,
		strings:  strings,
		writable: writable,
	}
}

// Check reports whether p is granted.
func (p *Permissions) Check(perm rau.Permission) bool {
	if perm != rau.WriteStorage {
		debug.Logf("unknown permission %s", perm)
		return false
	}
	return p.writable(p.dir)
}

// Request asks the user to grant perm and reports the state once they
// answer.
func (p *Permissions) Request(ctx context.Context, requestCode int, perm rau.Permission) (rau.PermissionEvent, error) {
	event := rau.PermissionEvent{RequestCode: requestCode}
	if p.Check(perm) {
		event.Granted = true
		return event, nil
	}
	if p.dialogs == nil {
		return event, nil
	}

	answered := make(chan bool, 1)
	d := p.dialogs.Show(rau.DialogRequest{
		Title:   p.text("permissionRequiredTitle", rau.Fallback("permissionRequiredTitle")),
		Message: fmt.Sprintf(p.text(keyGrantAccess, permissionFallbacks[keyGrantAccess]), p.dir),
		Buttons: []rau.Button{
			{Text: p.text(keyCheckAgain, permissionFallbacks[keyCheckAgain]), Role: rau.RolePositive, OnClick: func() { answered <- true }},
			{Text: p.text(keyDeny, permissionFallbacks[keyDeny]), Role: rau.RoleNegative, OnClick: func() { answered <- false }},
		},
	})

	select {
	case again := <-answered:
		if again {
			event.Granted = p.Check(perm)
		}
		return event, nil
	case <-ctx.Done():
		d.Dismiss()
		return event, ctx.Err()
	}
}

func (p *Permissions) text(key, fallback string) string {
	if p.strings == nil {
		return fallback
	}
	return p.strings(key, fallback)
}
