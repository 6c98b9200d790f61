package host

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/egoavara/rau/internal/rau"
)

type scriptedDialogs struct {
	click   string
	shown   []rau.DialogRequest
	dismiss int
}

type scriptedDialog struct{ d *scriptedDialogs }

func (s scriptedDialog) Dismiss() { s.d.dismiss++ }

func (s *scriptedDialogs) Show(req rau.DialogRequest) rau.Dialog {
	s.shown = append(s.shown, req)
	for _, b := range req.Buttons {
		if b.Text == s.click && b.OnClick != nil {
			go b.OnClick()
		}
	}
	return scriptedDialog{s}
}

func TestPermissions_CheckWritableDir(t *testing.T) {
	p := NewPermissions(filepath.Join(t.TempDir(), "rau"), nil, nil)
	if !p.Check(rau.WriteStorage) {
		t.Error("Check(WriteStorage) = false for a temp dir")
	}
	if p.Check(rau.Permission("CAMERA")) {
		t.Error("Check() should refuse unknown permissions")
	}
}

func TestPermissions_RequestAlreadyGranted(t *testing.T) {
	dialogs := &scriptedDialogs{}
	p := NewPermissions("/opt/rau/rau", dialogs, nil)
	p.writable = func(string) bool { return true }

	ev, err := p.Request(context.Background(), rau.PermissionRequestCode, rau.WriteStorage)
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if !ev.Granted || ev.RequestCode != rau.PermissionRequestCode {
		t.Errorf("event = %+v, want granted with request code", ev)
	}
	if len(dialogs.shown) != 0 {
		t.Errorf("shown %d dialogs, want none", len(dialogs.shown))
	}
}

func TestPermissions_RequestCheckAgain(t *testing.T) {
	tests := []struct {
		name        string
		click       string
		grantLater  bool
		wantGranted bool
	}{
		{"granted after check again", "Check again", true, true},
		{"still denied after check again", "Check again", false, false},
		{"deny", "Deny", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialogs := &scriptedDialogs{click: tt.click}
			p := NewPermissions("/opt/rau/rau", dialogs, nil)
			checks := 0
			p.writable = func(string) bool {
				checks++
				return tt.grantLater && checks > 1
			}

			ev, err := p.Request(context.Background(), 7, rau.WriteStorage)
			if err != nil {
				t.Fatalf("Request() error = %v", err)
			}
			if ev.Granted != tt.wantGranted || ev.RequestCode != 7 {
				t.Errorf("event = %+v, want granted=%v code=7", ev, tt.wantGranted)
			}
			if len(dialogs.shown) != 1 {
				t.Fatalf("shown %d dialogs, want 1", len(dialogs.shown))
			}
			if !strings.Contains(dialogs.shown[0].Message, "/opt/rau") {
				t.Errorf("message %q should name the directory", dialogs.shown[0].Message)
			}
		})
	}
}

func TestPermissions_RequestCancelled(t *testing.T) {
	dialogs := &scriptedDialogs{}
	p := NewPermissions("/opt/rau/rau", dialogs, nil)
	p.writable = func(string) bool { return false }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Request(ctx, 1, rau.WriteStorage); err != context.Canceled {
		t.Errorf("Request() error = %v, want context.Canceled", err)
	}
	if dialogs.dismiss != 1 {
		t.Errorf("dismissed %d times, want 1", dialogs.dismiss)
	}
}

func TestPermissions_LocalizedDialog(t *testing.T) {
	dialogs := &scriptedDialogs{click: "다시 확인"}
	lookup := func(key, fallback string) string {
		if key == keyCheckAgain {
			return "다시 확인"
		}
		return fallback
	}
	p := NewPermissions("/opt/rau/rau", dialogs, lookup)
	p.writable = func(string) bool { return false }

	if _, err := p.Request(context.Background(), 1, rau.WriteStorage); err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	req := dialogs.shown[0]
	if req.Title != "Permission Required" {
		t.Errorf("Title = %q", req.Title)
	}
	if req.Buttons[0].Text != "다시 확인" || req.Buttons[1].Text != "Deny" {
		t.Errorf("buttons = %q, %q", req.Buttons[0].Text, req.Buttons[1].Text)
	}
}
