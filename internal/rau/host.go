package rau

import "context"

//go:generate mockgen -source=host.go -destination=mock_host_test.go -package=rau

// ConnectionType is the kind of network the device is on.
type ConnectionType int

const (
	ConnectionNone ConnectionType = iota
	ConnectionUnknown
	ConnectionWifi
	ConnectionMobile
	ConnectionEthernet
)

// Network reports current connectivity.
type Network interface {
	ConnectionType() ConnectionType
}

// Service queries the remote update service.
// It returns ErrNoUpdate when no newer version exists.
type Service interface {
	Check(ctx context.Context) (*Result, error)
}

// Permission identifies an OS permission.
type Permission string

// WriteStorage grants writing the downloaded update to storage.
const WriteStorage Permission = "WRITE_EXTERNAL_STORAGE"

// PermissionRequestCode tags the storage permission request.
const PermissionRequestCode = 1002

// PermissionEvent is delivered when a permission request completes.
type PermissionEvent struct {
	RequestCode int
	Granted     bool
}

// Permissions checks and requests OS permissions.
type Permissions interface {
	Check(p Permission) bool
	Request(ctx context.Context, requestCode int, p Permission) (PermissionEvent, error)
}

// App controls the host application.
type App interface {
	Restart() error
	OpenURL(url string) error
}

// ButtonRole identifies the semantic role of a dialog button.
type ButtonRole int

const (
	RolePositive ButtonRole = iota
	RoleNegative
	RoleNeutral
)

func (r ButtonRole) String() string {
	switch r {
	case RolePositive:
		return "positive"
	case RoleNegative:
		return "negative"
	case RoleNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Button is one choice offered by a dialog.
type Button struct {
	Text    string
	Role    ButtonRole
	OnClick func()
}

// DialogRequest describes a dialog to show. A request without buttons is a
// progress indicator that stays up until dismissed.
type DialogRequest struct {
	Title      string
	Message    string
	Cancelable bool
	Buttons    []Button
}

// Dialog is a shown dialog.
type Dialog interface {
	// Dismiss closes the dialog and returns once it is no longer on screen.
	Dismiss()
}

// Dialogs renders dialogs. Show must not block on user input; button
// callbacks are invoked once the user picks a button.
type Dialogs interface {
	Show(req DialogRequest) Dialog
}

// Capabilities describes what the platform supports.
type Capabilities struct {
	OS                        string
	SupportsCancelableDialogs bool // dialogs carry a cancelable flag that must be cleared for modal flows
	RequiresRuntimePermission bool // storage writes need a runtime permission grant
}

// Host bundles everything the workflow consumes from the platform.
type Host struct {
	Network     Network
	Service     Service
	Dialogs     Dialogs
	Permissions Permissions
	App         App
	Platform    Capabilities
}
