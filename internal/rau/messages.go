package rau

// Lookup resolves a localized string by key, returning fallback when the
// key is unknown.
type Lookup func(key, fallback string) string

// Message keys with their English fallbacks.
const (
	keyCheckingUpdate      = "checkingUpdate"
	keyNoUpdate            = "noupdate"
	keyOK                  = "ok"
	keyNewVersionAvailable = "newVersionAvailable"
	keyVersion             = "version"
	keyIsReadyToInstall    = "isReadyToInstall"
	keyUpdateMandatory     = "updateMandatory"
	keyUpdateOptional      = "updateOptional"
	keyUpdateNow           = "updateNow"
	keyLater               = "later"
	keyPermissionTitle     = "permissionRequiredTitle"
	keyPermissionMessage   = "permissionRequiredMessage"
	keyTryAgain            = "tryAgain"
	keyCancel              = "cancel"
	keyWarning             = "warning"
	keyUpdateInProgress    = "updateIsInProgress"
)

var fallbacks = map[string]string{
	keyCheckingUpdate:      "Checking for updates",
	keyNoUpdate:            "No new updates were found",
	keyOK:                  "OK",
	keyNewVersionAvailable: "A new update is ready!",
	keyVersion:             "Version",
	keyIsReadyToInstall:    "is ready to install",
	keyUpdateMandatory:     "This update is mandatory!",
	keyUpdateOptional:      "Do you want to update?",
	keyUpdateNow:           "Update now",
	keyLater:               "Later",
	keyPermissionTitle:     "Permission Required",
	keyPermissionMessage:   "You should grant permission for update. Would you want to try again?",
	keyTryAgain:            "Try Again",
	keyCancel:              "Cancel",
	keyWarning:             "Warning",
	keyUpdateInProgress:    "Update is in progress",
}

// Fallback returns the English text for key.
func Fallback(key string) string {
	return fallbacks[key]
}

// MessageKeys lists every localizable key used by the flow.
func MessageKeys() []string {
	return []string{
		keyCheckingUpdate, keyNoUpdate, keyOK, keyNewVersionAvailable,
		keyVersion, keyIsReadyToInstall, keyUpdateMandatory, keyUpdateOptional,
		keyUpdateNow, keyLater, keyPermissionTitle, keyPermissionMessage,
		keyTryAgain, keyCancel, keyWarning, keyUpdateInProgress,
	}
}

func (w *Workflow) text(key string) string {
	fallback := fallbacks[key]
	if w.Strings == nil {
		return fallback
	}
	return w.Strings(key, fallback)
}

// composeMessage builds the confirmation text, e.g.
// "Version 1.2.0 is ready to install.\n\nDo you want to update?"
func (w *Workflow) composeMessage(newVersion string, mandatory bool) string {
	msg := w.text(keyVersion) + " " + newVersion + " " + w.text(keyIsReadyToInstall) + ".\n\n"
	if mandatory {
		return msg + w.text(keyUpdateMandatory)
	}
	return msg + w.text(keyUpdateOptional)
}
