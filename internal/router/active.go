// Package router keeps track of the page currently shown to the user.
//
// The navigation helper is the only writer; everything else reads. Setting
// the active page never navigates, it only records which page is showing.
package router

import "sync"

// Page is an opaque handle to a displayed page.
type Page interface {
	ID() string
}

// Active is a single-slot holder of the currently displayed page.
// The zero value holds no page and is ready to use.
type Active struct {
	mu   sync.RWMutex
	page Page
}

// Current is the process-wide active page reference.
var Current = &Active{}

// Page returns the active page, or nil when none has been recorded.
func (a *Active) Page() Page {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.page
}

// SetPage records p as the active page. Last writer wins.
func (a *Active) SetPage(p Page) {
	a.mu.Lock()
	a.page = p
	a.mu.Unlock()
}

// Swap records p and returns the page it replaced.
func (a *Active) Swap(p Page) Page {
	a.mu.Lock()
	defer a.mu.Unlock()
	prev := a.page
	a.page = p
	return prev
}

// ID returns the active page's ID, or "" when no page is recorded.
func (a *Active) ID() string {
	if p := a.Page(); p != nil {
		return p.ID()
	}
	return ""
}
