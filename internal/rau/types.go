// Package rau drives the remote application update flow: check for a new
// version, ask the user, negotiate permissions, download, apply and restart.
package rau

import (
	"context"
	"errors"
)

// ErrNoUpdate is returned by a Service when the running version is current.
var ErrNoUpdate = errors.New("no new updates were found")

// Options configures a single update check. All fields default to false.
type Options struct {
	ShowProgressCheck      bool `json:"showProgressCheck" yaml:"showProgressCheck"`           // Show an indicator while querying
	ShowProgressErrorAlert bool `json:"showProgressErrorAlert" yaml:"showProgressErrorAlert"` // Alert the user when the query fails
	Silent                 bool `json:"silent" yaml:"silent"`                                 // Skip confirmation, update and restart
}

// Meta is the optional metadata attached to an update.
type Meta struct {
	IsMandatory bool   `json:"isMandatory"`
	Title       string `json:"title"`
	RedirectURL string `json:"redirectURL"`
}

// Downloader fetches the files of an update.
type Downloader interface {
	Download(ctx context.Context) (Artifact, error)
}

// Artifact is a downloaded update waiting to be applied.
type Artifact interface {
	UpdateAll(ctx context.Context) error
}

// Result describes an available update.
type Result struct {
	NewVersion string
	Meta       *Meta
	Source     Downloader
}

// Download fetches the update files.
func (r *Result) Download(ctx context.Context) (Artifact, error) {
	if r.Source == nil {
		return nil, errors.New("update has no download source")
	}
	return r.Source.Download(ctx)
}

// meta returns the result metadata, never nil
func (r *Result) meta() Meta {
	if r.Meta == nil {
		return Meta{}
	}
	return *r.Meta
}

// DownloaderFunc adapts a function to the Downloader interface.
type DownloaderFunc func(ctx context.Context) (Artifact, error)

// Download calls f(ctx).
func (f DownloaderFunc) Download(ctx context.Context) (Artifact, error) {
	return f(ctx)
}

// ArtifactFunc adapts a function to the Artifact interface.
type ArtifactFunc func(ctx context.Context) error

// UpdateAll calls f(ctx).
func (f ArtifactFunc) UpdateAll(ctx context.Context) error {
	return f(ctx)
}
