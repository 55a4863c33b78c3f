// Package backupsvc uploads JSON snapshots of the record store.
package backupsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/apper-canvas/insta-studyhub-auto/core/report"
)

const (
	keyPrefix       = "snapshots/studyhub-"
	keyTimeLayout   = "20060102T150405Z"
	jsonContentType = "application/json"
)

// Storage is any object store accepting uploads.
type Storage interface {
	// Upload stores the content of `r` under `key` and returns its URL.
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

type Service struct {
	reports *report.Service
	storage Storage
}

func NewService(reports *report.Service, storage Storage) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(reports, "reports"),
		vala.IsNotNil(storage, "storage"),
	).CheckAndPanic()
	return &Service{reports: reports, storage: storage}
}

// Key names the object of a snapshot.
func Key(snap report.Snapshot) string {
	return keyPrefix + snap.TakenAt.UTC().Format(keyTimeLayout) + ".json"
}

// Run uploads a snapshot of every course & assignment, returning its URL.
func (svc *Service) Run(ctx context.Context) (string, error) {
	snap, err := svc.reports.Snapshot(ctx)
	if err != nil {
		return "", errors.Wrap(err, "taking snapshot")
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encoding snapshot")
	}
	url, err := svc.storage.Upload(ctx, Key(snap), jsonContentType, bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "uploading snapshot")
	}
	return url, nil
}
