package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/apper-canvas/insta-studyhub-auto/core"
	backupsvc "github.com/apper-canvas/insta-studyhub-auto/services/backup"
)

var (
	newBackupStorage = func(ctx context.Context, conf *core.Config) (backupsvc.Storage, error) { // mockable
		return backupsvc.NewB2Storage(ctx, conf.B2.AccountID, conf.B2.AppKey, conf.B2.Bucket)
	}

	errNoBucket = errors.New("no B2 bucket configured")
)

func (cli *commandLine) backup(ctx context.Context) error {
	if cli.conf.B2.AccountID == "" || cli.conf.B2.Bucket == "" {
		return errNoBucket
	}
	storage, err := newBackupStorage(ctx, cli.conf)
	if err != nil {
		return err
	}

	url, err := backupsvc.NewService(cli.services.Report, storage).Run(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "snapshot uploaded to %s\n", url)
	return nil
}
