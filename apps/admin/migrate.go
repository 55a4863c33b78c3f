package main

import (
	"errors"

	"github.com/trezcool/goose"

	appfs "github.com/apper-canvas/insta-studyhub-auto/fs"
)

var (
	gooseRunFunc = goose.RunFS // mockable

	errNoDatabase = errors.New("migrations need a SQL storage backend")
)

func (cli *commandLine) migrate(args []string) error {
	if cli.stores.DB == nil {
		return errNoDatabase
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.stores.DB, appfs.FS, appfs.MigrationsDir, arguments...)
}
