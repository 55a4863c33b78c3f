package main

import (
	"context"
	"log"
	"os"

	"github.com/labstack/gommon/color"
	"golang.org/x/term"

	"github.com/apper-canvas/insta-studyhub-auto/apps/shared"
	"github.com/apper-canvas/insta-studyhub-auto/core"
	appfs "github.com/apper-canvas/insta-studyhub-auto/fs"
	emailsvc "github.com/apper-canvas/insta-studyhub-auto/services/email"
	logsvc "github.com/apper-canvas/insta-studyhub-auto/services/logger"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	stores, err := shared.OpenStores(context.Background(), conf, logger, false /* migrate */)
	errAndDie(logger, err)

	errAndDie(logger, core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, true /* strict */))

	var mailSvc mailer
	if conf.Email.SendgridApiKey != "" {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	} else {
		mailSvc = emailsvc.NewConsoleService(conf, os.Stdout, logger)
	}

	clr := color.New()
	clr.SetOutput(os.Stdout)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		clr.Disable()
	}

	cli := commandLine{
		conf:     conf,
		logger:   logger,
		stores:   stores,
		services: shared.NewServices(stores, conf),
		mailer:   mailSvc,
		out:      os.Stdout,
		color:    clr,
	}
	err = cli.run(os.Args)

	if cerr := stores.Close(); cerr != nil {
		logger.Error("closing stores", cerr)
	}
	logger.Wait()

	if err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		os.Exit(1)
	}
}

func errAndDie(logger core.Logger, err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
