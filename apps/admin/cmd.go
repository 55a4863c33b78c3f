package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"time"

	"github.com/labstack/gommon/color"

	"github.com/apper-canvas/insta-studyhub-auto/apps/shared"
	"github.com/apper-canvas/insta-studyhub-auto/core"
)

var (
	nowFunc = time.Now // mockable

	errHelp = errors.New("help provided")
)

// mailer is an email service that can be waited on before exiting.
type mailer interface {
	core.EmailService
	Wait()
}

type commandLine struct {
	conf     *core.Config
	logger   core.Logger
	stores   *shared.Stores
	services shared.Services
	mailer   mailer
	out      io.Writer
	color    *color.Color
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]     - run a goose command (up, up-by-one, up-to, down, down-to, redo, version)")
	_, _ = fmt.Fprintln(cli.out, "  report [-grades]           - print the course summaries, and the grades report")
	_, _ = fmt.Fprintln(cli.out, "  remind -to EMAIL [-days N] - email the digest of the assignments due soon")
	_, _ = fmt.Fprintln(cli.out, "  backup                     - upload a snapshot of the records to B2")
	_, _ = fmt.Fprintln(cli.out, "  token -subject NAME        - issue an API token")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()

	reportCmd := cli.newFlagSet("report")
	reportGrades := reportCmd.Bool("grades", false, "Also print the grades report.")

	remindCmd := cli.newFlagSet("remind")
	remindTo := remindCmd.String("to", "", "The recipient's email.")
	remindDays := remindCmd.Int("days", cli.conf.Grading.UpcomingDays, "How many days ahead to look.")

	tokenCmd := cli.newFlagSet("token")
	tokenSubject := tokenCmd.String("subject", "", "Who the token is issued to.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "report":
		if err := cli.parse(reportCmd, args[2:]); err != nil {
			return err
		}
		return cli.report(ctx, *reportGrades)

	case "remind":
		if err := cli.parse(remindCmd, args[2:]); err != nil {
			return err
		}
		if *remindTo == "" {
			remindCmd.Usage()
			return errHelp
		}
		to, err := mail.ParseAddress(*remindTo)
		if err != nil {
			return fmt.Errorf("invalid email %q", *remindTo)
		}
		if *remindDays <= 0 {
			return fmt.Errorf("days must be positive (got %d)", *remindDays)
		}
		return cli.remind(ctx, *to, *remindDays)

	case "backup":
		return cli.backup(ctx)

	case "token":
		if err := cli.parse(tokenCmd, args[2:]); err != nil {
			return err
		}
		if *tokenSubject == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenSubject)

	default:
		cli.printUsage()
		return errHelp
	}
}
