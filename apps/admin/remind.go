package main

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/apper-canvas/insta-studyhub-auto/core"
	"github.com/apper-canvas/insta-studyhub-auto/core/report"
)

const digestTemplate = "upcoming_digest"

type digestData struct {
	Items []report.Item
	Days  int
}

// remind emails `to` the assignments due in the next `days` days; nothing is sent when none is.
func (cli *commandLine) remind(ctx context.Context, to mail.Address, days int) error {
	items, err := cli.services.Report.UpcomingWithin(ctx, nowFunc(), days)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		_, _ = fmt.Fprintf(cli.out, "nothing due in the next %d day(s)\n", days)
		return nil
	}

	msg := &core.EmailMessage{
		To:           []mail.Address{to},
		Subject:      fmt.Sprintf("%d assignment(s) due soon", len(items)),
		TemplateName: digestTemplate,
		TemplateData: digestData{Items: items, Days: days},
	}
	// senders only log render errors
	if err = msg.Render(); err != nil {
		return err
	}
	cli.mailer.SendMessages(msg)
	cli.mailer.Wait()

	_, _ = fmt.Fprintf(cli.out, "sent %d reminder(s) to %s\n", len(items), to.Address)
	return nil
}
