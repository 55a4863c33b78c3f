package main

import (
	"fmt"

	echoapi "github.com/apper-canvas/insta-studyhub-auto/apps/api/echo"
)

func (cli *commandLine) token(subject string) error {
	claims := echoapi.NewClaims(cli.conf, subject, nowFunc())
	ss, err := echoapi.GenerateToken(cli.conf, claims)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cli.out, ss)
	return nil
}
