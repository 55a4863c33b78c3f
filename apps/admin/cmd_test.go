package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/gommon/color"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/apper-canvas/insta-studyhub-auto/apps/api/echo"
	"github.com/apper-canvas/insta-studyhub-auto/apps/shared"
	"github.com/apper-canvas/insta-studyhub-auto/core"
	appfs "github.com/apper-canvas/insta-studyhub-auto/fs"
	backupsvc "github.com/apper-canvas/insta-studyhub-auto/services/backup"
	emailsvc "github.com/apper-canvas/insta-studyhub-auto/services/email"
	dummydb "github.com/apper-canvas/insta-studyhub-auto/storage/database/dummy"
)

// a Wednesday
var now = time.Date(2024, time.October, 16, 12, 0, 0, 0, time.UTC)

type testCLI struct {
	*commandLine
	mail *emailsvc.ConsoleService
	out  *bytes.Buffer
}

func newTestConfig() *core.Config {
	return &core.Config{
		Env:       "TEST",
		AppName:   "StudyHub",
		TestMode:  true,
		SecretKey: "test-secret",
		Server:    core.ServerConfig{JWTExpirationDelta: time.Hour},
		Email:     core.EmailConfig{DefaultFromName: "StudyHub", DefaultFromEmail: "noreply@studyhub.test"},
		Grading:   core.GradingConfig{UpcomingDays: 7},
	}
}

func setup(t *testing.T, fixtures bool) testCLI {
	t.Helper()
	nowFunc = func() time.Time { return now }
	require.NoError(t, core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, true /* strict */))

	conf := newTestConfig()
	db, err := dummydb.Open(dummydb.Options{Fixtures: fixtures, Now: now})
	require.NoError(t, err)
	stores := &shared.Stores{
		Courses:     dummydb.NewCourseRepository(db),
		Assignments: dummydb.NewAssignmentRepository(db),
	}

	clr := color.New()
	clr.Disable()

	out := new(bytes.Buffer)
	mail := emailsvc.NewConsoleServiceMock(conf)
	return testCLI{
		commandLine: &commandLine{
			conf:     conf,
			stores:   stores,
			services: shared.NewServices(stores, conf),
			mailer:   mail,
			out:      out,
			color:    clr,
		},
		mail: mail,
		out:  out,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    []string // substrings of the output
}

func (cli testCLI) check(t *testing.T, tt cliTest) {
	t.Helper()
	cli.out.Reset()

	err := cli.run(append([]string{"admin"}, tt.args...))
	switch {
	case tt.wantErr != nil:
		assert.Equal(t, tt.wantErr, err)
	case tt.wantErrStr != "":
		if assert.Error(t, err) {
			assert.Equal(t, tt.wantErrStr, err.Error())
		}
	default:
		assert.NoError(t, err)
	}
	for _, want := range tt.wantOut {
		assert.Contains(t, cli.out.String(), want)
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli := setup(t, true)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp, wantOut: []string{"Usage:"}},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp, wantOut: []string{"remind -to EMAIL"}},
		{name: "flag help", args: []string{"report", "-h"}, wantErr: errHelp},
		{name: "unknown flag", args: []string{"report", "-lol"}, wantErrStr: "flag provided but not defined: -lol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli.check(t, tt)
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t, true)

	t.Run("no database", func(t *testing.T) {
		cli.check(t, cliTest{args: []string{"migrate", "up"}, wantErr: errNoDatabase})
	})

	// sql.Open does not connect
	db, err := sql.Open("postgres", "postgres://localhost/studyhub_test?sslmode=disable")
	require.NoError(t, err)
	defer db.Close()
	cli.stores.DB = db

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		assert.Equal(t, appfs.MigrationsDir, dir)
		switch command {
		case "up", "up-by-one", "down", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli.check(t, tt)
		})
	}
}

func Test_commandLine_report(t *testing.T) {
	cli := setup(t, true)

	tests := []cliTest{
		{
			name:    "summaries",
			args:    []string{"report"},
			wantOut: []string{"Courses", "Calculus II", "89.0%", "World History", "91.0%"},
		},
		{
			name:    "grades",
			args:    []string{"report", "-grades"},
			wantOut: []string{"Grades", "overall: 64.1% D", "highest: 91.0%, lowest: 0.0%", "on track: 1/4", "A: 1", "D: 0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli.check(t, tt)
		})
	}

	t.Run("no grades section by default", func(t *testing.T) {
		cli.check(t, cliTest{args: []string{"report"}})
		assert.NotContains(t, cli.out.String(), "overall:")
	})

	t.Run("empty", func(t *testing.T) {
		empty := setup(t, false)
		empty.check(t, cliTest{args: []string{"report"}, wantOut: []string{"no courses"}})
	})
}

func Test_commandLine_remind(t *testing.T) {
	cli := setup(t, true)

	tests := []cliTest{
		{name: "no recipient", args: []string{"remind"}, wantErr: errHelp},
		{name: "invalid email", args: []string{"remind", "-to", "lol"}, wantErrStr: `invalid email "lol"`},
		{name: "non-positive days", args: []string{"remind", "-to", "awe@test.cd", "-days", "0"}, wantErrStr: "days must be positive (got 0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli.check(t, tt)
		})
	}
	assert.Empty(t, cli.mail.SentMessages())

	t.Run("default horizon", func(t *testing.T) {
		cli.check(t, cliTest{
			args:    []string{"remind", "-to", "Awe <awe@test.cd>"},
			wantOut: []string{"sent 4 reminder(s) to awe@test.cd"},
		})

		sent := cli.mail.SentMessages()
		require.Len(t, sent, 1)
		msg := sent[0]
		assert.Equal(t, "awe@test.cd", msg.To[0].Address)
		assert.Equal(t, "4 assignment(s) due soon", msg.Subject)
		assert.Contains(t, msg.TextContent, "in the next 7 day(s)")
		assert.Contains(t, msg.TextContent, "- Problem Set 5 (Calculus II), due Today, high priority")
		assert.Contains(t, msg.TextContent, "Project 2: Todo CLI")
		assert.NotContains(t, msg.TextContent, "Midterm Review")
		assert.Contains(t, msg.HTMLContent, "<strong>Problem Set 5</strong>")
	})

	t.Run("one day", func(t *testing.T) {
		cli.check(t, cliTest{
			args:    []string{"remind", "-to", "awe@test.cd", "-days", "1"},
			wantOut: []string{"sent 2 reminder(s)"},
		})
		sent := cli.mail.SentMessages()
		require.Len(t, sent, 2)
		assert.Contains(t, sent[1].TextContent, "Lab Report: Alkenes")
		assert.NotContains(t, sent[1].TextContent, "Essay")
	})

	t.Run("nothing due", func(t *testing.T) {
		empty := setup(t, false)
		empty.check(t, cliTest{
			args:    []string{"remind", "-to", "awe@test.cd"},
			wantOut: []string{"nothing due in the next 7 day(s)"},
		})
		assert.Empty(t, empty.mail.SentMessages())
	})
}

type fakeStorage struct {
	key, contentType string
	data             []byte
	err              error
}

func (s *fakeStorage) Upload(_ context.Context, key, contentType string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.key, s.contentType, s.data = key, contentType, data
	return "https://b2.test/file/studyhub/" + key, nil
}

func Test_commandLine_backup(t *testing.T) {
	cli := setup(t, true)

	t.Run("no bucket", func(t *testing.T) {
		cli.check(t, cliTest{args: []string{"backup"}, wantErr: errNoBucket})
	})

	cli.conf.B2 = core.B2Config{AccountID: "acc", AppKey: "key", Bucket: "studyhub"}
	storage := new(fakeStorage)
	newBackupStorage = func(context.Context, *core.Config) (backupsvc.Storage, error) {
		return storage, nil
	}

	t.Run("upload", func(t *testing.T) {
		cli.check(t, cliTest{args: []string{"backup"}, wantOut: []string{"snapshot uploaded to https://b2.test/file/studyhub/snapshots/studyhub-"}})
		assert.True(t, strings.HasPrefix(storage.key, "snapshots/studyhub-"))
		assert.Equal(t, "application/json", storage.contentType)
		assert.Contains(t, string(storage.data), `"Calculus II"`)
	})

	t.Run("upload failure", func(t *testing.T) {
		storage.err = errors.New("b2 down")
		cli.check(t, cliTest{args: []string{"backup"}, wantErrStr: "uploading snapshot: b2 down"})
	})

	t.Run("storage failure", func(t *testing.T) {
		newBackupStorage = func(context.Context, *core.Config) (backupsvc.Storage, error) {
			return nil, errors.New("bad credentials")
		}
		cli.check(t, cliTest{args: []string{"backup"}, wantErrStr: "bad credentials"})
	})
}

func Test_commandLine_token(t *testing.T) {
	cli := setup(t, true)

	cli.check(t, cliTest{name: "no subject", args: []string{"token"}, wantErr: errHelp})

	cli.check(t, cliTest{args: []string{"token", "-subject", "awe"}})
	ss := strings.TrimSpace(cli.out.String())

	claims := new(echoapi.Claims)
	parser := jwt.Parser{SkipClaimsValidation: true}
	token, err := parser.ParseWithClaims(ss, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cli.conf.SecretKey), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "HS256", token.Method.Alg())
	assert.Equal(t, "awe", claims.Subject)
	assert.Equal(t, "StudyHub", claims.Issuer)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt)
}
