package emailsvc

import (
	"bytes"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apper-canvas/insta-studyhub-auto/core"
)

func newTestConfig() *core.Config {
	return &core.Config{
		AppName: "StudyHub",
		Email:   core.EmailConfig{DefaultFromName: "StudyHub", DefaultFromEmail: "noreply@studyhub.test"},
	}
}

type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Debug(string, ...interface{}) {}
func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Warn(string, ...interface{})  {}
func (l *recordingLogger) Fatal(string, ...interface{}) {}

func (l *recordingLogger) Error(msg string, _ ...interface{}) {
	l.errors = append(l.errors, msg)
}

func TestConsoleService_SendMessages(t *testing.T) {
	out := new(bytes.Buffer)
	logger := new(recordingLogger)
	svc := NewConsoleService(newTestConfig(), out, logger)

	student := mail.Address{Name: "Ada", Address: "ada@studyhub.test"}
	svc.SendMessages(
		&core.EmailMessage{To: []mail.Address{student}, Subject: "2 assignment(s) due soon", BodyStr: "Essay, Lab Report"},
		&core.EmailMessage{Subject: "nobody", BodyStr: "lost"},
		&core.EmailMessage{To: []mail.Address{student}, Subject: "empty"},
		&core.EmailMessage{To: []mail.Address{student}, TemplateName: "missing"},
	)
	svc.Wait()

	sent := svc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Essay, Lab Report", sent[0].TextContent)
	assert.Equal(t, []string{"rendering email"}, logger.errors)

	printed := out.String()
	assert.Contains(t, printed, "From: \"StudyHub\" <noreply@studyhub.test>\r\n")
	assert.Contains(t, printed, "Subject: [StudyHub] 2 assignment(s) due soon\r\n")
	assert.Contains(t, printed, "To: \"Ada\" <ada@studyhub.test>\r\n")
	assert.Contains(t, printed, "Content-Type: text/plain")
	assert.NotContains(t, printed, "Content-Type: text/html")
	assert.Equal(t, 1, strings.Count(printed, "MIME-Version"))
}

func TestConsoleService_format(t *testing.T) {
	svc := NewConsoleServiceMock(newTestConfig())
	msg := core.EmailMessage{
		To:          []mail.Address{{Address: "a@studyhub.test"}, {Address: "b@studyhub.test"}},
		Subject:     "hi",
		TextContent: "plain",
		HTMLContent: "<p>html</p>",
	}

	formatted := svc.format(msg)
	assert.Contains(t, formatted, "To: <a@studyhub.test>, <b@studyhub.test>\r\n")
	assert.Contains(t, formatted, "Content-Type: multipart/alternative; boundary=")
	assert.Contains(t, formatted, "plain\r\n")
	assert.Contains(t, formatted, "Content-Type: text/html")
	assert.Contains(t, formatted, "<p>html</p>\r\n")
}

func TestConsoleServiceMock(t *testing.T) {
	svc := NewConsoleServiceMock(newTestConfig())
	msg := &core.EmailMessage{To: []mail.Address{{Address: "a@studyhub.test"}}, BodyStr: "hello"}
	svc.SendMessages(msg)

	// sent synchronously
	require.Len(t, svc.SentMessages(), 1)

	sent := svc.SentMessages()
	sent[0].Subject = "changed"
	assert.Empty(t, svc.SentMessages()[0].Subject)
}
