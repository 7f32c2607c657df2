package core

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appfs "github.com/Dagua-alejandro/unesum-redes-academico/fs"
)

type muteLogger struct{}

func (muteLogger) Enable(bool)                  {}
func (muteLogger) Debug(string, ...interface{}) {}
func (muteLogger) Info(string, ...interface{})  {}
func (muteLogger) Warn(string, ...interface{})  {}
func (muteLogger) Error(string, ...interface{}) {}
func (muteLogger) Fatal(string, ...interface{}) {}

// The base templates are underscore-prefixed; they must still come out of
// the embedded assets or no templated email ever renders.
func TestParseEmailTemplates_AccountConfirm(t *testing.T) {
	conf := &Config{TestMode: true, FrontendBaseURL: "http://localhost:3000"}
	ParseEmailTemplates(conf, appfs.FS, muteLogger{})

	confirmURL := "http://localhost:3000/auth/confirm?uid=abc&token=def"
	msg := &EmailMessage{
		To:           []mail.Address{{Name: "Caro", Address: "caro@unesum.edu.ec"}},
		Subject:      "Confirm your account",
		TemplateName: "account-confirm",
		TemplateData: struct{ Name, ConfirmURL string }{"Caro", confirmURL},
	}
	require.NoError(t, msg.Render(conf))
	require.True(t, msg.HasContent())

	assert.Contains(t, msg.TextContent, "Hi Caro,")
	assert.Contains(t, msg.TextContent, confirmURL)
	assert.Contains(t, msg.TextContent, "UNESUM Redes y Comunicaciones")

	assert.Contains(t, msg.HTMLContent, "Confirm my account")
	assert.Contains(t, msg.HTMLContent, `href="http://localhost:3000/auth/confirm?uid=abc&amp;token=def"`)
}
