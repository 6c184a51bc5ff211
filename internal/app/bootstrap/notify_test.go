package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/arogyalabs/pharmacy-ai-platform/internal/config"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/notify"
)

func TestBuildEmailSender_DefaultStub(t *testing.T) {
	sender, err := BuildEmailSender(context.Background(), &appconfig.Config{}, nil)
	require.NoError(t, err)
	_, ok := sender.(*notify.StubEmailSender)
	assert.True(t, ok)
}

func TestBuildEmailSender_SendGrid(t *testing.T) {
	cfg := &appconfig.Config{
		EmailProvider:     "sendgrid",
		SendGridAPIKey:    "SG.test",
		SendGridFromEmail: "rx@arogya.example",
	}
	sender, err := BuildEmailSender(context.Background(), cfg, nil)
	require.NoError(t, err)
	_, ok := sender.(*notify.SendGridSender)
	assert.True(t, ok)
}

func TestBuildEmailSender_SendGridMissingKey(t *testing.T) {
	_, err := BuildEmailSender(context.Background(), &appconfig.Config{EmailProvider: "sendgrid"}, nil)
	assert.Error(t, err)
}

func TestBuildEmailSender_UnknownProvider(t *testing.T) {
	_, err := BuildEmailSender(context.Background(), &appconfig.Config{EmailProvider: "carrier-pigeon"}, nil)
	assert.Error(t, err)
}

func TestBuildWhatsAppSender(t *testing.T) {
	sender := BuildWhatsAppSender(&appconfig.Config{}, nil)
	_, ok := sender.(*notify.StubWhatsAppSender)
	assert.True(t, ok, "no credentials means stub")

	sender = BuildWhatsAppSender(&appconfig.Config{
		TwilioAccountSID: "AC123",
		TwilioAuthToken:  "token",
		TwilioFromNumber: "+10000000000",
	}, nil)
	_, ok = sender.(*notify.TwilioWhatsAppSender)
	assert.True(t, ok)
}
