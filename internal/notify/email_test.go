package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSendGridSender_RequiresAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{FromEmail: "rx@arogya.example"}, nil)
	assert.Nil(t, sender)
}

func TestNewSendGridSender_DefaultsFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{APIKey: "SG.test", FromEmail: "rx@arogya.example"}, nil)
	if assert.NotNil(t, sender) {
		assert.Equal(t, "Arogya Pharmacy", sender.fromName)
	}
}

func TestNewTwilioWhatsAppSender_RequiresCredentials(t *testing.T) {
	assert.Nil(t, NewTwilioWhatsAppSender("", "", "+10000000000", nil))
	assert.Nil(t, NewTwilioWhatsAppSender("AC123", "", "+10000000000", nil))
}

func TestWhatsAppAddr(t *testing.T) {
	assert.Equal(t, "whatsapp:+919812345001", whatsappAddr("+919812345001"))
	assert.Equal(t, "whatsapp:+919812345001", whatsappAddr("whatsapp:+919812345001"))
}

func TestStubSenders(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, NewStubEmailSender(nil).Send(ctx, EmailMessage{To: "a@b.c", Subject: "hi"}))
	assert.NoError(t, NewStubWhatsAppSender(nil).SendWhatsApp(ctx, "+911234567890", "hello"))
}

func TestFormatTwilioError(t *testing.T) {
	assert.Equal(t, "status 500", formatTwilioError(500, nil))
	assert.Equal(t, "status 429 code 20429: Too Many Requests",
		formatTwilioError(429, []byte(`{"code":20429,"message":"Too Many Requests"}`)))
	assert.Equal(t, "status 502: upstream gone", formatTwilioError(502, []byte("upstream gone")))
}
