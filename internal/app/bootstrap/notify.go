package bootstrap

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/arogyalabs/pharmacy-ai-platform/internal/config"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/notify"
	"github.com/arogyalabs/pharmacy-ai-platform/pkg/logging"
)

// BuildEmailSender selects the email provider. Unconfigured environments get
// the stub sender, which logs instead of sending.
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	switch cfg.EmailProvider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender == nil {
			return nil, fmt.Errorf("bootstrap: sendgrid provider requires SENDGRID_API_KEY")
		}
		logger.Info("email via sendgrid", "from", cfg.SendGridFromEmail)
		return sender, nil

	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
		logger.Info("email via ses", "region", cfg.AWSRegion, "from", cfg.SESFromEmail)
		return sender, nil

	case "":
		logger.Info("email provider not configured; using stub sender")
		return notify.NewStubEmailSender(logger), nil

	default:
		return nil, fmt.Errorf("bootstrap: unknown email provider %q", cfg.EmailProvider)
	}
}

// BuildWhatsAppSender returns the Twilio sender when credentials exist,
// otherwise the logging stub.
func BuildWhatsAppSender(cfg *appconfig.Config, logger *logging.Logger) notify.WhatsAppSender {
	if logger == nil {
		logger = logging.Default()
	}
	if sender := notify.NewTwilioWhatsAppSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger); sender != nil {
		logger.Info("whatsapp via twilio", "from", cfg.TwilioFromNumber)
		return sender
	}
	logger.Info("twilio credentials not configured; using stub whatsapp sender")
	return notify.NewStubWhatsAppSender(logger)
}
