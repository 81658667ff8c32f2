package onboarding

import (
	"context"
	"time"

	"github.com/onboarding-api/internal/infrastructure/smtp"
	"github.com/onboarding-api/internal/infrastructure/sns"
	"github.com/onboarding-api/internal/infrastructure/whatsapp"
)

// mailChannel adapts the SMTP mailer to the email channel contract.
type mailChannel struct {
	mailer smtp.Mailer
	ttl    time.Duration
}

func NewMailChannel(mailer smtp.Mailer, ttl time.Duration) EmailChannel {
	return &mailChannel{mailer: mailer, ttl: ttl}
}

func (c *mailChannel) SendCode(_ context.Context, to, code string) error {
	return c.mailer.SendEmail(to, "Your verification code", smtp.OTPBody(code, int(c.ttl.Minutes())))
}

// whatsAppChannel adapts the WhatsApp template sender to the phone channel.
type whatsAppChannel struct {
	sender whatsapp.Sender
	ttl    time.Duration
}

func NewWhatsAppChannel(sender whatsapp.Sender, ttl time.Duration) PhoneChannel {
	return &whatsAppChannel{sender: sender, ttl: ttl}
}

func (c *whatsAppChannel) SendCode(ctx context.Context, to, code string) error {
	return c.sender.SendOTP(ctx, to, code, int(c.ttl.Minutes()))
}

// smsChannel adapts the SNS sender to the phone channel, used when WhatsApp
// delivery is not configured.
type smsChannel struct {
	sender sns.SMSSender
}

func NewSMSChannel(sender sns.SMSSender) PhoneChannel {
	return &smsChannel{sender: sender}
}

func (c *smsChannel) SendCode(ctx context.Context, to, code string) error {
	return c.sender.SendSMS(ctx, to, "Your verification code: "+code)
}
