// Package notify sends operator-facing email notifications over SMTP.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/amWRit/TFN-CONNECT-sub001/internal/config"
)

// Mailer sends the promotion notice after a successful privilege
// restoration. Sending is best effort; callers log failures and move on.
type Mailer struct {
	cfg config.SMTPConfig
}

// NewMailer creates a Mailer from the SMTP configuration.
func NewMailer(cfg config.SMTPConfig) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}
	return &Mailer{cfg: cfg}, nil
}

// SendPromotionNotice emails the restored address that its super
// administrator access has been re-granted.
func (m *Mailer) SendPromotionNotice(ctx context.Context, email string) error {
	msg := mail.NewMsg()

	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("setting from address: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject("Super administrator access restored")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Super administrator access for %s was restored at %s after completing "+
			"the recovery procedure.\n\nIf you did not perform this recovery, "+
			"contact your operator immediately.\n",
		email, time.Now().UTC().Format(time.RFC3339)))

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
	}

	if m.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS for port 465, STARTTLS otherwise
		if m.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if m.cfg.Username != "" && m.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending promotion notice: %w", err)
	}

	return nil
}
