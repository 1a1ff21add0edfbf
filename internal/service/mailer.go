package service

import (
	"context"
	"fmt"

	"github.com/formaplace/formaplace-backend/internal/config"
	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"
)

// Mailer sends the transactional mail of the marketplace. Implementations
// must be safe for concurrent use.
type Mailer interface {
	// SendWelcome delivers the initial credentials of a server-created
	// account (expert, trainer). The plaintext password travels by mail
	// once; only the hash is stored.
	SendWelcome(ctx context.Context, to, name, plainPassword string) error
	// SendActivation notifies a trainer that their account was activated.
	SendActivation(ctx context.Context, to, name string) error
	// SendRefusal notifies an applicant that their demande was refused.
	SendRefusal(ctx context.Context, to, name string) error
	// SendReceipt confirms a paid cart.
	SendReceipt(ctx context.Context, to, name, paymentRef string, totalCents int64) error
}

// SMTPMailer delivers mail through the configured SMTP relay.
type SMTPMailer struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewSMTPMailer creates an SMTPMailer.
func NewSMTPMailer(cfg *config.Config, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.MailFrom); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(m.cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.SMTPUser),
		gomail.WithPassword(m.cfg.SMTPPass),
	}
	client, err := gomail.NewClient(m.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	m.log.Debug().Str("to", to).Str("subject", subject).Msg("Mail sent")
	return nil
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, to, name, plainPassword string) error {
	body := fmt.Sprintf(
		"Bonjour %s,\n\nVotre compte FormaPlace a été créé.\n"+
			"Identifiant : %s\nMot de passe initial : %s\n\n"+
			"Pensez à changer ce mot de passe après votre première connexion.\n",
		name, to, plainPassword)
	return m.send(ctx, to, "Bienvenue sur FormaPlace", body)
}

func (m *SMTPMailer) SendActivation(ctx context.Context, to, name string) error {
	body := fmt.Sprintf(
		"Bonjour %s,\n\nVotre compte formateur a été activé par un administrateur.\n"+
			"Vous pouvez maintenant vous connecter et publier vos formations.\n", name)
	return m.send(ctx, to, "Votre compte formateur est activé", body)
}

func (m *SMTPMailer) SendRefusal(ctx context.Context, to, name string) error {
	body := fmt.Sprintf(
		"Bonjour %s,\n\nNous sommes au regret de vous informer que votre demande "+
			"pour devenir formateur n'a pas été retenue.\n", name)
	return m.send(ctx, to, "Votre demande FormaPlace", body)
}

func (m *SMTPMailer) SendReceipt(ctx context.Context, to, name, paymentRef string, totalCents int64) error {
	body := fmt.Sprintf(
		"Bonjour %s,\n\nNous confirmons votre paiement de %.2f € (référence %s).\n"+
			"Vos formations sont maintenant accessibles depuis votre espace.\n",
		name, float64(totalCents)/100, paymentRef)
	return m.send(ctx, to, "Confirmation de paiement", body)
}

// LogMailer is used when MAIL_ENABLED=false: it logs instead of sending,
// so local development needs no SMTP relay.
type LogMailer struct {
	log zerolog.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendWelcome(_ context.Context, to, name, _ string) error {
	m.log.Info().Str("to", to).Str("name", name).Msg("Mail disabled: welcome mail skipped")
	return nil
}

func (m *LogMailer) SendActivation(_ context.Context, to, name string) error {
	m.log.Info().Str("to", to).Str("name", name).Msg("Mail disabled: activation mail skipped")
	return nil
}

func (m *LogMailer) SendRefusal(_ context.Context, to, name string) error {
	m.log.Info().Str("to", to).Str("name", name).Msg("Mail disabled: refusal mail skipped")
	return nil
}

func (m *LogMailer) SendReceipt(_ context.Context, to, name, _ string, _ int64) error {
	m.log.Info().Str("to", to).Str("name", name).Msg("Mail disabled: receipt mail skipped")
	return nil
}
