// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package email

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/oliverandrich/music-catalog/internal/config"
	"codeberg.org/oliverandrich/music-catalog/internal/i18n"
	"codeberg.org/oliverandrich/music-catalog/internal/models"
	"github.com/wneessen/go-mail"
)

// Service sends account emails over SMTP.
type Service struct {
	cfg     *config.SMTPConfig
	baseURL string
}

// NewService creates a new email service.
func NewService(cfg *config.SMTPConfig, baseURL string) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &Service{
		cfg:     cfg,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// SendWelcome sends the localized welcome message to a newly registered user.
func (s *Service) SendWelcome(ctx context.Context, user *models.User, lang string) error {
	msg, err := s.WelcomeMessage(ctx, user, lang)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

// WelcomeMessage builds the welcome message without sending it.
func (s *Service) WelcomeMessage(ctx context.Context, user *models.User, lang string) (*mail.Msg, error) {
	ctx = i18n.ContextFor(ctx, lang)

	subject := i18n.T(ctx, "mail_welcome_subject")
	body := i18n.TData(ctx, "mail_welcome_body", map[string]any{
		"Username": user.Username,
		"BaseURL":  s.baseURL,
	})

	return s.newMessage(user.Email, subject, body)
}

// newMessage assembles a plain text message.
func (s *Service) newMessage(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return msg, nil
}

// clientOptions derives go-mail options from the SMTP config.
func (s *Service) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	// Implicit TLS on 465, STARTTLS elsewhere
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	return opts
}

// send delivers a message via SMTP using go-mail.
func (s *Service) send(ctx context.Context, msg *mail.Msg) error {
	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
