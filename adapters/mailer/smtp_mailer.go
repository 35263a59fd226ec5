package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/theafricanengineer/mozillians/internal/application/service"
	"github.com/theafricanengineer/mozillians/internal/config"
)

type smtpMailer struct {
	addr    string
	from    string
	baseURL string
}

func NewSMTPMailer(cfg config.Config) service.Mailer {
	return &smtpMailer{
		addr:    cfg.SMTP.Host + ":" + cfg.SMTP.Port,
		from:    cfg.SMTP.From,
		baseURL: strings.TrimRight(cfg.App.BaseURL, "/"),
	}
}

func (m *smtpMailer) SendInvite(_ context.Context, mail service.InviteMail) error {
	subject := fmt.Sprintf("%s invited you to join the member directory", mail.InviterName)
	body := fmt.Sprintf(
		"%s has invited you to join the member directory.\r\n\r\n"+
			"Follow this link to accept:\r\n%s/register?code=%s\r\n",
		mail.InviterName, m.baseURL, mail.Code,
	)

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + mail.Recipient,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(m.addr, nil, m.from, []string{mail.Recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send invite mail: %w", err)
	}
	return nil
}
