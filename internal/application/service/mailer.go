package service

import "context"

// InviteMail is everything the mailer needs to notify an invite recipient.
type InviteMail struct {
	Recipient   string
	InviterName string
	Code        string
}

type Mailer interface {
	SendInvite(ctx context.Context, mail InviteMail) error
}
