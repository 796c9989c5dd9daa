// Package mailpkg provides credential delivery over SMTP.
package mailpkg

import (
	"fmt"
	"net/smtp"
)

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	address string
	sender  string
}

// NewSMTPMailer returns an SMTPMailer for the given relay address and sender.
func NewSMTPMailer(address, sender string) *SMTPMailer {
	return &SMTPMailer{
		address: address,
		sender:  sender,
	}
}

// SendCredentials mails the generated username and password to a newly
// registered client.
func (m *SMTPMailer) SendCredentials(to, username, password string) error {
	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Vos identifiants E-Bank\r\n\r\n"+
			"Bienvenue sur E-Bank.\r\n\r\nNom d'utilisateur: %s\r\nMot de passe: %s\r\n",
		m.sender, to, username, password,
	)

	return smtp.SendMail(m.address, nil, m.sender, []string{to}, []byte(body))
}
