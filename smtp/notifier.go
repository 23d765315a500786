package smtp

import (
	"fmt"
	"strings"

	"github.com/matcornic/hermes/v2"
	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"github.com/rideaware/landing"
)

// Sender delivers messages. *gomail.Dialer implements it and connects with a
// 10 second network timeout.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type notifier struct {
	config *landing.Config
	hermes hermes.Hermes
	sender Sender
}

// NewNotifier returns a notifier that sends through the configured SMTP server.
// Port 465 uses implicit TLS, other ports upgrade with STARTTLS when offered.
func NewNotifier(config *landing.Config) landing.Notifier {
	d := gomail.NewDialer(config.SMTP.Host, config.SMTP.Port, config.SMTP.Username, config.SMTP.Password)
	return newNotifier(config, d)
}

func newNotifier(config *landing.Config, sender Sender) *notifier {
	return &notifier{
		config: config,
		hermes: hermes.Hermes{
			Product: hermes.Product{
				Name:      config.Newsletter.Product.Name,
				Link:      config.Newsletter.Product.Link,
				Copyright: fmt.Sprintf("The %s Team", config.Newsletter.Product.Name),
			},
		},
		sender: sender,
	}
}

// SendConfirmation sends the welcome email carrying the unsubscribe link.
func (n *notifier) SendConfirmation(to, unsubscribeLink string) error {
	return n.send(to, "Thanks for subscribing!", n.confirmationEmail(unsubscribeLink))
}

// SendContactConfirmation tells a visitor their message arrived.
func (n *notifier) SendContactConfirmation(to, name string) error {
	return n.send(to, fmt.Sprintf("We received your message - %s", n.config.Newsletter.Product.Name), n.contactConfirmationEmail(name))
}

// SendContactNotification forwards a contact form submission to an administrator.
func (n *notifier) SendContactNotification(to, name, email, subject, message string) error {
	return n.send(to, fmt.Sprintf("New contact message from %s", name), n.contactNotificationEmail(name, email, subject, message))
}

func (n *notifier) confirmationEmail(unsubscribeLink string) hermes.Email {
	product := n.config.Newsletter.Product.Name
	return hermes.Email{
		Body: hermes.Body{
			Title: fmt.Sprintf("Welcome to %s!", product),
			Intros: []string{
				"Thank you for subscribing to our newsletter.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "Changed your mind? You can stop receiving our emails at any time.",
					Button: hermes.Button{
						Color: "#DC4D2F",
						Text:  "Unsubscribe",
						Link:  unsubscribeLink,
					},
				},
			},
		},
	}
}

func (n *notifier) contactConfirmationEmail(name string) hermes.Email {
	product := n.config.Newsletter.Product.Name
	return hermes.Email{
		Body: hermes.Body{
			Title: fmt.Sprintf("Thank you for reaching out, %s!", name),
			Intros: []string{
				"We've received your message and will get back to you as soon as possible.",
				fmt.Sprintf("In the meantime, feel free to check out more about %s on our website.", product),
			},
			Signature: "Best regards",
		},
	}
}

func (n *notifier) contactNotificationEmail(name, email, subject, message string) hermes.Email {
	return hermes.Email{
		Body: hermes.Body{
			Title: "New Contact Message",
			Dictionary: []hermes.Entry{
				{Key: "From", Value: fmt.Sprintf("%s (%s)", name, email)},
				{Key: "Subject", Value: subject},
			},
			Outros: strings.Split(message, "\n"),
		},
	}
}

func (n *notifier) send(to, subject string, email hermes.Email) error {
	htmlBody, err := n.hermes.GenerateHTML(email)
	if err != nil {
		return errors.Errorf("failed to generate HTML email: %v", err)
	}
	textBody, err := n.hermes.GeneratePlainText(email)
	if err != nil {
		return errors.Errorf("failed to generate plain text email: %v", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from())
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := n.sender.DialAndSend(m); err != nil {
		return errors.Wrapf(err, "failed to send mail to %s", to)
	}

	return nil
}

func (n *notifier) from() string {
	if n.config.Newsletter.From != "" {
		return n.config.Newsletter.From
	}
	return n.config.SMTP.Username
}
