package mailer

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/vietanh2810/meetup-api/internal/config"
	"github.com/vietanh2810/meetup-api/internal/domain"
)

const sendTimeout = 15 * time.Second

// Mailer delivers transactional mail. Delivery is fire-and-forget: failures are
// logged and never reach the caller.
type Mailer interface {
	SendMeetingInvitation(ctx context.Context, recipients []domain.User, meeting domain.Meeting)
	SendPasswordReset(ctx context.Context, email, token string)
}

// New returns a SendGrid mailer in production and a logging one everywhere else.
func New(apiConf *config.APIConfig, mailConf *config.MailConfig) Mailer {
	links := linkBuilder{appURL: strings.TrimRight(apiConf.AppURL, "/")}

	if apiConf.IsProduction() && mailConf != nil && mailConf.SendGridAPIKey != "" {
		return &SendGridMailer{
			client: sendgrid.NewSendClient(mailConf.SendGridAPIKey),
			from:   mail.NewEmail("Meetup", mailConf.From),
			links:  links,
		}
	}

	return &LogMailer{links: links}
}

type linkBuilder struct {
	appURL string
}

func (l linkBuilder) invitations() string {
	return l.appURL + "/invitations"
}

func (l linkBuilder) passwordReset(token string) string {
	return l.appURL + "/resetpassword?token=" + url.QueryEscape(token)
}

type message struct {
	subject string
	text    string
	html    string
	to      []string
}

func invitationMessage(recipients []domain.User, meeting domain.Meeting, link string) message {
	to := make([]string, 0, len(recipients))
	for _, r := range recipients {
		to = append(to, r.Email)
	}

	name := html.EscapeString(meeting.Name)
	return message{
		subject: "Meeting Invitation | " + meeting.Name,
		text:    "You have been invited to a meeting",
		html: fmt.Sprintf(`<h1>You have been invited to a meeting "%s"</h1><br/>`+
			`<p>Check out your invitations page <a href="%s">here</a></p>`, name, link),
		to: to,
	}
}

func passwordResetMessage(email, link string) message {
	return message{
		subject: "Password reset request",
		text:    "Your password reset link: " + link,
		html: fmt.Sprintf(`<h1>You have requested a password reset</h1><br/>`+
			`<p>Please follow <a href="%s">this link</a> to reset your password.</p>`+
			`<p>If you did not request this you can ignore this email.</p>`, link),
		to: []string{email},
	}
}

type SendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
	links  linkBuilder
}

func (m *SendGridMailer) SendMeetingInvitation(ctx context.Context, recipients []domain.User, meeting domain.Meeting) {
	if len(recipients) == 0 {
		return
	}
	m.send(ctx, invitationMessage(recipients, meeting, m.links.invitations()))
}

func (m *SendGridMailer) SendPasswordReset(ctx context.Context, email, token string) {
	m.send(ctx, passwordResetMessage(email, m.links.passwordReset(token)))
}

// buildMail gives every recipient a personalization of their own so nobody
// sees the other addresses.
func (m *SendGridMailer) buildMail(msg message) *mail.SGMailV3 {
	v3 := mail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.Subject = msg.subject

	for _, to := range msg.to {
		p := mail.NewPersonalization()
		p.AddTos(mail.NewEmail("", to))
		v3.AddPersonalizations(p)
	}

	v3.AddContent(
		mail.NewContent("text/plain", msg.text),
		mail.NewContent("text/html", msg.html),
	)

	return v3
}

func (m *SendGridMailer) send(ctx context.Context, msg message) {
	v3 := m.buildMail(msg)
	ctx = context.WithoutCancel(ctx)

	go func() {
		ctx, cancel := context.WithTimeout(ctx, sendTimeout)
		defer cancel()

		resp, err := m.client.SendWithContext(ctx, v3)
		if err != nil {
			zap.L().Error("failed to send mail", zap.String("subject", msg.subject), zap.Error(err))
			return
		}
		if resp.StatusCode >= 400 {
			zap.L().Error("sendgrid rejected mail",
				zap.String("subject", msg.subject),
				zap.Int("status", resp.StatusCode),
				zap.String("body", resp.Body),
			)
			return
		}

		zap.L().Info("sent mail", zap.String("subject", msg.subject), zap.Int("recipients", len(msg.to)))
	}()
}

// LogMailer only logs what would have been sent.
type LogMailer struct {
	links linkBuilder
}

func (m *LogMailer) SendMeetingInvitation(_ context.Context, recipients []domain.User, meeting domain.Meeting) {
	if len(recipients) == 0 {
		return
	}

	msg := invitationMessage(recipients, meeting, m.links.invitations())
	zap.L().Info("mail skipped", zap.String("subject", msg.subject), zap.Strings("to", msg.to))
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, token string) {
	zap.L().Info("mail skipped", zap.String("subject", "Password reset request"), zap.String("to", email))
	zap.L().Debug("password reset link", zap.String("to", email), zap.String("link", m.links.passwordReset(token)))
}
