package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/r-yashaswini/job-recommender-system/core"
)

// SMTPSender delivers alerts over SMTP with STARTTLS authentication.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
}

// NewSMTPSender creates a sender for the given SMTP account.
func NewSMTPSender(host string, port int, username, password string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
}

// Send delivers one alert email. The context is not honored mid-dial; SMTP
// sessions are short and the net/smtp API offers no hook.
func (s *SMTPSender) Send(ctx context.Context, recipient *Recipient, jobs []*core.ScoredJob) error {
	if s.username == "" || s.password == "" {
		return fmt.Errorf("smtp credentials not configured")
	}

	subject := fmt.Sprintf("Top %d Job Matches Found!", len(jobs))
	body := buildBody(recipient, jobs)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.username)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient.Email)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	return smtp.SendMail(addr, auth, s.username, []string{recipient.Email}, []byte(msg.String()))
}

// buildBody renders the alert as plain text: the recipient's preferences
// followed by each match with score, skills and apply link.
func buildBody(recipient *Recipient, jobs []*core.ScoredJob) string {
	var b strings.Builder

	name := recipient.Name
	if name == "" {
		name = recipient.Email
	}
	fmt.Fprintf(&b, "Hi %s!\n\n", name)
	fmt.Fprintf(&b, "We found %d top job opportunities that match your preferences:\n\n", len(jobs))

	fmt.Fprintf(&b, "Your preferences:\n")
	fmt.Fprintf(&b, "  Role: %s\n", orAny(recipient.Role))
	fmt.Fprintf(&b, "  Location: %s\n", orAny(recipient.Location))
	fmt.Fprintf(&b, "  Skills: %s\n\n", orNone(strings.Join(recipient.Skills, ", ")))

	for i, job := range jobs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, job.Title)
		fmt.Fprintf(&b, "   Location: %s\n", job.Location)
		fmt.Fprintf(&b, "   Experience: %s\n", job.Experience)
		fmt.Fprintf(&b, "   Match score: %.0f%%\n", job.FinalScore*100)
		if len(job.MatchedSkills) > 0 {
			fmt.Fprintf(&b, "   Matched skills: %s\n", strings.Join(job.MatchedSkills, ", "))
		}
		fmt.Fprintf(&b, "   Apply: %s\n\n", job.ApplyURL)
	}

	b.WriteString("You're receiving this because you enabled job notifications.\n")
	return b.String()
}

func orAny(s string) string {
	if s == "" {
		return "Any"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "None specified"
	}
	return s
}
