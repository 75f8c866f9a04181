// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/prodmarket/marketplace-backend/internal/config"
	"github.com/prodmarket/marketplace-backend/internal/models"
)

// NotificationService sends transactional email over SMTP. When email is
// disabled in config it logs the message instead, which keeps local
// development and tests free of an SMTP dependency.
type NotificationService struct {
	cfg         config.EmailConfig
	frontendURL string
}

func NewNotificationService(cfg config.EmailConfig, frontendURL string) *NotificationService {
	return &NotificationService{
		cfg:         cfg,
		frontendURL: frontendURL,
	}
}

const invitationTemplate = `
<html>
<body>
  <h2>You've been invited to {{.BusinessName}}</h2>
  <p>Hello {{.FirstName}},</p>
  <p>An account has been created for you on the {{.BusinessName}} marketplace workspace.</p>
  <p>Sign in with the temporary password below. You will be asked to choose a new password on first login. The temporary password expires in 7 days.</p>
  <p><strong>Email:</strong> {{.Email}}<br/>
     <strong>Temporary password:</strong> {{.TempPassword}}</p>
  <p><a href="{{.LoginURL}}">Sign in</a></p>
</body>
</html>
`

type invitationData struct {
	BusinessName string
	FirstName    string
	Email        string
	TempPassword string
	LoginURL     string
}

// SendInvitationEmail delivers the temporary credentials to a newly
// invited user.
func (s *NotificationService) SendInvitationEmail(user *models.User, businessName, tempPassword string) error {
	data := invitationData{
		BusinessName: businessName,
		FirstName:    user.FirstName,
		Email:        user.Email,
		TempPassword: tempPassword,
		LoginURL:     s.frontendURL + "/login",
	}

	tmpl, err := template.New("invitation").Parse(invitationTemplate)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return err
	}

	subject := fmt.Sprintf("You've been invited to %s", businessName)
	return s.send(user.Email, subject, body.String())
}

func (s *NotificationService) send(to, subject, htmlBody string) error {
	if !s.cfg.Enabled {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email disabled, skipping delivery")
		return nil
	}

	msg := bytes.Buffer{}
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.FromAddress))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	return smtp.SendMail(addr, auth, s.cfg.FromAddress, []string{to}, msg.Bytes())
}
