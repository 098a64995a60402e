package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/smiley-shop/smiley/internal/config"
	"github.com/smiley-shop/smiley/internal/constants"
	"github.com/smiley-shop/smiley/internal/models"
)

// EmailService transactional email sender
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates the email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled reports whether sending is configured and switched on
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// OrderStatusEmailInput order notification content parameters
type OrderStatusEmailInput struct {
	OrderNo  string
	Status   string
	Amount   models.Money
	Currency string
}

// SendVerifyCode sends an OTP email
func (s *EmailService) SendVerifyCode(to, code, purpose string) error {
	subject, body := buildVerifyCodeContent(code, purpose)
	return s.sendTextEmail(to, subject, body)
}

// SendOrderStatusEmail sends an order lifecycle notification
func (s *EmailService) SendOrderStatusEmail(to string, input OrderStatusEmailInput) error {
	subject, body := buildOrderStatusContent(input)
	return s.sendTextEmail(to, subject, body)
}

// SendWelcome sends the post-confirmation welcome email
func (s *EmailService) SendWelcome(to, name string) error {
	greeting := strings.TrimSpace(name)
	if greeting == "" {
		greeting = "there"
	}
	body := fmt.Sprintf("Hi %s,\n\nYour SMILEY account is ready. Brush happy!\n\nThe SMILEY team", greeting)
	return s.sendTextEmail(to, "Welcome to SMILEY", body)
}

func (s *EmailService) sendTextEmail(to, subject, body string) error {
	if s == nil || s.cfg == nil {
		return ErrEmailServiceNotConfigured
	}
	if !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	host := strings.TrimSpace(s.cfg.Host)
	from := strings.TrimSpace(s.cfg.From)
	if host == "" || from == "" {
		return ErrEmailServiceNotConfigured
	}
	port := s.cfg.Port
	if port <= 0 {
		port = 587
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	var auth smtp.Auth
	if strings.TrimSpace(s.cfg.Username) != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, host)
	}

	msg := []byte(buildEmailMessage(buildFromAddress(from, s.cfg.FromName), to, subject, body))

	var err error
	switch {
	case s.cfg.UseSSL:
		err = sendMailWithSSL(addr, auth, host, from, []string{to}, msg)
	case s.cfg.UseTLS:
		err = sendMailWithStartTLS(addr, auth, host, from, []string{to}, msg)
	default:
		err = sendMailPlain(addr, auth, host, from, []string{to}, msg)
	}
	return normalizeEmailSendError(err)
}

func buildVerifyCodeContent(code, purpose string) (string, string) {
	subject := "Email Verification Code"
	purposeText := "email verification"
	switch strings.ToLower(strings.TrimSpace(purpose)) {
	case constants.VerifyPurposeSignup:
		subject = "Confirm your SMILEY account"
		purposeText = "account confirmation"
	case constants.VerifyPurposeReset:
		subject = "Password Reset Code"
		purposeText = "password reset"
	}
	body := fmt.Sprintf("Your verification code is: %s\n\nThis code is for %s. Do not share it.", code, purposeText)
	return subject, body
}

func buildOrderStatusContent(input OrderStatusEmailInput) (string, string) {
	status := strings.ToLower(strings.TrimSpace(input.Status))
	label := status
	switch status {
	case constants.OrderStatusPaid:
		label = "paid"
	case constants.OrderStatusFulfilled:
		label = "on its way"
	case constants.OrderStatusCancelled:
		label = "cancelled"
	}
	subject := fmt.Sprintf("Your SMILEY order %s is %s", input.OrderNo, label)
	body := fmt.Sprintf(
		"Order %s is now %s.\n\nTotal: %s %s\n\nThanks for shopping with SMILEY.",
		input.OrderNo, label, input.Amount.String(), strings.ToUpper(strings.TrimSpace(input.Currency)),
	)
	return subject, body
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	directKeywords := []string{
		"no such recipient",
		"no such user",
		"recipient not found",
		"recipient address rejected",
		"invalid recipient",
		"user unknown",
		"unknown user",
		"unknown mailbox",
		"mailbox unavailable",
	}
	for _, keyword := range directKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		hints := []string{"recipient", "user", "mailbox", "address", "rcpt"}
		for _, hint := range hints {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
