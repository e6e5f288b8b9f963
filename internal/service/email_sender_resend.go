package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"learnbrightly/internal/entity"

	"github.com/resend/resend-go/v2"
)

// ResendEmailSender delivers verification and welcome emails through the
// Resend API.
type ResendEmailSender struct {
	Client     *resend.Client
	From       string
	ClientURL  string
	VerifyPath string
}

func NewResendEmailSender(apiKey string, from string, clientURL string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		Client:     resend.NewClient(apiKey),
		From:       from,
		ClientURL:  strings.TrimRight(clientURL, "/"),
		VerifyPath: "/verify-email",
	}
}

func (s *ResendEmailSender) SendVerificationEmail(ctx context.Context, email, username, token string, role entity.Role) error {
	if s.Client == nil {
		return errors.New("email sender not configured")
	}
	link := fmt.Sprintf("%s%s?token=%s&email=%s", s.ClientURL, s.VerifyPath, token, email)
	html := fmt.Sprintf(
		"<h2>Welcome to Learn Brightly!</h2>"+
			"<p>Hello %s,</p>"+
			"<p>Thank you for signing up as a %s on Learn Brightly!</p>"+
			"<p>To complete your registration, please verify your email address:</p>"+
			"<p><a href=\"%s\">Verify Email Address</a></p>"+
			"<p>This link will expire in 24 hours.</p>"+
			"<p>If you didn't create an account with Learn Brightly, please ignore this email.</p>",
		username, role, link,
	)
	text := fmt.Sprintf("Verify your Learn Brightly email: %s (expires in 24 hours)", link)
	return s.send(ctx, email, "Verify Your Email - Learn Brightly", html, text)
}

func (s *ResendEmailSender) SendWelcomeEmail(ctx context.Context, email, username string, role entity.Role) error {
	if s.Client == nil {
		return errors.New("email sender not configured")
	}
	var activities string
	if role == entity.RoleParent {
		activities = "<li>Monitor your children's learning progress</li><li>View detailed reports</li>"
	} else {
		activities = "<li>Take dyslexia assessments</li><li>Play educational games</li><li>Access reading materials</li>"
	}
	html := fmt.Sprintf(
		"<h2>Welcome to Learn Brightly, %s!</h2>"+
			"<p>Your email has been verified and your %s account is now active.</p>"+
			"<p>You can now:</p><ul>%s</ul>"+
			"<p><a href=\"%s/auth\">Start Learning Now</a></p>",
		username, role, activities, s.ClientURL,
	)
	text := fmt.Sprintf("Welcome to Learn Brightly, %s! Your account is now active: %s/auth", username, s.ClientURL)
	return s.send(ctx, email, "Welcome to Learn Brightly!", html, text)
}

func (s *ResendEmailSender) send(ctx context.Context, to string, subject string, html string, text string) error {
	params := &resend.SendEmailRequest{
		From:    s.From,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	}
	_, err := s.Client.Emails.Send(params)
	return err
}
