// Package mailer sends transactional notification emails through SES.
// Every send is best-effort: callers log failures and move on, a lost email
// never fails the operation that triggered it.
package mailer

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

type Service struct {
	client *ses.Client
	sender string
	logger *zap.Logger
}

func NewService(ctx context.Context, logger *zap.Logger) (*Service, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	sender := os.Getenv("MAIL_SENDER")
	if sender == "" {
		return nil, fmt.Errorf("MAIL_SENDER environment variable is required")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Same endpoint override as the storage layer, for local stacks.
	client := ses.NewFromConfig(cfg, func(o *ses.Options) {
		if ep := os.Getenv("AWS_ENDPOINT_URL"); ep != "" {
			o.BaseEndpoint = aws.String(ep)
		}
	})

	return &Service{
		client: client,
		sender: sender,
		logger: logger,
	}, nil
}

// SendReplyEmail sends a sales reply to a lead.
func (s *Service) SendReplyEmail(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body)
}

// SendMarketplaceConfirmation confirms a marketplace registration.
func (s *Service) SendMarketplaceConfirmation(ctx context.Context, to, name string) error {
	subject := "Marketplace registration received"
	body := fmt.Sprintf("Hello %s,\n\nWe received your marketplace registration and our team will review it shortly.\n", name)
	return s.send(ctx, to, subject, body)
}

// NotifyTemplateSubmission tells the sales inbox a document was submitted.
func (s *Service) NotifyTemplateSubmission(ctx context.Context, templateName, documentID string, signed bool) error {
	inbox := os.Getenv("SALES_INBOX")
	if inbox == "" {
		inbox = s.sender
	}
	subject := fmt.Sprintf("New document submission: %s", templateName)
	signedNote := "without signature"
	if signed {
		signedNote = "signed"
	}
	body := fmt.Sprintf("Document %s was submitted %s for template %q.\n", documentID, signedNote, templateName)
	return s.send(ctx, inbox, subject, body)
}

// Notify runs a send function with fire-and-forget semantics: the error is
// logged and swallowed so the caller's primary operation always proceeds.
func (s *Service) Notify(ctx context.Context, what string, send func(context.Context) error) {
	if err := send(ctx); err != nil {
		s.logger.Warn("notification email failed",
			zap.String("kind", what),
			zap.Error(err))
	}
}

func (s *Service) send(ctx context.Context, to, subject, body string) error {
	if !isValidEmail(to) {
		return fmt.Errorf("invalid recipient address: %s", to)
	}

	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	s.logger.Info("email sent",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}

func isValidEmail(addr string) bool {
	at := strings.Index(addr, "@")
	if at <= 0 || at == len(addr)-1 {
		return false
	}
	return !strings.ContainsAny(addr, " \t\n")
}
