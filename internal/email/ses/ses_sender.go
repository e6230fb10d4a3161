package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"docext/internal/domain"
	"docext/internal/fields"
	"docext/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendExtractionComplete(ctx context.Context, toEmail string, rec *domain.ExtractionRecord) error {
	subject := fmt.Sprintf("Extraction complete: %s (%s)", rec.SourceFile, rec.DocumentType)
	htmlBody := buildExtractionHTML(rec)
	textBody := buildExtractionText(rec)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildExtractionText(rec *domain.ExtractionRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Extraction %s finished.\n\nFile: %s\nDocument type: %s\n\nFields:\n",
		rec.ID, rec.SourceFile, rec.DocumentType)
	for _, key := range fields.SchemaFor(rec.DocumentType) {
		fmt.Fprintf(&b, "  %s: %s\n", key, rec.Fields[key])
	}
	return b.String()
}

func buildExtractionHTML(rec *domain.ExtractionRecord) string {
	var rows strings.Builder
	for _, key := range fields.SchemaFor(rec.DocumentType) {
		fmt.Fprintf(&rows,
			`<tr><td style="padding: 4px 12px; color: #666;">%s</td><td style="padding: 4px 12px;">%s</td></tr>`,
			key, rec.Fields[key])
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Extraction complete</h2>
  <p>File <strong>%s</strong> was processed as a <strong>%s</strong>.</p>
  <table style="border-collapse: collapse; width: 100%%;">%s</table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Record ID: %s</p>
</body>
</html>`, rec.SourceFile, rec.DocumentType, rows.String(), rec.ID)
}
