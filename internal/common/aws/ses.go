// internal/common/aws/ses.go
//
// Thin wrapper around the aws-sdk-go-v2 SES client. The mailer in
// internal/notify only needs SendEmail, so this keeps the SDK wiring in one
// place and out of the rest of the module.
package aws

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

// SESClient sends the lead notification emails. It satisfies the
// notify.EmailSender boundary.
type SESClient struct {
	client *ses.Client
}

// NewSESClient resolves credentials from the default chain (environment,
// shared config, instance role) for the given region.
func NewSESClient(ctx context.Context, region string) (*SESClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for region %q: %w", region, err)
	}
	return &SESClient{client: ses.NewFromConfig(cfg)}, nil
}

// SendEmail forwards to the underlying SDK client.
func (s *SESClient) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	return s.client.SendEmail(ctx, input)
}
