package utils

import (
	"context"
	"fmt"

	appconfig "github.com/admsdev98/NutriOrxata/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

func InitMailer() {
	if appconfig.App.SESFromEmail == "" {
		appconfig.Log.Info("SES sender not configured, outgoing mail disabled")
		return
	}
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(appconfig.App.AWSRegion))
	if err != nil {
		appconfig.Log.Fatalf("AWS config load failed: %v", err)
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender; silently a no-op when mail is disabled so that
// registration never blocks on delivery.
func sendEmail(to string, subject string, htmlBody string) error {
	if sesClient == nil {
		return nil
	}

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(htmlBody),
				},
			},
		},
		Source: aws.String(appconfig.App.SESFromEmail),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		appconfig.Log.Errorf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

func SendVerificationEmail(to string, rawToken string) error {
	verifyURL := fmt.Sprintf("%s/auth/verify-email?token=%s", appconfig.App.PublicAPIBaseURL, rawToken)
	subject := "Verifica tu correo"
	body := fmt.Sprintf("<p>Confirma tu correo para acceder:</p><p><a href=%q>%s</a></p>", verifyURL, verifyURL)
	return sendEmail(to, subject, body)
}
