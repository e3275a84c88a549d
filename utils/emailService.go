package utils

import (
	"fmt"
	"net/smtp"

	"shopapi/config"
)

// SendWelcomeEmail sends a signup confirmation to a new user. Callers run it
// in a goroutine; failures are returned for logging only.
func SendWelcomeEmail(email, username string) error {
	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password

	if from == "" || password == "" {
		return fmt.Errorf("email sender not configured")
	}

	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	to := []string{email}

	subject := "Subject: Welcome to Shop API\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Welcome, %s!</h2>
					<p style="font-size: 16px; color: #555555; text-align: center;">Your account has been created successfully.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Thank you for using our service.</p>
				</div>
			</body>
		</html>
	`, username)

	message := []byte(subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message); err != nil {
		return err
	}
	return nil
}
