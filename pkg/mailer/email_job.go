package mailer

// Template names understood by the email worker.
const (
	TemplateWelcome   = "welcome"
	TemplateVerifyOTP = "verify_otp"
	TemplateResetOTP  = "reset_otp"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either set Subject/Text/HTML directly or name a Template plus its Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
