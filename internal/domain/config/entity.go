package config

// Provider names one of the mail transports the backend can be set up with.
type Provider string

const (
	ProviderSMTP     Provider = "smtp"
	ProviderIMAP     Provider = "imap"
	ProviderSendGrid Provider = "sendgrid"
)

func (p Provider) Valid() bool {
	switch p {
	case ProviderSMTP, ProviderIMAP, ProviderSendGrid:
		return true
	}
	return false
}

type ServerConfig struct {
	Host       string `json:"host"`
	Port       int    `json:"port"`
	Secure     bool   `json:"secure"`
	Username   string `json:"username"`
	Password   string `json:"password,omitempty"`
	From       string `json:"from,omitempty"`
	Configured bool   `json:"configured"`
}

type SendGridConfig struct {
	APIKey     string `json:"apiKey,omitempty"`
	From       string `json:"from"`
	Configured bool   `json:"configured"`
}

// EmailConfig is the per-provider setup as the backend reports it.
type EmailConfig struct {
	SMTP     ServerConfig   `json:"smtp"`
	IMAP     ServerConfig   `json:"imap"`
	SendGrid SendGridConfig `json:"sendgrid"`
}

// DefaultEmailConfig is used until the backend reports its own.
func DefaultEmailConfig() EmailConfig {
	return EmailConfig{
		SMTP: ServerConfig{Port: 587, Secure: false},
		IMAP: ServerConfig{Port: 993, Secure: true},
	}
}

// MarkConfigured flips the configured flag of one provider.
func (c *EmailConfig) MarkConfigured(p Provider) {
	switch p {
	case ProviderSMTP:
		c.SMTP.Configured = true
	case ProviderIMAP:
		c.IMAP.Configured = true
	case ProviderSendGrid:
		c.SendGrid.Configured = true
	}
}

// ProviderPreset holds well-known host settings for common mailbox providers.
type ProviderPreset struct {
	SMTP ServerConfig `json:"smtp"`
	IMAP ServerConfig `json:"imap"`
}

var Presets = map[string]ProviderPreset{
	"gmail": {
		SMTP: ServerConfig{Host: "smtp.gmail.com", Port: 587},
		IMAP: ServerConfig{Host: "imap.gmail.com", Port: 993, Secure: true},
	},
	"outlook": {
		SMTP: ServerConfig{Host: "smtp-mail.outlook.com", Port: 587},
		IMAP: ServerConfig{Host: "outlook.office365.com", Port: 993, Secure: true},
	},
	"yahoo": {
		SMTP: ServerConfig{Host: "smtp.mail.yahoo.com", Port: 587},
		IMAP: ServerConfig{Host: "imap.mail.yahoo.com", Port: 993, Secure: true},
	},
}
