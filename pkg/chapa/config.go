package chapa

import "time"

type Config struct {
	BaseURL       string        `mapstructure:"base_url"`
	SecretKey     string        `mapstructure:"secret_key"`
	WebhookSecret string        `mapstructure:"webhook_secret"`
	Timeout       time.Duration `mapstructure:"timeout"`
	VerifyTimeout time.Duration `mapstructure:"verify_timeout"`
}
