package config

import (
	"fmt"
	"strings"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/notify"
	"github.com/akeren/waitlist-api/pkg/circuitbreaker"
	"github.com/akeren/waitlist-api/pkg/utils"
)

type MailConfig struct {
	SMTP           notify.SMTPConfig
	SendsPerMinute int
	Breaker        *circuitbreaker.Config
}

func NewMailConfig() *MailConfig {
	breaker := circuitbreaker.DefaultConfig()
	breaker.FailureThreshold = utils.GetEnvPositiveInt("MAIL_BREAKER_FAILURES", breaker.FailureThreshold)
	breaker.RecoveryTimeout = utils.GetEnvPositiveDuration("MAIL_BREAKER_RECOVERY", breaker.RecoveryTimeout)

	return &MailConfig{
		SMTP: notify.SMTPConfig{
			Host:        sanitizeEnv(utils.GetEnvTrimmedOrDefault("MAIL_HOST", "smtp.gmail.com")),
			Port:        utils.GetEnvPositiveInt("MAIL_PORT", 587),
			Username:    sanitizeEnv(utils.FirstEnvTrimmed("MAIL_USER", "EMAIL_USER")),
			Password:    sanitizeEnv(utils.FirstEnvTrimmed("MAIL_PASSWORD", "EMAIL_PASSWORD")),
			FromName:    utils.GetEnvTrimmedOrDefault("MAIL_FROM_NAME", "Tech Optimum Crew"),
			FromAddress: utils.GetEnvTrimmedOrDefault("MAIL_FROM_ADDRESS", "hr@techoptimum.org"),
			Timeout:     utils.GetEnvPositiveDuration("MAIL_TIMEOUT", 0),
		},
		SendsPerMinute: utils.GetEnvPositiveInt("MAIL_SENDS_PER_MINUTE", 60),
		Breaker:        breaker,
	}
}

func (mc *MailConfig) Validate() error {
	if missing := mc.SMTP.Missing(); len(missing) > 0 {
		return fmt.Errorf("missing required mail env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (mc *MailConfig) NewNotifier(logger *log.Logger) *notify.Notifier {
	logger.Info("Mail transport configured",
		"host", mc.SMTP.Host,
		"port", mc.SMTP.Port,
		"from", mc.SMTP.FromAddress,
		"sends_per_minute", mc.SendsPerMinute,
	)

	return notify.NewNotifier(logger, notify.NewSMTPTransport(mc.SMTP), notify.Options{
		SendsPerMinute: mc.SendsPerMinute,
		Breaker:        mc.Breaker,
	})
}
