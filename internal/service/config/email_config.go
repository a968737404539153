// internal/service/config/email_config.go
package config

import (
	"context"
	"encoding/json"
	"sync"

	"crm-client/internal/domain/config"
	xerrors "crm-client/internal/pkg/errors"
	"crm-client/internal/pkg/result"
	"crm-client/internal/remotesync"

	"go.uber.org/zap"
)

// EmailConfigService relays mail provider setup to the backend and remembers
// the last configuration it saw.
type EmailConfigService struct {
	mail    *remotesync.MailClient
	mu      sync.RWMutex
	current config.EmailConfig
	logger  *zap.Logger
}

func NewEmailConfigService(mail *remotesync.MailClient, logger *zap.Logger) *EmailConfigService {
	return &EmailConfigService{
		mail:    mail,
		current: config.DefaultEmailConfig(),
		logger:  logger,
	}
}

// GetConfig asks the backend for its provider setup. When the backend cannot
// be reached the last known setup (defaults at first) is returned.
func (s *EmailConfigService) GetConfig(ctx context.Context) config.EmailConfig {
	if s.mail == nil {
		return s.cached()
	}
	raw, err := s.mail.Config(ctx)
	if err != nil {
		s.logger.Warn("failed to load email config, using last known", zap.Error(err))
		return s.cached()
	}
	if len(raw) == 0 || string(raw) == "null" {
		return s.cached()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := config.DefaultEmailConfig()
	if err := json.Unmarshal(raw, &cfg); err != nil {
		s.logger.Warn("backend sent an unreadable email config", zap.Error(err))
		return s.current
	}
	s.current = cfg
	return cfg
}

func (s *EmailConfigService) cached() config.EmailConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SaveConfig stores one provider's settings and marks it configured.
func (s *EmailConfigService) SaveConfig(ctx context.Context, req config.ProviderConfigRequest) result.Result[config.EmailConfig] {
	const key = "config"

	if !req.Provider.Valid() {
		return result.Fail[config.EmailConfig](key, xerrors.Wrap(xerrors.ErrInvalidInput, "provider"))
	}
	if s.mail == nil {
		return result.Fail[config.EmailConfig](key, xerrors.ErrBackendUnavailable)
	}
	if err := s.mail.SaveConfig(ctx, string(req.Provider), req.Config); err != nil {
		s.logger.Error("failed to save email config",
			zap.String("provider", string(req.Provider)),
			zap.Error(err),
		)
		return result.Fail[config.EmailConfig](key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := merge(&s.current, req.Provider, req.Config); err != nil {
		s.logger.Warn("saved email config could not be mirrored locally", zap.Error(err))
	}
	s.current.MarkConfigured(req.Provider)

	s.logger.Info("email config saved", zap.String("provider", string(req.Provider)))
	return result.OK(key, s.current)
}

func merge(cfg *config.EmailConfig, p config.Provider, raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	switch p {
	case config.ProviderSMTP:
		return json.Unmarshal(raw, &cfg.SMTP)
	case config.ProviderIMAP:
		return json.Unmarshal(raw, &cfg.IMAP)
	case config.ProviderSendGrid:
		return json.Unmarshal(raw, &cfg.SendGrid)
	}
	return nil
}

// TestConnection reports the backend's verdict. Transport failures become a
// failed verdict rather than an error.
func (s *EmailConfigService) TestConnection(ctx context.Context, req config.ProviderConfigRequest) config.ConnectionTestResult {
	if s.mail == nil {
		return config.ConnectionTestResult{Message: xerrors.ErrBackendUnavailable.Error()}
	}
	msg, err := s.mail.TestConnection(ctx, string(req.Provider), req.Config)
	if err != nil {
		s.logger.Warn("email connection test failed",
			zap.String("provider", string(req.Provider)),
			zap.Error(err),
		)
		return config.ConnectionTestResult{Success: false, Message: err.Error()}
	}
	if msg == "" {
		msg = "Connection successful"
	}
	return config.ConnectionTestResult{Success: true, Message: msg}
}
