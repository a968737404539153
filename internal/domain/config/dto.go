package config

import "encoding/json"

// ProviderConfigRequest carries the settings of one provider. Config is kept
// raw since its shape depends on the provider.
type ProviderConfigRequest struct {
	Provider Provider        `json:"provider" validate:"required,oneof=smtp imap sendgrid"`
	Config   json.RawMessage `json:"config" validate:"required"`
}

// ConnectionTestResult is what the backend answers to a connection test.
type ConnectionTestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ConnectionState struct {
	Connected bool `json:"connected"`
}
