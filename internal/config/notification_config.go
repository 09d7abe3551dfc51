package config

// NotificationConfig defines configuration for notifications
type NotificationConfig struct {
	DiscordWebhookURL     string   `json:"discord_webhook_url,omitempty" yaml:"discord_webhook_url,omitempty" validate:"omitempty,url"`
	MentionRoleIDs        []string `json:"mention_role_ids,omitempty" yaml:"mention_role_ids,omitempty"`
	NotifyOnPersistError  bool     `json:"notify_on_persist_error" yaml:"notify_on_persist_error"`
	WebhookTimeoutSeconds int      `json:"webhook_timeout_seconds,omitempty" yaml:"webhook_timeout_seconds,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		DiscordWebhookURL:     "",
		MentionRoleIDs:        []string{},
		NotifyOnPersistError:  true,
		WebhookTimeoutSeconds: DefaultWebhookTimeoutSecs,
	}
}
