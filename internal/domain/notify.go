package domain

// NotificationConfig is the singleton Telegram broadcast configuration.
// There is exactly one per deployment; saves overwrite it wholesale.
type NotificationConfig struct {
	BotToken   string   `json:"botToken"`
	Recipients []string `json:"recipients"` // User IDs eligible to receive broadcasts
}
