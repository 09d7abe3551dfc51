package models

// DiscordMessagePayload represents the JSON payload sent to a Discord webhook.
type DiscordMessagePayload struct {
	Content         string           `json:"content,omitempty"`          // Message content (text)
	Username        string           `json:"username,omitempty"`         // Override the default webhook username
	AvatarURL       string           `json:"avatar_url,omitempty"`       // Override the default webhook avatar
	Embeds          []DiscordEmbed   `json:"embeds,omitempty"`           // Array of embed objects
	AllowedMentions *AllowedMentions `json:"allowed_mentions,omitempty"` // Allowed mentions for the message
}

// AllowedMentions specifies how mentions should be handled in a message.
type AllowedMentions struct {
	Parse []string `json:"parse,omitempty"` // Types of mentions to parse (e.g., "roles", "users", "everyone")
	Roles []string `json:"roles,omitempty"` // Array of role_ids to mention (max 100)
}

// DiscordEmbed represents a Discord embed object.
type DiscordEmbed struct {
	Title       string              `json:"title,omitempty"`       // Title of embed
	Description string              `json:"description,omitempty"` // Description of embed
	URL         string              `json:"url,omitempty"`         // URL of embed
	Timestamp   string              `json:"timestamp,omitempty"`   // ISO8601 timestamp
	Color       int                 `json:"color,omitempty"`       // Color code of the embed
	Footer      *DiscordEmbedFooter `json:"footer,omitempty"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"` // Array of embed field objects
}

// DiscordEmbedFooter represents the footer of an embed.
type DiscordEmbedFooter struct {
	Text    string `json:"text"`               // Footer text
	IconURL string `json:"icon_url,omitempty"` // URL of footer icon (only supports http(s) and attachments)
}

// DiscordEmbedField represents a field in an embed.
type DiscordEmbedField struct {
	Name   string `json:"name"`             // Name of the field
	Value  string `json:"value"`            // Value of the field
	Inline bool   `json:"inline,omitempty"` // Whether or not this field should display inline
}
