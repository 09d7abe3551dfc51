package notifier

// Discord formatting constants
const (
	ChangesEmbedTitle       = "🔔 Website Changes Detected!"
	CriticalErrorEmbedTitle = "❌ Monitor Critical Error"
	EmbedFooterText         = "Website Monitor"
	ChangesEmbedColor       = 0x58B9FF // Blue
	CriticalErrorEmbedColor = 0xDC3545 // Red for critical errors
)

// Payload size limits
const (
	MaxDescriptionLength = 4096 // Discord embed description limit
	MaxDiffSnippetLength = 3200 // Cap for one event's fenced diff block
)
