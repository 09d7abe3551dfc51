package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/anfieldrd/kopwatch/internal/config"
	"github.com/anfieldrd/kopwatch/internal/models"
)

// FormatChangesMessage builds the single per-run notification payload
// summarizing all detected changes.
func FormatChangesMessage(events []models.ChangeEvent, cfg config.NotificationConfig) models.DiscordMessagePayload {
	embed := NewDiscordEmbedBuilder().
		WithTitle(ChangesEmbedTitle).
		WithDescription(buildChangesDescription(events)).
		WithColor(ChangesEmbedColor).
		WithTimestamp(time.Now()).
		WithFooter(EmbedFooterText, "").
		Build()

	return buildPayloadWithMentions(embed, cfg)
}

// buildChangesDescription renders one block per event: bold title, URL,
// previous check time, and the fenced diff when one exists. Events that
// would push the description past the Discord limit are summarized in a
// trailing count instead.
func buildChangesDescription(events []models.ChangeEvent) string {
	var description strings.Builder
	for i, event := range events {
		block := buildEventBlock(event)
		if description.Len()+len(block) > MaxDescriptionLength {
			suffix := fmt.Sprintf("... and %d more changes", len(events)-i)
			if description.Len()+len(suffix) <= MaxDescriptionLength {
				description.WriteString(suffix)
			}
			break
		}
		description.WriteString(block)
	}
	return description.String()
}

// buildEventBlock renders a single change event.
func buildEventBlock(event models.ChangeEvent) string {
	var block strings.Builder
	block.WriteString(fmt.Sprintf("**%s**\n", event.Title))
	block.WriteString(fmt.Sprintf("🔗 %s\n", event.URL))
	block.WriteString(fmt.Sprintf("🕐 Last check: %s\n\n", event.PreviousCheck))

	if event.Diff != "" {
		block.WriteString(fmt.Sprintf("```diff\n%s\n```\n\n", truncateString(event.Diff, MaxDiffSnippetLength)))
	}

	return block.String()
}

// FormatCriticalErrorMessage builds the payload for failures that break
// change-detection continuity, such as a state persist error.
func FormatCriticalErrorMessage(component string, errorMessage string, cfg config.NotificationConfig) models.DiscordMessagePayload {
	embed := NewDiscordEmbedBuilder().
		WithTitle(CriticalErrorEmbedTitle).
		WithDescription(fmt.Sprintf("❌ **Critical error in %s**", component)).
		WithColor(CriticalErrorEmbedColor).
		WithTimestamp(time.Now()).
		WithFooter(EmbedFooterText, "").
		AddField("🔍 Error Details", truncateString(errorMessage, 1000), false).
		Build()

	return buildPayloadWithMentions(embed, cfg)
}

// buildPayloadWithMentions wraps an embed in a payload, prefixing role
// mentions as message content when configured.
func buildPayloadWithMentions(embed models.DiscordEmbed, cfg config.NotificationConfig) models.DiscordMessagePayload {
	payloadBuilder := NewDiscordMessagePayloadBuilder().
		WithContent(buildMentions(cfg.MentionRoleIDs)).
		AddEmbed(embed)

	if len(cfg.MentionRoleIDs) > 0 {
		payloadBuilder.WithAllowedMentions(models.AllowedMentions{
			Parse: []string{"roles"},
			Roles: cfg.MentionRoleIDs,
		})
	}

	return payloadBuilder.Build()
}

// buildMentions creates mention strings for Discord role IDs
func buildMentions(roleIDs []string) string {
	if len(roleIDs) == 0 {
		return ""
	}
	var mentions []string
	for _, roleID := range roleIDs {
		mentions = append(mentions, fmt.Sprintf("<@&%s>", roleID))
	}
	return strings.Join(mentions, " ")
}

// truncateString truncates a string to maxLength with ellipsis
func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
