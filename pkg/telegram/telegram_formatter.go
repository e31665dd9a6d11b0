package telegram

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang-stock-notifier/pkg/utils"
)

var markdownReplacer = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// EscapeMarkdown escapes the characters legacy Telegram Markdown treats as markup.
func EscapeMarkdown(s string) string {
	return markdownReplacer.Replace(s)
}

// FormatNotificationForTelegram renders a push notification as a Markdown message.
// Data keys are listed in sorted order so the output is stable.
func FormatNotificationForTelegram(title, body string, data map[string]any, sentAt time.Time) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("*%s*\n", EscapeMarkdown(title)))
	if body != "" {
		builder.WriteString(fmt.Sprintf("%s\n", EscapeMarkdown(body)))
	}

	if len(data) > 0 {
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		builder.WriteString("\n")
		for _, k := range keys {
			builder.WriteString(fmt.Sprintf("• %s: `%v`\n", EscapeMarkdown(k), data[k]))
		}
	}

	builder.WriteString(fmt.Sprintf("\n🕒 %s\n", utils.PrettyDate(sentAt)))
	return builder.String()
}
