// Package conversation renders caller-supplied chat history into a single
// prompt for the generative model.
package conversation

import "strings"

// MaxTurns is how many of the most recent turns are kept in a prompt.
const MaxTurns = 10

const SenderUser = "user"

// Turn is one message of prior conversation, as sent by the client.
type Turn struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Window returns at most the last MaxTurns turns, in chronological order.
func Window(history []Turn) []Turn {
	if len(history) > MaxTurns {
		return history[len(history)-MaxTurns:]
	}
	return history
}

// FormatPrompt renders the recent history followed by the new message:
//
//	User: <text>
//	Bot: <text>
//
//	User: <prompt>
//	Bot:
//
// Any sender other than "user" is rendered as the bot.
func FormatPrompt(prompt string, history []Turn) string {
	var b strings.Builder
	for _, turn := range Window(history) {
		if turn.Sender == SenderUser {
			b.WriteString("User: ")
		} else {
			b.WriteString("Bot: ")
		}
		b.WriteString(turn.Text)
		b.WriteByte('\n')
	}
	b.WriteString("\nUser: ")
	b.WriteString(prompt)
	b.WriteString("\nBot:")
	return b.String()
}
