// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
)

// Plain text messages.
const (
	msgInternalError  = "Something went wrong. Please try again later."
	msgUnknownCommand = "Unknown command. Available commands:\n\n/play — start a new game\n/score — current score\n/stats — your results\n/top — leaderboard\n/help — how to play"
	msgNoGame         = "There is no game running. Send /play to start one."
	msgNoResults      = "No finished games yet. Send /play to start one."
)

// Callback toasts.
const (
	toastAlreadyAnswered = "You already answered this round."
	toastStaleRound      = "This question is no longer active."
	toastNoGame          = "No game running. Send /play to start."
	toastGameOver        = "The game is over. Tap Restart to play again."
	toastAlreadyNext     = "The next question is already on screen."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func welcomeMessage() string {
	return fmt.Sprintf(
		"%s\n\n%s",
		bold("🏁 Guess the Flag"),
		md("I name a country, you tap its flag. Right answers add a point, wrong ones take a point away. Let's go!"),
	)
}

func helpMessage(totalRounds int) string {
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		bold("How to play"),
		md(fmt.Sprintf("Each game has %d rounds. Every round shows three flags; tap the one that belongs to the named country. +1 for a correct answer, −1 for a wrong one.", totalRounds)),
		md("/play — start a new game\n/restart — start over\n/score — current score\n/stats — your results\n/top — leaderboard"),
	)
}

// formatQuestion renders the round header and the country to find.
func formatQuestion(state *entities.QuizState) string {
	return fmt.Sprintf(
		"%s\n%s\n\n%s\n%s",
		bold("Guess the Flag"),
		md(fmt.Sprintf("Round %d of %d · Score: %d", state.RoundsPlayed()+1, state.TotalRounds(), state.Score())),
		md("Tap the flag of"),
		bold(state.Target()),
	)
}

// formatAnsweredQuestion renders the question once a flag has been tapped.
func formatAnsweredQuestion(catalog *entities.Catalog, state *entities.QuizState, res *entities.AnswerResult) string {
	choices := state.Choices()
	flags := make([]string, 0, len(choices))
	for i, name := range choices {
		flag := catalog.Flag(name)
		if i == res.Selection {
			flag = "👉" + flag
		}
		flags = append(flags, flag)
	}

	return fmt.Sprintf(
		"%s\n%s\n\n%s\n%s\n\n%s",
		bold("Guess the Flag"),
		md(fmt.Sprintf("Round %d of %d", res.RoundsPlayed, res.TotalRounds)),
		md("Tap the flag of"),
		bold(res.CorrectCountry),
		md(strings.Join(flags, "  ")),
	)
}

// formatScoreTitle mirrors the alert title shown after a tap.
func formatScoreTitle(res *entities.AnswerResult) string {
	if res.Correct {
		return "✅ Correct"
	}
	return fmt.Sprintf("❌ Wrong! That’s the flag of %s.", res.ChosenCountry)
}

// formatReveal renders the delayed result of a round.
func formatReveal(res *entities.AnswerResult) string {
	text := fmt.Sprintf(
		"%s\n%s",
		bold(formatScoreTitle(res)),
		md(fmt.Sprintf("Your score is %d", res.Score)),
	)

	if res.GameOver {
		text += fmt.Sprintf(
			"\n\n%s\n%s",
			bold("🏁 Game Over!"),
			md(fmt.Sprintf("Your final score is %d out of %d.", res.Score, res.TotalRounds)),
		)
	}

	return text
}

func formatCurrentScore(state *entities.QuizState) string {
	if state.IsGameOver() {
		return md(fmt.Sprintf("Game over. Final score: %d out of %d.", state.Score(), state.TotalRounds()))
	}
	return md(fmt.Sprintf("Score: %d after %d of %d rounds.", state.Score(), state.RoundsPlayed(), state.TotalRounds()))
}

func formatStats(stats *entities.PlayerStats) string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s\n%s\n%s",
		bold("📊 Your results"),
		md(fmt.Sprintf("🎮 Games played: %d", stats.GamesPlayed)),
		md(fmt.Sprintf("🏆 Best score: %d", stats.BestScore)),
		md(fmt.Sprintf("🕒 Last score: %d", stats.LastScore)),
		md(fmt.Sprintf("🎯 Accuracy: %.1f%%", stats.Accuracy())),
	)
}

func formatLeaderboard(entries []*entities.LeaderboardEntry) string {
	var sb strings.Builder
	sb.WriteString(bold("🏆 Leaderboard"))
	sb.WriteString("\n")

	for i, e := range entries {
		medal := fmt.Sprintf("%d.", i+1)
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}

		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s %s — %d (%d games)", medal, e.DisplayName(), e.BestScore, e.GamesPlayed)))
	}

	return sb.String()
}
