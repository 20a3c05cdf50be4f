package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
)

// buildFlagKeyboard builds one button per flag of the current round.
func buildFlagKeyboard(catalog *entities.Catalog, session *entities.GameSession) tgbotapi.InlineKeyboardMarkup {
	state := session.State

	var row []tgbotapi.InlineKeyboardButton
	for i, name := range state.Choices() {
		button := tgbotapi.NewInlineKeyboardButtonData(catalog.Flag(name), buildFlagCallback(session.ID, state.RoundID(), i))
		row = append(row, button)
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// buildContinueKeyboard builds keyboard for the result of a round.
func buildContinueKeyboard(gameID uuid.UUID, roundID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Continue", buildContinueCallback(gameID, roundID)),
		),
	)
}

// buildRestartKeyboard builds keyboard for the game over screen.
func buildRestartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Restart", buildRestartCallback()),
		),
	)
}

// emptyKeyboard removes buttons from an edited message.
func emptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
}
