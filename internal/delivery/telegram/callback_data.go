package telegram

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Callback action constants.
const (
	actionFlag = "flag"
	actionGame = "game"
)

// Game sub-actions.
const (
	gameContinue = "continue"
	gameRestart  = "restart"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// buildFlagCallback builds callback data for tapping a flag in a round.
// Callback data is limited to 64 bytes; a UUID and two small ints fit.
func buildFlagCallback(gameID uuid.UUID, roundID, index int) string {
	return callbackData{
		Action: actionFlag,
		Params: []string{gameID.String(), strconv.Itoa(roundID), strconv.Itoa(index)},
	}.encode()
}

// parseFlagCallback extracts game ID, round ID and flag index from flag callback data.
func parseFlagCallback(cd callbackData) (gameID uuid.UUID, roundID, index int, ok bool) {
	if cd.Action != actionFlag || len(cd.Params) != 3 {
		return uuid.Nil, 0, 0, false
	}

	gameID, roundID, ok = parseRoundRef(cd.Params[0], cd.Params[1])
	if !ok {
		return uuid.Nil, 0, 0, false
	}

	index, err := strconv.Atoi(cd.Params[2])
	if err != nil {
		return uuid.Nil, 0, 0, false
	}

	return gameID, roundID, index, true
}

// buildContinueCallback builds callback data for the Continue button of a revealed round.
func buildContinueCallback(gameID uuid.UUID, roundID int) string {
	return callbackData{
		Action: actionGame,
		Params: []string{gameContinue, gameID.String(), strconv.Itoa(roundID)},
	}.encode()
}

// parseContinueCallback extracts the round the Continue button was shown for.
func parseContinueCallback(cd callbackData) (gameID uuid.UUID, roundID int, ok bool) {
	if cd.Action != actionGame || cd.param(0) != gameContinue || len(cd.Params) != 3 {
		return uuid.Nil, 0, false
	}

	gameID, roundID, ok = parseRoundRef(cd.Params[1], cd.Params[2])
	if !ok {
		return uuid.Nil, 0, false
	}
	return gameID, roundID, true
}

func parseRoundRef(rawGameID, rawRoundID string) (uuid.UUID, int, bool) {
	gameID, err := uuid.Parse(rawGameID)
	if err != nil {
		return uuid.Nil, 0, false
	}

	roundID, err := strconv.Atoi(rawRoundID)
	if err != nil {
		return uuid.Nil, 0, false
	}

	return gameID, roundID, true
}

func buildRestartCallback() string {
	return callbackData{Action: actionGame, Params: []string{gameRestart}}.encode()
}
