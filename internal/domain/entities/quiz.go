package entities

import (
	"errors"
	"fmt"
)

const (
	// ChoicesPerRound is the number of flags shown in every round.
	ChoicesPerRound = 3
	// DefaultTotalRounds is the number of rounds in one game.
	DefaultTotalRounds = 8
)

var (
	ErrSelectionOutOfRange = errors.New("selection out of range")
	ErrAlreadyAnswered     = errors.New("round already answered")
	ErrRoundNotAnswered    = errors.New("round not answered yet")
	ErrGameOver            = errors.New("game is over")
	ErrPoolTooSmall        = errors.New("country pool too small")
	ErrInvalidTotalRounds  = errors.New("total rounds must be positive")
)

// InvalidSelectionError is returned by Answer when a tap cannot be accepted.
type InvalidSelectionError struct {
	Selection int
	Err       error // ErrSelectionOutOfRange or ErrAlreadyAnswered
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection %d: %v", e.Selection, e.Err)
}

func (e *InvalidSelectionError) Unwrap() error {
	return e.Err
}

// Rand is the random source used by QuizState. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Phase is the position of a QuizState in its round cycle.
type Phase int

const (
	PhaseAwaitingInput Phase = iota
	PhaseRevealed
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseRevealed:
		return "revealed"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// AnswerResult is emitted for every accepted answer.
type AnswerResult struct {
	RoundID        int
	Selection      int
	CorrectIndex   int
	Correct        bool
	ChosenCountry  string
	CorrectCountry string
	Score          int
	RoundsPlayed   int
	TotalRounds    int
	GameOver       bool
}

// QuizState holds the round data of a single game.
// It is not safe for concurrent use.
type QuizState struct {
	rnd          Rand
	pool         []string
	correctIndex int
	selected     int // -1 while awaiting input
	score        int
	correct      int
	roundsPlayed int
	totalRounds  int
	roundID      int
}

// NewQuizState creates a game over the given country pool and starts its first round.
func NewQuizState(pool []string, totalRounds int, rnd Rand) (*QuizState, error) {
	if len(pool) < ChoicesPerRound {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrPoolTooSmall, ChoicesPerRound, len(pool))
	}
	if totalRounds < 1 {
		return nil, ErrInvalidTotalRounds
	}

	qs := &QuizState{
		rnd:         rnd,
		pool:        append([]string(nil), pool...),
		totalRounds: totalRounds,
	}
	qs.StartRound()

	return qs, nil
}

// StartRound reshuffles the pool, picks a new correct index and clears the selection.
func (qs *QuizState) StartRound() {
	qs.rnd.Shuffle(len(qs.pool), func(i, j int) {
		qs.pool[i], qs.pool[j] = qs.pool[j], qs.pool[i]
	})
	qs.correctIndex = qs.rnd.Intn(ChoicesPerRound)
	qs.selected = -1
	qs.roundID++
}

// Answer records the player's tap for the current round.
// State is left untouched when the selection is rejected.
func (qs *QuizState) Answer(selection int) (*AnswerResult, error) {
	if qs.selected >= 0 {
		return nil, &InvalidSelectionError{Selection: selection, Err: ErrAlreadyAnswered}
	}
	if selection < 0 || selection >= ChoicesPerRound {
		return nil, &InvalidSelectionError{Selection: selection, Err: ErrSelectionOutOfRange}
	}

	qs.selected = selection
	isCorrect := selection == qs.correctIndex
	if isCorrect {
		qs.score++
		qs.correct++
	} else {
		qs.score--
	}
	qs.roundsPlayed++

	return &AnswerResult{
		RoundID:        qs.roundID,
		Selection:      selection,
		CorrectIndex:   qs.correctIndex,
		Correct:        isCorrect,
		ChosenCountry:  qs.pool[selection],
		CorrectCountry: qs.pool[qs.correctIndex],
		Score:          qs.score,
		RoundsPlayed:   qs.roundsPlayed,
		TotalRounds:    qs.totalRounds,
		GameOver:       qs.IsGameOver(),
	}, nil
}

// NextRound acknowledges a revealed answer and moves on to the next round.
func (qs *QuizState) NextRound() error {
	if qs.IsGameOver() {
		return ErrGameOver
	}
	if qs.selected < 0 {
		return ErrRoundNotAnswered
	}

	qs.StartRound()
	return nil
}

// IsGameOver reports whether all rounds have been played.
func (qs *QuizState) IsGameOver() bool {
	return qs.roundsPlayed >= qs.totalRounds
}

// Reset starts a new game with the same pool.
func (qs *QuizState) Reset() {
	qs.score = 0
	qs.correct = 0
	qs.roundsPlayed = 0
	qs.StartRound()
}

// Phase returns the current state machine phase.
func (qs *QuizState) Phase() Phase {
	switch {
	case qs.IsGameOver():
		return PhaseGameOver
	case qs.selected >= 0:
		return PhaseRevealed
	default:
		return PhaseAwaitingInput
	}
}

// Choices returns a copy of the identifiers shown this round.
func (qs *QuizState) Choices() []string {
	return append([]string(nil), qs.pool[:ChoicesPerRound]...)
}

// CorrectIndex is the position of the target among the choices.
func (qs *QuizState) CorrectIndex() int { return qs.correctIndex }

// Target is the country the player has to find.
func (qs *QuizState) Target() string { return qs.pool[qs.correctIndex] }

// Selected returns the tapped index, if any.
func (qs *QuizState) Selected() (int, bool) {
	if qs.selected < 0 {
		return 0, false
	}
	return qs.selected, true
}

// Score is the running total: +1 per correct answer, -1 per wrong one.
func (qs *QuizState) Score() int { return qs.score }

// CorrectAnswers counts the rounds answered correctly in this game.
func (qs *QuizState) CorrectAnswers() int { return qs.correct }

// RoundsPlayed counts the answered rounds in this game.
func (qs *QuizState) RoundsPlayed() int { return qs.roundsPlayed }

// TotalRounds is the number of rounds after which the game is over.
func (qs *QuizState) TotalRounds() int { return qs.totalRounds }

// RoundID grows by one every time a round starts, resets included.
func (qs *QuizState) RoundID() int { return qs.roundID }
