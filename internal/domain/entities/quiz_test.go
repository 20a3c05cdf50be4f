package entities

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, totalRounds int) *QuizState {
	t.Helper()

	qs, err := NewQuizState(DefaultCatalog().Names(), totalRounds, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	return qs
}

func wrongIndex(qs *QuizState) int {
	return (qs.CorrectIndex() + 1) % ChoicesPerRound
}

func TestNewQuizState_Validation(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	_, err := NewQuizState([]string{"France", "Spain"}, 8, rnd)
	assert.ErrorIs(t, err, ErrPoolTooSmall)

	_, err = NewQuizState(DefaultCatalog().Names(), 0, rnd)
	assert.ErrorIs(t, err, ErrInvalidTotalRounds)
}

func TestNewQuizState_StartsAwaitingInput(t *testing.T) {
	qs := newTestState(t, DefaultTotalRounds)

	assert.Equal(t, PhaseAwaitingInput, qs.Phase())
	assert.Equal(t, 0, qs.Score())
	assert.Equal(t, 0, qs.RoundsPlayed())
	assert.Equal(t, 1, qs.RoundID())
	_, selected := qs.Selected()
	assert.False(t, selected)
}

func TestNewQuizState_CopiesPool(t *testing.T) {
	pool := []string{"France", "Spain", "Italy", "Poland"}
	qs, err := NewQuizState(pool, 2, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	qs.StartRound()
	assert.Equal(t, []string{"France", "Spain", "Italy", "Poland"}, pool)
}

func TestStartRound_ChoicesAndCorrectIndexValid(t *testing.T) {
	qs := newTestState(t, DefaultTotalRounds)
	pool := DefaultCatalog().Names()

	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		qs.StartRound()

		choices := qs.Choices()
		require.Len(t, choices, ChoicesPerRound)
		assert.GreaterOrEqual(t, qs.CorrectIndex(), 0)
		assert.Less(t, qs.CorrectIndex(), ChoicesPerRound)
		assert.Equal(t, choices[qs.CorrectIndex()], qs.Target())
		assert.NotEqual(t, choices[0], choices[1])
		assert.NotEqual(t, choices[1], choices[2])
		assert.NotEqual(t, choices[0], choices[2])
		for _, c := range choices {
			assert.Contains(t, pool, c)
		}
		seen[qs.CorrectIndex()] = true
	}

	assert.Len(t, seen, ChoicesPerRound)
}

func TestAnswer_CorrectAddsPoint(t *testing.T) {
	qs := newTestState(t, DefaultTotalRounds)
	target := qs.Target()

	res, err := qs.Answer(qs.CorrectIndex())
	require.NoError(t, err)

	assert.True(t, res.Correct)
	assert.Equal(t, target, res.ChosenCountry)
	assert.Equal(t, target, res.CorrectCountry)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 1, qs.Score())
	assert.Equal(t, 1, qs.RoundsPlayed())
	assert.Equal(t, 1, qs.CorrectAnswers())
	assert.Equal(t, PhaseRevealed, qs.Phase())
}

func TestAnswer_WrongSubtractsPoint(t *testing.T) {
	qs := newTestState(t, DefaultTotalRounds)
	choices := qs.Choices()
	wrong := wrongIndex(qs)

	res, err := qs.Answer(wrong)
	require.NoError(t, err)

	assert.False(t, res.Correct)
	assert.Equal(t, choices[wrong], res.ChosenCountry)
	assert.Equal(t, -1, qs.Score())
	assert.Equal(t, 1, qs.RoundsPlayed())
	assert.Equal(t, 0, qs.CorrectAnswers())

	selected, ok := qs.Selected()
	assert.True(t, ok)
	assert.Equal(t, wrong, selected)
}

func TestAnswer_SecondAnswerRejected(t *testing.T) {
	qs := newTestState(t, DefaultTotalRounds)

	_, err := qs.Answer(qs.CorrectIndex())
	require.NoError(t, err)

	_, err = qs.Answer(wrongIndex(qs))
	require.Error(t, err)

	var selErr *InvalidSelectionError
	require.True(t, errors.As(err, &selErr))
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.Equal(t, 1, qs.Score())
	assert.Equal(t, 1, qs.RoundsPlayed())
}

func TestAnswer_OutOfRangeRejected(t *testing.T) {
	qs := newTestState(t, DefaultTotalRounds)

	for _, sel := range []int{-1, 3, 10} {
		_, err := qs.Answer(sel)
		assert.ErrorIs(t, err, ErrSelectionOutOfRange, "selection %d", sel)
	}

	assert.Equal(t, 0, qs.Score())
	assert.Equal(t, 0, qs.RoundsPlayed())
	assert.Equal(t, PhaseAwaitingInput, qs.Phase())
}

func TestNextRound(t *testing.T) {
	qs := newTestState(t, DefaultTotalRounds)

	assert.ErrorIs(t, qs.NextRound(), ErrRoundNotAnswered)

	_, err := qs.Answer(qs.CorrectIndex())
	require.NoError(t, err)
	require.NoError(t, qs.NextRound())

	assert.Equal(t, PhaseAwaitingInput, qs.Phase())
	assert.Equal(t, 2, qs.RoundID())
	_, selected := qs.Selected()
	assert.False(t, selected)
}

func TestGameOver_AfterTotalRounds(t *testing.T) {
	qs := newTestState(t, 3)

	for i := 0; i < 3; i++ {
		require.False(t, qs.IsGameOver())
		res, err := qs.Answer(qs.CorrectIndex())
		require.NoError(t, err)
		assert.Equal(t, i == 2, res.GameOver)
		if !res.GameOver {
			require.NoError(t, qs.NextRound())
		}
	}

	assert.True(t, qs.IsGameOver())
	assert.Equal(t, PhaseGameOver, qs.Phase())
	assert.ErrorIs(t, qs.NextRound(), ErrGameOver)

	_, err := qs.Answer(0)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.Equal(t, 3, qs.RoundsPlayed())
}

func TestReset(t *testing.T) {
	qs := newTestState(t, 2)

	_, err := qs.Answer(wrongIndex(qs))
	require.NoError(t, err)
	require.NoError(t, qs.NextRound())
	_, err = qs.Answer(wrongIndex(qs))
	require.NoError(t, err)
	require.True(t, qs.IsGameOver())

	qs.Reset()

	assert.Equal(t, 0, qs.Score())
	assert.Equal(t, 0, qs.RoundsPlayed())
	assert.Equal(t, 0, qs.CorrectAnswers())
	assert.False(t, qs.IsGameOver())
	assert.Equal(t, PhaseAwaitingInput, qs.Phase())
	assert.Less(t, qs.CorrectIndex(), ChoicesPerRound)
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name    string
		correct []bool
		want    int
	}{
		{
			name:    "all correct",
			correct: []bool{true, true, true, true, true, true, true, true},
			want:    8,
		},
		{
			name:    "all wrong",
			correct: []bool{false, false, false, false, false, false, false, false},
			want:    -8,
		},
		{
			name:    "five correct three wrong",
			correct: []bool{true, false, true, true, false, true, false, true},
			want:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs := newTestState(t, DefaultTotalRounds)

			for i, ok := range tt.correct {
				sel := qs.CorrectIndex()
				if !ok {
					sel = wrongIndex(qs)
				}

				res, err := qs.Answer(sel)
				require.NoError(t, err)
				assert.Equal(t, ok, res.Correct)

				if i < len(tt.correct)-1 {
					require.NoError(t, qs.NextRound())
				}
			}

			assert.True(t, qs.IsGameOver())
			assert.Equal(t, tt.want, qs.Score())
		})
	}
}

func TestSameSeedSameGame(t *testing.T) {
	a, err := NewQuizState(DefaultCatalog().Names(), 4, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := NewQuizState(DefaultCatalog().Names(), 4, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		assert.Equal(t, a.Choices(), b.Choices())
		assert.Equal(t, a.CorrectIndex(), b.CorrectIndex())

		_, err = a.Answer(0)
		require.NoError(t, err)
		_, err = b.Answer(0)
		require.NoError(t, err)

		if i < 3 {
			require.NoError(t, a.NextRound())
			require.NoError(t, b.NextRound())
		}
	}
}
