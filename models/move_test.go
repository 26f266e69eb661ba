package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rps-frame-server/models"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name    string
		a, b    models.Move
		outcome models.Outcome
	}{
		{name: "rock vs rock", a: models.MoveRock, b: models.MoveRock, outcome: models.OutcomeDraw},
		{name: "paper vs paper", a: models.MovePaper, b: models.MovePaper, outcome: models.OutcomeDraw},
		{name: "scissors vs scissors", a: models.MoveScissors, b: models.MoveScissors, outcome: models.OutcomeDraw},
		{name: "rock crushes scissors", a: models.MoveRock, b: models.MoveScissors, outcome: models.OutcomeFirstWins},
		{name: "scissors lose to rock", a: models.MoveScissors, b: models.MoveRock, outcome: models.OutcomeSecondWins},
		{name: "paper wraps rock", a: models.MovePaper, b: models.MoveRock, outcome: models.OutcomeFirstWins},
		{name: "rock loses to paper", a: models.MoveRock, b: models.MovePaper, outcome: models.OutcomeSecondWins},
		{name: "scissors cut paper", a: models.MoveScissors, b: models.MovePaper, outcome: models.OutcomeFirstWins},
		{name: "paper loses to scissors", a: models.MovePaper, b: models.MoveScissors, outcome: models.OutcomeSecondWins},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.outcome, models.Resolve(tc.a, tc.b))
		})
	}
}

// Swapping the operands must swap the winner, and never the draw status.
func TestResolveAntisymmetry(t *testing.T) {
	moves := []models.Move{models.MoveRock, models.MovePaper, models.MoveScissors}

	for _, a := range moves {
		for _, b := range moves {
			forward := models.Resolve(a, b)
			backward := models.Resolve(b, a)

			switch forward {
			case models.OutcomeDraw:
				require.Equal(t, models.OutcomeDraw, backward, "%v vs %v", a, b)
			case models.OutcomeFirstWins:
				require.Equal(t, models.OutcomeSecondWins, backward, "%v vs %v", a, b)
			case models.OutcomeSecondWins:
				require.Equal(t, models.OutcomeFirstWins, backward, "%v vs %v", a, b)
			}
		}
	}
}

func TestParseMove(t *testing.T) {
	testCases := []struct {
		name  string
		index int
		move  models.Move
		ok    bool
	}{
		{name: "zero index", index: 0, move: models.MoveNone, ok: false},
		{name: "rock", index: 1, move: models.MoveRock, ok: true},
		{name: "paper", index: 2, move: models.MovePaper, ok: true},
		{name: "scissors", index: 3, move: models.MoveScissors, ok: true},
		{name: "fourth button", index: 4, move: models.MoveNone, ok: false},
		{name: "negative index", index: -1, move: models.MoveNone, ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			move, ok := models.ParseMove(tc.index)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.move, move)
		})
	}
}

func TestWinPhrase(t *testing.T) {
	require.Equal(t, "rock crushes scissors", models.WinPhrase(models.MoveRock, models.MoveScissors))
	require.Equal(t, "scissors cut paper", models.WinPhrase(models.MoveScissors, models.MovePaper))
	require.Equal(t, "paper wraps rock", models.WinPhrase(models.MovePaper, models.MoveRock))
}

func TestMoveEmoji(t *testing.T) {
	require.Equal(t, "🪨", models.MoveRock.Emoji())
	require.Equal(t, "📄", models.MovePaper.Emoji())
	require.Equal(t, "✂️", models.MoveScissors.Emoji())
	require.Empty(t, models.MoveNone.Emoji())
}

func TestMatchRecordRoles(t *testing.T) {
	record := models.MatchRecord{ID: "m1", InitiatorFID: 100}

	require.False(t, record.HasOpponent())
	require.False(t, record.IsComplete())
	require.Equal(t, models.RoleInitiator, record.RoleOf(100))
	require.Equal(t, models.RoleNone, record.RoleOf(200))

	opponent := int64(200)
	record.OpponentFID = &opponent

	require.True(t, record.HasOpponent())
	require.Equal(t, models.RoleOpponent, record.RoleOf(200))
	require.Equal(t, models.RoleNone, record.RoleOf(300))

	// Both moves present but no opponent would still be incomplete; with
	// the opponent bound, both moves complete the match.
	record.InitiatorMove = models.MoveRock
	require.False(t, record.IsComplete())
	record.OpponentMove = models.MoveScissors
	require.True(t, record.IsComplete())
}

func TestMatchRecordCloneIsIndependent(t *testing.T) {
	opponent := int64(200)
	record := models.MatchRecord{ID: "m1", InitiatorFID: 100, OpponentFID: &opponent}

	clone := record.Clone()
	require.Equal(t, record.ID, clone.ID)
	require.Equal(t, int64(200), *clone.OpponentFID)

	*clone.OpponentFID = 999
	require.Equal(t, int64(200), *record.OpponentFID)
}
