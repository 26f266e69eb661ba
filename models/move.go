package models

// Move is one of the three playable hands. MoveNone is the zero value a
// MatchRecord holds before a player has committed; it is never a legal play.
// The playable values line up 1:1 with the button indices on choose-move
// screens, so button 1 is always rock, 2 paper, 3 scissors.
type Move int

const (
	MoveNone Move = iota
	MoveRock
	MovePaper
	MoveScissors
)

// Outcome is the result of resolving two moves against each other.
type Outcome int

const (
	OutcomeDraw Outcome = iota
	OutcomeFirstWins
	OutcomeSecondWins
)

func (m Move) String() string {
	switch m {
	case MoveRock:
		return "rock"
	case MovePaper:
		return "paper"
	case MoveScissors:
		return "scissors"
	}
	return "none"
}

// Emoji returns the button glyph for a move.
func (m Move) Emoji() string {
	switch m {
	case MoveRock:
		return "🪨"
	case MovePaper:
		return "📄"
	case MoveScissors:
		return "✂️"
	}
	return ""
}

// ParseMove maps a 1-based button index to a Move. Indices outside 1..3
// return MoveNone and ok=false; callers treat that as "not a move tap",
// never as an error.
func ParseMove(buttonIndex int) (Move, bool) {
	if buttonIndex < 1 || buttonIndex > 3 {
		return MoveNone, false
	}
	return Move(buttonIndex), true
}

// Beats reports whether m wins against other under the fixed cyclic
// dominance relation: rock beats scissors, scissors beats paper, paper
// beats rock.
func (m Move) Beats(other Move) bool {
	switch m {
	case MoveRock:
		return other == MoveScissors
	case MovePaper:
		return other == MoveRock
	case MoveScissors:
		return other == MovePaper
	}
	return false
}

// Resolve decides the outcome of two moves. Deterministic and total over
// the playable values; equal moves always draw.
func Resolve(a, b Move) Outcome {
	if a == b {
		return OutcomeDraw
	}
	if a.Beats(b) {
		return OutcomeFirstWins
	}
	return OutcomeSecondWins
}

// winVerbs gives the flavor phrase for each winning pair, keyed
// winner-first.
var winVerbs = map[[2]Move]string{
	{MoveRock, MoveScissors}:  "rock crushes scissors",
	{MoveScissors, MovePaper}: "scissors cut paper",
	{MovePaper, MoveRock}:     "paper wraps rock",
}

// WinPhrase returns the flavor line for a winning pair, e.g.
// "paper wraps rock". Pairs outside the table fall back to
// "<winner> beats <loser>".
func WinPhrase(winner, loser Move) string {
	if phrase, ok := winVerbs[[2]Move{winner, loser}]; ok {
		return phrase
	}
	return winner.String() + " beats " + loser.String()
}
