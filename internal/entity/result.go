package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type GameState string

const (
	StateInProgress GameState = "in_progress"
	StateWon        GameState = "won"
	StateTie        GameState = "tie"

	OutcomeTie = "Tie"

	historyTimeLayout = "2006-01-02 15:04"
)

var ErrMalformedResult = errors.New("malformed result line")

// GameResult is the immutable record of a finished game.
type GameResult struct {
	PlayedAt time.Time `json:"played_at"`
	Outcome  string    `json:"outcome"`
}

// NewGameResult - builds the result for winner, a nil winner is a tie.
func NewGameResult(playedAt time.Time, winner *Player) GameResult {
	outcome := OutcomeTie
	if winner != nil {
		outcome = winner.Name() + " won"
	}

	return GameResult{
		PlayedAt: time.UnixMilli(playedAt.UnixMilli()),
		Outcome:  outcome,
	}
}

// Line - encodes the result as "<epoch-millis>,<outcome>" without a trailing newline.
func (that GameResult) Line() string {
	outcome := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(that.Outcome)

	return strconv.FormatInt(that.PlayedAt.UnixMilli(), 10) + "," + outcome
}

// String renders the result the way history listings show it.
func (that GameResult) String() string {
	return that.PlayedAt.Format(historyTimeLayout) + " - " + that.Outcome
}

// ParseGameResult - decodes a line written by Line, the outcome may contain commas.
func ParseGameResult(line string) (GameResult, error) {
	millis, outcome, found := strings.Cut(line, ",")
	if !found {
		return GameResult{}, fmt.Errorf("%w: missing separator", ErrMalformedResult)
	}

	timestamp, err := strconv.ParseInt(millis, 10, 64)
	if err != nil {
		return GameResult{}, fmt.Errorf("%w: %w", ErrMalformedResult, err)
	}

	return GameResult{
		PlayedAt: time.UnixMilli(timestamp),
		Outcome:  outcome,
	}, nil
}
