package game

import "errors"

// Every failing operation returns one of these (possibly wrapped) and leaves the table unchanged.
var (
	ErrInvalidPlayerCount     = errors.New("game supports 3 to 6 players")
	ErrInvalidMeldComposition = errors.New("meld composition does not match current hand requirement")
	ErrCardNotOwned           = errors.New("player does not hold the card")
	ErrCardNotDiscardable     = errors.New("jokers and 2s cannot be discarded")
	ErrNoColdCard             = errors.New("no cold card")
	ErrDeckExhausted          = errors.New("no cards left to draw or reshuffle")
	ErrMeClaimLimitReached    = errors.New("me! claim limit reached")
	ErrTargetNotDown          = errors.New("target player has not gone down")
	ErrExtensionInvalid       = errors.New("invalid meld extension")

	ErrWrongPhase     = errors.New("operation not allowed in current phase")
	ErrInvalidSeat    = errors.New("invalid seat")
	ErrMeldNotFound   = errors.New("meld not found")
	ErrAlreadyDown    = errors.New("player has already gone down this round")
	ErrSameSeat       = errors.New("use AddToOwnMeld for own melds")
	ErrWildNotAllowed = errors.New("wilds and 2s cannot be played on other players' melds")
	ErrGameOver       = errors.New("game is over")
	ErrTableNotFound  = errors.New("table not found")
)

// ErrNoHotCard is the same condition as ErrDeckExhausted seen from a draw.
var ErrNoHotCard = ErrDeckExhausted
