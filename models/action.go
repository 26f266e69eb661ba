package models

// VerifiedAction is the trusted tuple derived from a signed frame
// callback by the verification service. Session logic reads identity,
// button index and query data from here, never from the raw request.
type VerifiedAction struct {
	// FID is the stable numeric identity of the tapping user.
	FID int64

	// ButtonIndex is the 1-based position of the tapped button on the
	// screen that posted the callback.
	ButtonIndex int

	// QueryParams holds the query string of the signed callback URL.
	// The matchId session handle travels here.
	QueryParams map[string]string
}

// MatchID returns the session handle carried by PvP callbacks, or "" if
// the action carries none.
func (a *VerifiedAction) MatchID() string {
	return a.QueryParams["matchId"]
}
