package models

// ButtonAction selects how a tap on a button is delivered.
const (
	// ButtonPost routes the tap back into this service at the screen's
	// PostURL as a signed callback.
	ButtonPost = "post"
	// ButtonLink hands the user off to an external URL; link taps never
	// reach the session protocol.
	ButtonLink = "link"
)

// ButtonSpec describes one button on a screen. Position (1-based order in
// the Buttons slice) is the only thing the client reports back; labels
// are presentation only.
type ButtonSpec struct {
	Label  string
	Action string // ButtonPost or ButtonLink
	Target string // destination URL, ButtonLink only
}

// ScreenDescriptor is a logical screen before rendering: a title, an
// image, up to four ordered buttons and the callback target the next tap
// will be posted to. PvP screens carry their matchId inside PostURL's
// query string, the sole piece of cross-request session state.
type ScreenDescriptor struct {
	Title    string
	ImageURL string
	Buttons  []ButtonSpec
	PostURL  string
}
