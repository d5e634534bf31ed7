package tui

// authDoneMsg is emitted when sign-in or sign-up succeeds.
type authDoneMsg struct {
	username string
}

// logoutMsg returns the user to the landing page.
type logoutMsg struct{}

// accountDeletedMsg follows a confirmed account deletion.
type accountDeletedMsg struct{}

// answerMsg carries the outcome of an Ask round trip, tagged with the
// conversation that asked so a late answer lands in the right transcript.
type answerMsg struct {
	conversationID string
	query          string
	answer         string
	err            error
}

// spinMsg drives the thinking indicator.
type spinMsg struct{}
