// pkg/view/messages.go
package view

import "github.com/pipdeck/pipdeck/pkg/core"

// Msg is one outbound message from the coordinator to the display surface.
// Messages for a single refresh cycle arrive in the order the coordinator's
// state machine produced them; a cycle may carry several PackagesMsg as
// enrichment progresses.
type Msg interface {
	isMsg()
}

// LoadingMsg signals the start or end of the local listing phase
type LoadingMsg struct {
	Loading bool
}

// PackagesMsg carries a catalog snapshot copy
type PackagesMsg struct {
	Packages            []core.Package
	HasRequirementsFile bool
}

// ErrorMsg carries a user-facing failure. NoInterpreter distinguishes the
// actionable "nothing configured" case from generic tool failures.
type ErrorMsg struct {
	Message       string
	NoInterpreter bool
}

// CheckingUpdatesMsg brackets the remote enrichment phase
type CheckingUpdatesMsg struct {
	Checking bool
}

// ProgressMsg reports per-item progress of a bulk update
type ProgressMsg struct {
	Current int
	Total   int
	Name    string
}

// UpdateCompleteMsg is the terminal report of a bulk update
type UpdateCompleteMsg struct {
	Updated []string
	Failed  []string
}

// SearchResultsMsg carries one settled search page
type SearchResultsMsg struct {
	Keyword string
	Page    int
	Result  *core.SearchResult
	Err     error
}

// VersionsMsg carries the release list for a version picker
type VersionsMsg struct {
	Name     string
	Current  string
	Versions []string
}

func (LoadingMsg) isMsg()         {}
func (PackagesMsg) isMsg()        {}
func (ErrorMsg) isMsg()           {}
func (CheckingUpdatesMsg) isMsg() {}
func (ProgressMsg) isMsg()        {}
func (UpdateCompleteMsg) isMsg()  {}
func (SearchResultsMsg) isMsg()   {}
func (VersionsMsg) isMsg()        {}

// Channel is the one-directional push protocol to the display surface.
type Channel struct {
	ch chan Msg
}

// NewChannel creates a channel buffered for buffer messages; buffer <= 0
// picks a default deep enough that a slow display cannot stall a batch.
func NewChannel(buffer int) *Channel {
	if buffer <= 0 {
		buffer = 64
	}
	return &Channel{ch: make(chan Msg, buffer)}
}

// Publish pushes a message; no acknowledgment is expected.
func (c *Channel) Publish(msg Msg) {
	c.ch <- msg
}

// Messages exposes the receive side for the display surface.
func (c *Channel) Messages() <-chan Msg {
	return c.ch
}

// Close ends the stream; only the publishing side may call it.
func (c *Channel) Close() {
	close(c.ch)
}
