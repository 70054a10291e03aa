// Package notify abstracts outbound SMS delivery so handlers can run against
// a test double instead of a live provider.
package notify

// Sender dispatches a text message from the given sender id.
type Sender interface {
	Send(from, to, text string) error
}
