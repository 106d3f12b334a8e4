// Package convert drives a text-to-diagram conversion from a page trigger: it
// validates the description, gates the trigger, calls the conversion service
// and hands the returned diagram markup to a viewer.
package convert

// Request is the body POSTed to the conversion service.
type Request struct {
	Text string `json:"text"` // Trimmed, non-empty process description
}
