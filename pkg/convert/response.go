package convert

// Response is a successful conversion.
type Response struct {
	BPMN string `json:"bpmn"` // Diagram markup for the viewer
}

// ErrorResponse is the body of a non-success conversion response.
type ErrorResponse struct {
	Error string `json:"error,omitempty"`
}
