package models

// StatusState is the state of the upload status line
type StatusState int

const (
	StatusIdle StatusState = iota
	StatusProcessing
	StatusSuccess
	StatusError
)

// String returns the state name used as the status element's class
func (s StatusState) String() string {
	switch s {
	case StatusProcessing:
		return "processing"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Status is the upload status with its message
type Status struct {
	State   StatusState
	Message string
}
