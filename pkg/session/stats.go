package session

// ExitReason records why an open cycle ended.
type ExitReason int

const (
	// ExitNone means no cycle has finished yet.
	ExitNone ExitReason = iota
	// ExitEndOfStream means the source ran out of packets or failed to read.
	ExitEndOfStream
	// ExitStall means a blocking call outlived its deadline.
	ExitStall
	// ExitAbort means Close was called.
	ExitAbort
	// ExitOpenFailure means the source could not be opened.
	ExitOpenFailure
	// ExitStreamInfoFailure means no decodable video stream was found.
	ExitStreamInfoFailure
)

// String returns the string representation of the exit reason.
func (r ExitReason) String() string {
	switch r {
	case ExitNone:
		return "none"
	case ExitEndOfStream:
		return "end-of-stream"
	case ExitStall:
		return "stall"
	case ExitAbort:
		return "abort"
	case ExitOpenFailure:
		return "open-failure"
	case ExitStreamInfoFailure:
		return "stream-info-failure"
	default:
		return "unknown"
	}
}

// Stats counts what a session has done since it was created.
type Stats struct {
	// Cycles is the number of open attempts, reconnects included.
	Cycles int
	// Reconnects is the number of automatic reconnects started.
	Reconnects int
	// Frames is the number of frames delivered to the listener.
	Frames int
	// DecodeErrors is the number of packets skipped because decoding failed.
	DecodeErrors int
	// LastExit is the reason the most recent cycle ended.
	LastExit ExitReason
}
