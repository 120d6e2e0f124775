package socket

import "github.com/xgillard/apca-datav2/internal/observability"

// DecodePolicy decides what a feed receiver does with a frame it cannot
// decode. The vendor occasionally ships frames ahead of published schema, so
// the choice is the caller's; SkipOnDecodeError is the default because one
// unreadable frame rarely justifies tearing down an authenticated session.
type DecodePolicy int

const (
	// SkipOnDecodeError logs the frame and keeps the stream alive.
	SkipOnDecodeError DecodePolicy = iota
	// EmitOnDecodeError delivers the decode error on the stream's error
	// channel and keeps the stream alive.
	EmitOnDecodeError
	// FailOnDecodeError delivers the decode error and terminates the stream.
	FailOnDecodeError
)

// HandleDecodeError applies the policy to one failed decode. It reports
// whether the stream must stop. errCh must be buffered by the caller; a full
// channel never blocks the pump.
func HandleDecodeError(policy DecodePolicy, errCh chan<- error, err error) bool {
	switch policy {
	case EmitOnDecodeError, FailOnDecodeError:
		select {
		case errCh <- err:
		default:
		}
		return policy == FailOnDecodeError
	default:
		observability.Log().Error("skipping undecodable frame", observability.Err(err))
		return false
	}
}
