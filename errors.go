package otcapture

import (
	"errors"
	"fmt"
)

// ErrAbortRequested signals an operator-initiated shutdown. It is a clean
// cancellation, not a capture fault: already captured segments are flushed
// before it is returned.
var ErrAbortRequested = errors.New("abort requested")

// DigestMismatchError reports that the digest read back from the device
// differs from the host-side expected value. This is fatal for the whole
// session: a mismatch means a desynchronized generator, a hardware fault or
// a wiring error, none of which are transient, so it is never retried.
type DigestMismatchError struct {
	Want []byte
	Got  []byte
}

func (e *DigestMismatchError) Error() string {
	return fmt.Sprintf("incorrect digest: device reported %x, expected %x", e.Got, e.Want)
}

// TransferSizeError reports a wave transfer whose segment count does not
// match the configured number of segments. Fatal for the same reason as a
// digest mismatch.
type TransferSizeError struct {
	Want int
	Got  int
}

func (e *TransferSizeError) Error() string {
	return fmt.Sprintf("wave transfer returned %d segments, expected %d", e.Got, e.Want)
}
