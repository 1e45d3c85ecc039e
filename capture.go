package otcapture

import (
	"bytes"
	"context"
	"fmt"

	"github.com/op/go-logging"

	"otcapture/stimulus"
)

//go:generate mockgen -source capture.go -destination collaborators_mock.go -package otcapture

// Target is the device side of the capture protocol.
type Target interface {
	// Absorb triggers a single digest computation over text.
	Absorb(text []byte) error
	// AbsorbBatch triggers count digest computations behind one trigger.
	AbsorbBatch(count uint32) error
	// ReadDigest reads the first n bytes of the device's result register.
	ReadDigest(n int) ([]byte, error)
	// SetFvsrFixedMsg sets the fixed message used by the device in batch mode.
	SetFvsrFixedMsg(msg []byte) error
	// SeedLFSR seeds the masking LFSR of the device.
	SeedLFSR(seed uint32) error
	// SeedPRNG seeds the device PRNG that drives batch sequencing.
	SeedPRNG(seed uint32) error
	// SetMasks switches first-order masking on or off.
	SetMasks(on bool) error
}

// Scope arms the oscilloscope and transfers the captured waves, one wave of
// samples per triggered segment.
type Scope interface {
	Arm() error
	CaptureAndTransfer() ([][]uint16, error)
}

// TraceStore persists captured segments. Key may be nil for unkeyed
// algorithms.
type TraceStore interface {
	Append(wave []uint16, plaintext, digest, key []byte) error
	Flush() error
}

// CaptureLoop drives the arm/trigger/transfer cycles of a campaign and owns
// the shared generator state. It is strictly single-threaded; the only
// asynchronous input is the context, checked between iterations.
type CaptureLoop struct {
	cfg    *Config
	gen    *stimulus.Generator
	prng   *stimulus.PRNG
	target Target
	scope  Scope
	store  TraceStore
	log    *logging.Logger
}

// NewCaptureLoop wires a capture loop. The generator and host PRNG are owned
// by the loop and live for the whole session.
func NewCaptureLoop(cfg *Config, target Target, scope Scope, store TraceStore, log *logging.Logger) *CaptureLoop {
	return &CaptureLoop{
		cfg:    cfg,
		gen:    stimulus.NewGenerator(),
		prng:   stimulus.NewPRNG(cfg.BatchPRNGSeed),
		target: target,
		scope:  scope,
		store:  store,
		log:    log,
	}
}

// Setup configures the device for the selected capture mode. In batch mode
// the fixed message is pushed to the device and both device-side random
// sources are seeded so the device replays the host's sequencing.
func (c *CaptureLoop) Setup() error {
	if c.cfg.MasksOff {
		c.log.Notice("Configuring device to use constant, fast entropy")
		if err := c.target.SetMasks(false); err != nil {
			return fmt.Errorf("failed to disable masks : %v", err)
		}
	} else {
		if err := c.target.SetMasks(true); err != nil {
			return fmt.Errorf("failed to enable masks : %v", err)
		}
	}
	if c.cfg.Mode != ModeFvsrBatch {
		return nil
	}
	if err := c.target.SetFvsrFixedMsg(c.cfg.TextFixed); err != nil {
		return fmt.Errorf("failed to set fixed message : %v", err)
	}
	if err := c.target.SeedLFSR(c.cfg.LFSRSeed); err != nil {
		return fmt.Errorf("failed to seed device LFSR : %v", err)
	}
	if err := c.target.SeedPRNG(uint32(c.cfg.BatchPRNGSeed)); err != nil {
		return fmt.Errorf("failed to seed device PRNG : %v", err)
	}
	return nil
}

// Run captures cfg.NumTraces traces. It returns ErrAbortRequested after
// flushing the store when ctx is cancelled, and a fatal error on any
// digest/transfer fault. Fatal faults are never retried.
func (c *CaptureLoop) Run(ctx context.Context) error {
	text := append([]byte(nil), c.cfg.TextFixed...)
	// The first sample of a session always uses the fixed value.
	sampleFixed := true

	captured := 0
	remaining := c.cfg.NumTraces
	for remaining > 0 {
		select {
		case <-ctx.Done():
			c.log.Noticef("capture aborted after %d traces, flushing", captured)
			if err := c.store.Flush(); err != nil {
				return fmt.Errorf("failed to flush traces on abort : %v", err)
			}
			return ErrAbortRequested
		default:
		}

		if err := c.scope.Arm(); err != nil {
			return fmt.Errorf("failed to arm scope : %v", err)
		}

		// Trigger the device. In non-batch FVSR mode the stimulus and its
		// reference digest are produced before the trigger.
		var digest []byte
		switch c.cfg.Mode {
		case ModeFvsrBatch:
			if err := c.target.AbsorbBatch(uint32(c.cfg.NumSegments)); err != nil {
				return fmt.Errorf("failed to trigger batch : %v", err)
			}
		case ModeFvsr:
			text, digest, sampleFixed = c.nextFvsr(sampleFixed)
			if err := c.target.Absorb(text); err != nil {
				return fmt.Errorf("failed to trigger absorb : %v", err)
			}
		case ModeRandom:
			digest = stimulus.SHA3256(text)
			if err := c.target.Absorb(text); err != nil {
				return fmt.Errorf("failed to trigger absorb : %v", err)
			}
		}

		waves, err := c.scope.CaptureAndTransfer()
		if err != nil {
			return fmt.Errorf("failed to transfer waves : %v", err)
		}
		if len(waves) != c.cfg.NumSegments {
			return &TransferSizeError{Want: c.cfg.NumSegments, Got: len(waves)}
		}

		var expected []byte
		for i := 0; i < c.cfg.NumSegments; i++ {
			if c.cfg.Mode == ModeFvsrBatch {
				text, digest, sampleFixed = c.nextBatchSegment(sampleFixed)
			}
			if len(waves[i]) == 0 {
				return fmt.Errorf("empty wave in segment %d", i)
			}
			if err := c.store.Append(waves[i], text, digest, nil); err != nil {
				return fmt.Errorf("failed to store trace : %v", err)
			}
			if c.cfg.Mode == ModeRandom {
				// The next plaintext is a fresh draw, independent of the
				// digest feedback used by the FVSR modes.
				text = c.prng.Draw(c.cfg.TextLen)
			}
			if c.cfg.Mode == ModeFvsrBatch {
				expected = Fold(expected, digest)
			} else {
				expected = digest
			}
		}

		if err := c.checkDigest(expected); err != nil {
			return err
		}

		captured += c.cfg.NumSegments
		remaining -= c.cfg.NumSegments
		c.log.Debugf("captured %d/%d traces", captured, c.cfg.NumTraces)
	}

	if err := c.store.Flush(); err != nil {
		return fmt.Errorf("failed to flush traces : %v", err)
	}
	c.log.Noticef("capture finished, %d traces", captured)
	return nil
}

// nextFvsr produces one stimulus/digest pair from the generator. The
// selector for the next cycle is the low bit of the plaintext just used.
func (c *CaptureLoop) nextFvsr(sampleFixed bool) (text, digest []byte, nextFixed bool) {
	if sampleFixed {
		text, digest = c.gen.FixedSHA3()
	} else {
		text, digest = c.gen.RandomSHA3()
	}
	return text, digest, stimulus.NextSampleFixed(text)
}

// nextBatchSegment reproduces one segment of the device's batch sequencing:
// fixed message or fresh random plaintext, plus a dummy draw consumed only
// for the selector bit so host and device stay aligned regardless of the
// plaintext length.
func (c *CaptureLoop) nextBatchSegment(sampleFixed bool) (text, digest []byte, nextFixed bool) {
	if sampleFixed {
		text = append([]byte(nil), c.cfg.TextFixed...)
	} else {
		text = c.prng.Draw(c.cfg.TextLen)
	}
	dummy := c.prng.Draw(stimulus.BlockLen)
	return text, stimulus.SHA3256(text), stimulus.NextSampleFixed(dummy)
}

// checkDigest reads the device's result and compares it bit-for-bit against
// the expected value over the configured output length.
func (c *CaptureLoop) checkDigest(expected []byte) error {
	got, err := c.target.ReadDigest(c.cfg.OutputLen)
	if err != nil {
		return fmt.Errorf("failed to read digest : %v", err)
	}
	want := expected
	if len(want) > c.cfg.OutputLen {
		want = want[:c.cfg.OutputLen]
	}
	if !bytes.Equal(got, want) {
		return &DigestMismatchError{Want: want, Got: got}
	}
	return nil
}

// ResetGenerator restores the stimulus generator to its start state. This
// desynchronizes host and device unless the device is reset as well, so it
// is always logged.
func (c *CaptureLoop) ResetGenerator() {
	c.log.Warning("resetting stimulus generator state")
	c.gen.Reset()
}
