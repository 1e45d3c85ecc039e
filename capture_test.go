package otcapture

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"otcapture/logger"
	"otcapture/stimulus"
)

var testFixedText = []byte{
	0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA,
	0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA,
}

func testConfig(mode Mode) *Config {
	return &Config{
		Mode:          mode,
		NumTraces:     1,
		NumSegments:   1,
		OutputLen:     32,
		TextLen:       16,
		TextFixed:     append([]byte(nil), testFixedText...),
		NumSamples:    1200,
		LFSRSeed:      0xdeadbeef,
		BatchPRNGSeed: 42,
		MasksOff:      true,
	}
}

func testCollaborators(t *testing.T) (*gomock.Controller, *MockTarget, *MockScope, *MockTraceStore) {
	ctrl := gomock.NewController(t)
	return ctrl, NewMockTarget(ctrl), NewMockScope(ctrl), NewMockTraceStore(ctrl)
}

var testLog = logger.NewLogger("ERROR", "capture-test")

// replayFvsr reproduces the non-batch FVSR sequence with an independent
// generator: first sample fixed, selector from the low bit of the plaintext.
func replayFvsr(n int) (texts, digests [][]byte) {
	gen := stimulus.NewGenerator()
	sampleFixed := true
	for i := 0; i < n; i++ {
		var pt, d []byte
		if sampleFixed {
			pt, d = gen.FixedSHA3()
		} else {
			pt, d = gen.RandomSHA3()
		}
		sampleFixed = stimulus.NextSampleFixed(pt)
		texts = append(texts, pt)
		digests = append(digests, d)
	}
	return texts, digests
}

// replayBatch reproduces the device's batch sequencing: fixed message or
// fresh random plaintext per segment plus one dummy draw for the selector.
func replayBatch(seed int64, fixed []byte, n int) (texts, digests [][]byte, fold []byte) {
	prng := stimulus.NewPRNG(seed)
	sampleFixed := true
	for i := 0; i < n; i++ {
		var text []byte
		if sampleFixed {
			text = append([]byte(nil), fixed...)
		} else {
			text = prng.Draw(len(fixed))
		}
		dummy := prng.Draw(stimulus.BlockLen)
		sampleFixed = stimulus.NextSampleFixed(dummy)
		d := stimulus.SHA3256(text)
		texts = append(texts, text)
		digests = append(digests, d)
		fold = Fold(fold, d)
	}
	return texts, digests, fold
}

func TestCaptureLoop_Setup(t *testing.T) {
	t.Run("batch seeds device", func(t *testing.T) {
		_, target, scope, store := testCollaborators(t)
		cfg := testConfig(ModeFvsrBatch)
		cfg.MasksOff = false

		gomock.InOrder(
			target.EXPECT().SetMasks(true).Return(nil),
			target.EXPECT().SetFvsrFixedMsg(testFixedText).Return(nil),
			target.EXPECT().SeedLFSR(uint32(0xdeadbeef)).Return(nil),
			target.EXPECT().SeedPRNG(uint32(42)).Return(nil),
		)

		loop := NewCaptureLoop(cfg, target, scope, store, testLog)
		require.NoError(t, loop.Setup())
	})

	t.Run("non-batch only configures masks", func(t *testing.T) {
		_, target, scope, store := testCollaborators(t)
		cfg := testConfig(ModeFvsr)

		target.EXPECT().SetMasks(false).Return(nil)

		loop := NewCaptureLoop(cfg, target, scope, store, testLog)
		require.NoError(t, loop.Setup())
	})
}

func TestCaptureLoop_FvsrSingle(t *testing.T) {
	_, target, scope, store := testCollaborators(t)
	cfg := testConfig(ModeFvsr)
	cfg.NumTraces = 3

	texts, digests := replayFvsr(3)

	// Identical expectations are consumed in declaration order, so the
	// returned digests line up with the iterations.
	scope.EXPECT().Arm().Return(nil).Times(3)
	scope.EXPECT().CaptureAndTransfer().Return([][]uint16{{1, 2, 3}}, nil).Times(3)
	for i := 0; i < 3; i++ {
		target.EXPECT().Absorb(texts[i]).Return(nil)
		store.EXPECT().Append([]uint16{1, 2, 3}, texts[i], digests[i], nil).Return(nil)
		target.EXPECT().ReadDigest(32).Return(digests[i], nil)
	}
	store.EXPECT().Flush().Return(nil)

	loop := NewCaptureLoop(cfg, target, scope, store, testLog)
	require.NoError(t, loop.Run(context.Background()))
}

func TestCaptureLoop_Batch(t *testing.T) {
	_, target, scope, store := testCollaborators(t)
	cfg := testConfig(ModeFvsrBatch)
	cfg.NumTraces = 4
	cfg.NumSegments = 4
	cfg.OutputLen = 12

	texts, digests, fold := replayBatch(cfg.BatchPRNGSeed, testFixedText, 4)
	// The first segment of a session uses the fixed message.
	require.Equal(t, testFixedText, texts[0])

	waves := [][]uint16{{10}, {11}, {12}, {13}}
	scope.EXPECT().Arm().Return(nil)
	target.EXPECT().AbsorbBatch(uint32(4)).Return(nil)
	scope.EXPECT().CaptureAndTransfer().Return(waves, nil)
	for i := 0; i < 4; i++ {
		store.EXPECT().Append(waves[i], texts[i], digests[i], nil).Return(nil)
	}
	target.EXPECT().ReadDigest(12).Return(fold[:12], nil)
	store.EXPECT().Flush().Return(nil)

	loop := NewCaptureLoop(cfg, target, scope, store, testLog)
	require.NoError(t, loop.Run(context.Background()))
}

func TestCaptureLoop_DigestMismatch(t *testing.T) {
	_, target, scope, store := testCollaborators(t)
	cfg := testConfig(ModeFvsrBatch)
	cfg.NumTraces = 8 // would be two batches if the first one passed
	cfg.NumSegments = 4

	texts, digests, fold := replayBatch(cfg.BatchPRNGSeed, testFixedText, 4)

	corrupted := append([]byte(nil), fold...)
	corrupted[0] ^= 0x01

	waves := [][]uint16{{10}, {11}, {12}, {13}}
	scope.EXPECT().Arm().Return(nil)
	target.EXPECT().AbsorbBatch(uint32(4)).Return(nil)
	scope.EXPECT().CaptureAndTransfer().Return(waves, nil)
	for i := 0; i < 4; i++ {
		store.EXPECT().Append(waves[i], texts[i], digests[i], nil).Return(nil)
	}
	target.EXPECT().ReadDigest(32).Return(corrupted, nil)
	// No second batch and no flush: the mismatch is fatal and never retried.

	loop := NewCaptureLoop(cfg, target, scope, store, testLog)
	err := loop.Run(context.Background())

	var mismatch *DigestMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, fold, mismatch.Want)
	assert.Equal(t, corrupted, mismatch.Got)
}

func TestCaptureLoop_TransferSizeMismatch(t *testing.T) {
	_, target, scope, store := testCollaborators(t)
	cfg := testConfig(ModeFvsrBatch)
	cfg.NumTraces = 4
	cfg.NumSegments = 4

	scope.EXPECT().Arm().Return(nil)
	target.EXPECT().AbsorbBatch(uint32(4)).Return(nil)
	// Scope reports fewer segments than triggered; nothing must be stored.
	scope.EXPECT().CaptureAndTransfer().Return([][]uint16{{1}, {2}}, nil)

	loop := NewCaptureLoop(cfg, target, scope, store, testLog)
	err := loop.Run(context.Background())

	var sizeErr *TransferSizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 4, sizeErr.Want)
	assert.Equal(t, 2, sizeErr.Got)
}

func TestCaptureLoop_Abort(t *testing.T) {
	_, target, scope, store := testCollaborators(t)
	cfg := testConfig(ModeFvsr)
	cfg.NumTraces = 4

	texts, digests := replayFvsr(1)
	ctx, cancel := context.WithCancel(context.Background())

	gomock.InOrder(
		scope.EXPECT().Arm().Return(nil),
		target.EXPECT().Absorb(texts[0]).Return(nil),
		scope.EXPECT().CaptureAndTransfer().Return([][]uint16{{7}}, nil),
		store.EXPECT().Append([]uint16{7}, texts[0], digests[0], nil).Return(nil),
		target.EXPECT().ReadDigest(32).DoAndReturn(func(n int) ([]byte, error) {
			// Operator interrupt arrives mid-capture.
			cancel()
			return digests[0], nil
		}),
		store.EXPECT().Flush().Return(nil),
	)

	loop := NewCaptureLoop(cfg, target, scope, store, testLog)
	err := loop.Run(ctx)
	assert.True(t, errors.Is(err, ErrAbortRequested))
}

func TestCaptureLoop_RandomMode(t *testing.T) {
	_, target, scope, store := testCollaborators(t)
	cfg := testConfig(ModeRandom)
	cfg.NumTraces = 2

	// The second plaintext is a fresh draw from the host PRNG, not derived
	// from the first digest.
	nextText := stimulus.NewPRNG(cfg.BatchPRNGSeed).Draw(16)
	d0 := stimulus.SHA3256(testFixedText)
	d1 := stimulus.SHA3256(nextText)
	require.NotEqual(t, nextText, d0[:16])

	gomock.InOrder(
		scope.EXPECT().Arm().Return(nil),
		target.EXPECT().Absorb(testFixedText).Return(nil),
		scope.EXPECT().CaptureAndTransfer().Return([][]uint16{{1}}, nil),
		store.EXPECT().Append([]uint16{1}, testFixedText, d0, nil).Return(nil),
		target.EXPECT().ReadDigest(32).Return(d0, nil),
		scope.EXPECT().Arm().Return(nil),
		target.EXPECT().Absorb(nextText).Return(nil),
		scope.EXPECT().CaptureAndTransfer().Return([][]uint16{{2}}, nil),
		store.EXPECT().Append([]uint16{2}, nextText, d1, nil).Return(nil),
		target.EXPECT().ReadDigest(32).Return(d1, nil),
		store.EXPECT().Flush().Return(nil),
	)

	loop := NewCaptureLoop(cfg, target, scope, store, testLog)
	require.NoError(t, loop.Run(context.Background()))
}

func TestCaptureLoop_EmptyWave(t *testing.T) {
	_, target, scope, store := testCollaborators(t)
	cfg := testConfig(ModeRandom)

	scope.EXPECT().Arm().Return(nil)
	target.EXPECT().Absorb(testFixedText).Return(nil)
	scope.EXPECT().CaptureAndTransfer().Return([][]uint16{{}}, nil)

	loop := NewCaptureLoop(cfg, target, scope, store, testLog)
	assert.Error(t, loop.Run(context.Background()))
}
