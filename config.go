// Package otcapture drives power-trace capture campaigns against a hardware
// SHA-3 implementation: it generates fixed-vs-random stimuli, computes the
// expected reference digests and verifies the device's reported result after
// every arm/trigger/transfer cycle.
package otcapture

import (
	"encoding/hex"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"otcapture/stimulus"
)

// Mode selects the stimulus policy of a capture campaign.
type Mode int

const (
	// ModeRandom uses a fresh pseudo-random plaintext for every trace.
	ModeRandom Mode = iota
	// ModeFvsr alternates between the fixed and random generator halves,
	// one trace per trigger.
	ModeFvsr
	// ModeFvsrBatch runs num_segments fixed-vs-random operations behind a
	// single trigger and checks the XOR-folded digest.
	ModeFvsrBatch
)

func (m Mode) String() string {
	switch m {
	case ModeRandom:
		return "random"
	case ModeFvsr:
		return "fvsr"
	case ModeFvsrBatch:
		return "fvsr_batch"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves a capture_mode config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "random":
		return ModeRandom, nil
	case "fvsr":
		return ModeFvsr, nil
	case "fvsr_batch":
		return ModeFvsrBatch, nil
	default:
		return 0, fmt.Errorf("unknown capture mode %q", s)
	}
}

// Config describes one capture campaign.
type Config struct {
	Mode          Mode
	NumTraces     int
	NumSegments   int
	OutputLen     int
	TextLen       int
	TextFixed     []byte
	LFSRSeed      uint32
	BatchPRNGSeed int64
	MasksOff      bool
	TargetURI     string
	ScopeAddr     string
	NumSamples    int
	LogLevel      string

	// Raw is the unparsed config file, stored with the capture metadata.
	Raw string
}

type yamlConfig struct {
	CaptureMode    string `yaml:"capture_mode"`
	NumTraces      int    `yaml:"num_traces"`
	NumSegments    int    `yaml:"num_segments"`
	OutputLenBytes int    `yaml:"output_len_bytes"`
	TextLenBytes   int    `yaml:"text_len_bytes"`
	TextFixed      string `yaml:"text_fixed"`
	LFSRSeed       uint32 `yaml:"lfsr_seed"`
	BatchPRNGSeed  int64  `yaml:"batch_prng_seed"`
	MasksOff       bool   `yaml:"masks_off"`
	Target         string `yaml:"target"`
	Scope          string `yaml:"scope"`
	NumSamples     int    `yaml:"num_samples"`
	LogLevel       string `yaml:"log_level"`
}

// LoadConfig reads and parses a campaign config file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %v : %v", path, err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(raw, &yc); err != nil {
		return nil, fmt.Errorf("failed to parse config %v : %v", path, err)
	}
	mode, err := ParseMode(yc.CaptureMode)
	if err != nil {
		return nil, err
	}
	textFixed, err := hex.DecodeString(yc.TextFixed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode text_fixed : %v", err)
	}
	return &Config{
		Mode:          mode,
		NumTraces:     yc.NumTraces,
		NumSegments:   yc.NumSegments,
		OutputLen:     yc.OutputLenBytes,
		TextLen:       yc.TextLenBytes,
		TextFixed:     textFixed,
		LFSRSeed:      yc.LFSRSeed,
		BatchPRNGSeed: yc.BatchPRNGSeed,
		MasksOff:      yc.MasksOff,
		TargetURI:     yc.Target,
		ScopeAddr:     yc.Scope,
		NumSamples:    yc.NumSamples,
		LogLevel:      yc.LogLevel,
		Raw:           string(raw),
	}, nil
}

// Validate checks the campaign parameters and normalizes num_segments: any
// value other than 1 is only meaningful in batch mode.
func (c *Config) Validate() error {
	if c.NumTraces < 1 {
		return fmt.Errorf("num_traces must be positive, got %d", c.NumTraces)
	}
	if c.NumSegments < 1 {
		return fmt.Errorf("num_segments must be positive, got %d", c.NumSegments)
	}
	if c.TextLen < 1 {
		return fmt.Errorf("text_len_bytes must be positive, got %d", c.TextLen)
	}
	if c.NumSamples < 1 {
		return fmt.Errorf("num_samples must be positive, got %d", c.NumSamples)
	}
	if c.OutputLen < 1 || c.OutputLen > stimulus.MACLen {
		return fmt.Errorf("output_len_bytes must be in [1,%d], got %d", stimulus.MACLen, c.OutputLen)
	}
	if len(c.TextFixed) != c.TextLen {
		return &stimulus.InvalidLengthError{Field: "text_fixed", Want: c.TextLen, Got: len(c.TextFixed)}
	}
	// The seed is pushed to the device as a 32-bit word; a wider value would
	// silently desynchronize host and device sequencing.
	if c.BatchPRNGSeed < 0 || c.BatchPRNGSeed > math.MaxUint32 {
		return fmt.Errorf("batch_prng_seed must fit in 32 bits, got %d", c.BatchPRNGSeed)
	}
	if c.Mode != ModeFvsrBatch {
		c.NumSegments = 1
	}
	return nil
}
