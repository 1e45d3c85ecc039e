// Package stimulus implements the fixed-vs-random stimulus generator used
// during capture campaigns. The generator keeps two independent state blocks
// (fixed and random) and advances them through an AES cipher keyed by a
// constant, non-secret seed, so that host and device can replay the exact
// same pseudo-random input sequence.
package stimulus

import (
	"crypto/aes"
	"crypto/cipher"
)

// BlockLen is the length of the generator state blocks in bytes.
const BlockLen = 16

// MACLen is the KMAC128 tag length in bytes.
const MACLen = 32

// keyGeneration keys the internal generator cipher. It is a published
// constant shared with the device firmware, not a secret.
var keyGeneration = []byte{
	0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF1,
	0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xE0, 0xF0,
}

var textFixedStart = []byte{
	0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA,
	0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA,
}

var textRandomStart = []byte{
	0xCC, 0xCC, 0xCC, 0xCC, 0xCC, 0xCC, 0xCC, 0xCC,
	0xCC, 0xCC, 0xCC, 0xCC, 0xCC, 0xCC, 0xCC, 0xCC,
}

var keyFixedStart = []byte{
	0x81, 0x1E, 0x37, 0x31, 0xB0, 0x12, 0x0A, 0x78,
	0x42, 0x78, 0x1E, 0x22, 0xB2, 0x5C, 0xDD, 0xF9,
}

var keyRandomStart = []byte{
	0x53, 0x53, 0x53, 0x53, 0x53, 0x53, 0x53, 0x53,
	0x53, 0x53, 0x53, 0x53, 0x53, 0x53, 0x53, 0x53,
}

// Generator holds the fixed/random state blocks of a capture session. All
// methods mutate the state and must be called strictly sequentially; the
// device replays the same sequence, so an out-of-order or concurrent call
// desynchronizes host and device.
type Generator struct {
	genCipher cipher.Block

	textFixed  []byte
	textRandom []byte
	keyFixed   []byte
	keyRandom  []byte
}

// NewGenerator returns a generator initialized to the start constants.
func NewGenerator() *Generator {
	block, err := aes.NewCipher(keyGeneration)
	if err != nil {
		// the generation key is a compile-time constant of valid length
		panic(err)
	}
	g := &Generator{genCipher: block}
	g.Reset()
	return g
}

// Reset restores the generator to its start constants. Resetting mid-campaign
// desynchronizes host and device; callers must log every reset.
func (g *Generator) Reset() {
	g.textFixed = append([]byte(nil), textFixedStart...)
	g.textRandom = append([]byte(nil), textRandomStart...)
	g.keyFixed = append([]byte(nil), keyFixedStart...)
	g.keyRandom = append([]byte(nil), keyRandomStart...)
}

func (g *Generator) advanceFixed() {
	next := make([]byte, BlockLen)
	g.genCipher.Encrypt(next, g.textFixed)
	g.textFixed = next
}

func (g *Generator) advanceRandom() {
	next := make([]byte, BlockLen)
	g.genCipher.Encrypt(next, g.textRandom)
	g.textRandom = next

	next = make([]byte, BlockLen)
	g.genCipher.Encrypt(next, g.keyRandom)
	g.keyRandom = next
}

// FixedSHA3 returns the current fixed plaintext and its SHA3-256 digest,
// then advances the fixed half of the state.
func (g *Generator) FixedSHA3() (plaintext, digest []byte) {
	plaintext = append([]byte(nil), g.textFixed...)
	digest = SHA3256(plaintext)
	g.advanceFixed()
	return plaintext, digest
}

// RandomSHA3 returns the current random plaintext and its SHA3-256 digest,
// then advances the random half of the state.
func (g *Generator) RandomSHA3() (plaintext, digest []byte) {
	plaintext = append([]byte(nil), g.textRandom...)
	digest = SHA3256(plaintext)
	g.advanceRandom()
	return plaintext, digest
}

// FixedKMAC returns the current fixed plaintext, its KMAC128 tag under the
// fixed key and the key itself, then advances the fixed half of the state.
func (g *Generator) FixedKMAC() (plaintext, mac, key []byte, err error) {
	plaintext = append([]byte(nil), g.textFixed...)
	key = append([]byte(nil), g.keyFixed...)
	mac, err = KMAC128(key, plaintext, MACLen)
	if err != nil {
		return nil, nil, nil, err
	}
	g.advanceFixed()
	return plaintext, mac, key, nil
}

// RandomKMAC returns the current random plaintext, its KMAC128 tag under the
// random key and the key itself, then advances the random half of the state.
// Advancing the random half also advances the random key.
func (g *Generator) RandomKMAC() (plaintext, mac, key []byte, err error) {
	plaintext = append([]byte(nil), g.textRandom...)
	key = append([]byte(nil), g.keyRandom...)
	mac, err = KMAC128(key, plaintext, MACLen)
	if err != nil {
		return nil, nil, nil, err
	}
	g.advanceRandom()
	return plaintext, mac, key, nil
}

// FixedAES returns the current fixed plaintext, its AES-128-ECB ciphertext
// under the fixed key and the key itself, then advances the fixed half of
// the state.
func (g *Generator) FixedAES() (plaintext, ciphertext, key []byte, err error) {
	plaintext = append([]byte(nil), g.textFixed...)
	key = append([]byte(nil), g.keyFixed...)
	ciphertext, err = encryptBlock(key, plaintext)
	if err != nil {
		return nil, nil, nil, err
	}
	g.advanceFixed()
	return plaintext, ciphertext, key, nil
}

// RandomAES returns the current random plaintext, its AES-128-ECB ciphertext
// under the random key and the key itself, then advances the random half of
// the state.
func (g *Generator) RandomAES() (plaintext, ciphertext, key []byte, err error) {
	plaintext = append([]byte(nil), g.textRandom...)
	key = append([]byte(nil), g.keyRandom...)
	ciphertext, err = encryptBlock(key, plaintext)
	if err != nil {
		return nil, nil, nil, err
	}
	g.advanceRandom()
	return plaintext, ciphertext, key, nil
}

func encryptBlock(key, plaintext []byte) ([]byte, error) {
	if len(plaintext) != BlockLen {
		return nil, &InvalidLengthError{Field: "plaintext", Want: BlockLen, Got: len(plaintext)}
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, &InvalidLengthError{Field: "key", Want: BlockLen, Got: len(key)}
	}
	out := make([]byte, BlockLen)
	block.Encrypt(out, plaintext)
	return out, nil
}

// NextSampleFixed extracts the selector bit from freshly generated
// pseudo-random material: the low bit of the first byte decides whether the
// next sample uses the fixed value. Host and device both apply this rule to
// the same material, keeping their fixed/random sequences aligned.
func NextSampleFixed(material []byte) bool {
	return len(material) > 0 && material[0]&0x01 == 1
}
