package stimulus

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// InvalidLengthError reports a plaintext, key or tag size that violates the
// fixed layout of the target algorithm.
type InvalidLengthError struct {
	Field string
	Want  int
	Got   int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid %s length: want %d bytes, got %d", e.Field, e.Want, e.Got)
}

// SHA3256 returns the SHA3-256 digest of msg.
func SHA3256(msg []byte) []byte {
	digest := sha3.Sum256(msg)
	return digest[:]
}

// cSHAKE128 rate in bytes, used as the bytepad width for KMAC128.
const cShake128Rate = 168

// KMAC128 computes the NIST SP 800-185 KMAC128 tag of msg under key with an
// empty customization string:
//
//	KMAC128(K, X, L, "") = cSHAKE128(bytepad(encode_string(K), 168) || X || right_encode(L), L, "KMAC", "")
func KMAC128(key, msg []byte, macLen int) ([]byte, error) {
	if macLen < 1 {
		return nil, &InvalidLengthError{Field: "mac", Want: 1, Got: macLen}
	}
	c := sha3.NewCShake128([]byte("KMAC"), nil)
	c.Write(bytepad(encodeString(key), cShake128Rate))
	c.Write(msg)
	c.Write(rightEncode(uint64(macLen) * 8))
	mac := make([]byte, macLen)
	c.Read(mac)
	return mac, nil
}

// leftEncode encodes v as its minimal big-endian byte string prefixed with
// the byte count.
func leftEncode(v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	return append([]byte{byte(8 - i)}, buf[i:]...)
}

// rightEncode encodes v as its minimal big-endian byte string suffixed with
// the byte count.
func rightEncode(v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	return append(buf[i:], byte(8-i))
}

func encodeString(s []byte) []byte {
	return append(leftEncode(uint64(len(s))*8), s...)
}

func bytepad(data []byte, w int) []byte {
	out := append(leftEncode(uint64(w)), data...)
	for len(out)%w != 0 {
		out = append(out, 0)
	}
	return out
}
