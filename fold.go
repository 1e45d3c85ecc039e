package otcapture

// Fold combines a segment digest into the running batch accumulator,
// mirroring the device's internal XOR register. A nil accumulator is the
// identity: the first segment's digest becomes the accumulator. Otherwise
// the result is the byte-wise exclusive-or over the shorter of the two.
func Fold(acc, digest []byte) []byte {
	if acc == nil {
		return append([]byte(nil), digest...)
	}
	n := len(acc)
	if len(digest) < n {
		n = len(digest)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = acc[i] ^ digest[i]
	}
	return out
}
