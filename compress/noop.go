package compress

// NoopCodec passes frame bodies through unchanged. It is used when the
// connection did not negotiate compression.
type NoopCodec struct{}

var _ Codec = NoopCodec{}

// Compress returns the input unchanged.
func (NoopCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input unchanged.
func (NoopCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
