package entropy

import (
	"crypto/rand"
	"fmt"
)

// SourceFunc fills buf with entropy and returns how many bytes it wrote.
// A source may write fewer bytes than requested; the DRBG polls it again.
type SourceFunc func(buf []byte) (int, error)

// PlatformSource reads from the operating system CSPRNG.
func PlatformSource(buf []byte) (int, error) {
	n, err := rand.Read(buf)
	if err != nil {
		return n, fmt.Errorf("reading platform entropy: %w", err)
	}
	return n, nil
}
