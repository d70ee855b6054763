package lineprint

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Normalizer converts raw text into the canonical form that gets digested.
// It must be deterministic. It may fail (a normalizer could shell out).
type Normalizer func(string) (string, error)

// Digest computes a fixed-width hex digest of its input.
type Digest func(string) string

// FingerPrinter computes the short printable fingerprint for a candidate string.
// Implementations must be stateless: nothing observable may leak between calls.
type FingerPrinter func(string) (string, error)

// FingerprintLen is the number of digest characters kept in a fingerprint.
// Short enough to eyeball, long enough that accidental collisions are rare
// within one file. Not meant to resist deliberate collisions.
const FingerprintLen = 3

// Md5Digest returns the full md5 hex digest of s.
func Md5Digest(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// NewFingerPrinter composes normalization, digesting and truncation into a
// FingerPrinter. Two candidates that normalize identically always fingerprint
// identically.
func NewFingerPrinter(norm Normalizer, digest Digest, n int) FingerPrinter {
	return func(s string) (string, error) {
		canon, err := norm(s)
		if err != nil {
			return "", err
		}
		h := digest(canon)
		if len(h) < n {
			return "", fmt.Errorf("digest %q shorter than fingerprint length %d", h, n)
		}
		return h[:n], nil
	}
}

// Md5FingerPrint is the fingerprinter the hash command uses:
// CppNormalize, then md5, truncated to FingerprintLen hex characters.
var Md5FingerPrint = NewFingerPrinter(CppNormalize, Md5Digest, FingerprintLen)
