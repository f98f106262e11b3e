package sskr

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"io"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
)

const (
	MinSecretLen  = 16
	MaxSecretLen  = 32
	MaxShareCount = 16

	digestIndex = 254
	secretIndex = 255
	digestLen   = 4
)

func validateSecret(secret []byte) error {
	if len(secret) < MinSecretLen || len(secret) > MaxSecretLen || len(secret)%2 != 0 {
		return fmt.Errorf("%w: got %d bytes", serrors.ErrInvalidSecret, len(secret))
	}
	return nil
}

func createDigest(randomData, secret []byte) []byte {
	mac := hmac.New(sha256.New, randomData)
	mac.Write(secret)
	return mac.Sum(nil)[:digestLen]
}

// splitSecret produces shareCount shares of which any threshold recover secret.
func splitSecret(threshold, shareCount int, secret []byte, random io.Reader) ([][]byte, error) {
	if err := validateSecret(secret); err != nil {
		return nil, err
	}
	if shareCount < 1 || shareCount > MaxShareCount {
		return nil, fmt.Errorf("%w: share count %d must be 1-%d", serrors.ErrInvalidGroupSpec, shareCount, MaxShareCount)
	}
	if threshold < 1 || threshold > shareCount {
		return nil, fmt.Errorf("%w: threshold %d must be 1-%d", serrors.ErrInvalidGroupSpec, threshold, shareCount)
	}

	shares := make([][]byte, shareCount)
	if threshold == 1 {
		for i := range shares {
			shares[i] = append([]byte(nil), secret...)
		}
		return shares, nil
	}

	xs := make([]byte, 0, threshold)
	ys := make([][]byte, 0, threshold)
	for i := 0; i < threshold-2; i++ {
		shares[i] = make([]byte, len(secret))
		if _, err := io.ReadFull(random, shares[i]); err != nil {
			return nil, fmt.Errorf("reading random share: %w", err)
		}
		xs = append(xs, byte(i))
		ys = append(ys, shares[i])
	}

	digest := make([]byte, len(secret))
	if _, err := io.ReadFull(random, digest[digestLen:]); err != nil {
		return nil, fmt.Errorf("reading random digest: %w", err)
	}
	copy(digest, createDigest(digest[digestLen:], secret))

	xs = append(xs, digestIndex, secretIndex)
	ys = append(ys, digest, secret)

	for i := threshold - 2; i < shareCount; i++ {
		shares[i] = interpolate(xs, ys, byte(i))
	}
	wipeBytes(digest)
	return shares, nil
}

// recoverSecret interpolates the secret from threshold shares at distinct indexes.
func recoverSecret(indexes []byte, shares [][]byte) ([]byte, error) {
	if len(shares) == 1 {
		return append([]byte(nil), shares[0]...), nil
	}

	secret := interpolate(indexes, shares, secretIndex)
	digest := interpolate(indexes, shares, digestIndex)
	defer wipeBytes(digest)

	if !hmac.Equal(createDigest(digest[digestLen:], secret), digest[:digestLen]) {
		wipeBytes(secret)
		return nil, fmt.Errorf("%w: share digest does not verify", serrors.ErrChecksum)
	}
	return secret, nil
}

func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
