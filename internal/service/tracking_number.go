package service

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

const trackingSuffixLength = 6

// TrackingNumberGenerator produces public, human-readable cargo identifiers.
// It is an interface so tests can substitute a deterministic generator.
type TrackingNumberGenerator interface {
	Next(t time.Time) (string, error)
}

// RandomTrackingNumberGenerator date-prefixed crypto/rand generator.
type RandomTrackingNumberGenerator struct{}

// NewTrackingNumberGenerator creates the default generator.
func NewTrackingNumberGenerator() *RandomTrackingNumberGenerator {
	return &RandomTrackingNumberGenerator{}
}

// Next returns a tracking number such as CG-20260830-7F3K9Q. The alphabet
// drops 0/O/1/I to keep numbers readable over the phone.
func (g *RandomTrackingNumberGenerator) Next(t time.Time) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	var builder strings.Builder
	builder.Grow(trackingSuffixLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < trackingSuffixLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[n.Int64()])
	}
	return "CG-" + t.Format("20060102") + "-" + builder.String(), nil
}
