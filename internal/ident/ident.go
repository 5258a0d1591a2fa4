// Package ident mints booking references and access PINs.
package ident

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/tripflow/internal/domain"
)

// BookingID builds a human-legible booking reference: a TF- prefix, a short
// kind/offer tag and a high-resolution timestamp encoded base36, uppercase.
// Two calls inside the clock's resolution can still collide; the ledger
// enforces uniqueness and retries generation, so collisions here are
// accepted as negligible rather than eliminated.
func BookingID(kind domain.OfferKind, offerID string) string {
	tag := "P"
	if kind == domain.OfferKindFlight {
		tag = "F"
	}
	suffix := strings.ToUpper(strconv.FormatInt(time.Now().UnixNano(), 36))
	return fmt.Sprintf("TF-%s%s-%s", tag, offerTag(offerID), suffix)
}

// PIN returns a uniformly random, zero-padded 6-digit numeric string. It is a
// UX-friction lookup key, not a security boundary: it is not generated from a
// cryptographic source and must not be treated as unpredictable against a
// motivated attacker.
func PIN() string {
	return fmt.Sprintf("%06d", rand.IntN(1000000))
}

// offerTag keeps the first three alphanumeric characters of the offer id,
// uppercased, so the reference stays legible for any catalog id shape.
func offerTag(offerID string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(offerID) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == 3 {
				break
			}
		}
	}
	return b.String()
}
