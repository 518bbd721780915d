package entity

import (
	"encoding/hex"
	"fmt"
)

// IdentityLength is the size of an account reference in bytes.
const IdentityLength = 32

// Identity is an opaque reference to an authenticated external account.
// The hosting environment supplies it with every invocation; the engine
// never generates one.
type Identity [IdentityLength]byte

// IdentityFromBytes copies raw into a fixed-size Identity.
func IdentityFromBytes(raw []byte) (Identity, error) {
	var identity Identity
	if len(raw) != IdentityLength {
		return identity, fmt.Errorf("identity must be %d bytes, got %d", IdentityLength, len(raw))
	}

	copy(identity[:], raw)

	return identity, nil
}

func (that Identity) String() string {
	return hex.EncodeToString(that[:])
}

func (that Identity) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Identity) UnmarshalText(text []byte) error {
	raw, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("could not decode identity: %w", err)
	}

	identity, err := IdentityFromBytes(raw)
	if err != nil {
		return err
	}

	*that = identity

	return nil
}
