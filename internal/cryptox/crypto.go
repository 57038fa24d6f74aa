// Package cryptox implements the optional salted-hash credential scheme.
//
// Credentials are stored as "argon2id$<salt>$<key>" with both parts in raw
// standard base64. Anything that does not decode as such is treated as a
// legacy plaintext credential, which is how the original store keeps passwords.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/acadmate/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SchemePlain    = "plain"
	SchemeArgon2id = "argon2id"

	saltSize = 16
	keySize  = 32
)

var ErrUnknownScheme = errors.New("unknown password scheme")

var b64 = base64.RawStdEncoding

func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keySize)
}

// HashPassword derives an argon2id key from password with a fresh random salt.
func HashPassword(password string) string {
	salt := common.GenerateRandByteArray(saltSize)
	key := DeriveKey([]byte(password), salt)
	return SchemeArgon2id + "$" + b64.EncodeToString(salt) + "$" + b64.EncodeToString(key)
}

// parseHash splits stored into salt and key. Only values that decode to the
// exact salt and key sizes count as hashes, so a plaintext password that
// happens to start with the scheme prefix stays plaintext.
func parseHash(stored string) (salt, key []byte, ok bool) {
	rest, found := strings.CutPrefix(stored, SchemeArgon2id+"$")
	if !found {
		return nil, nil, false
	}
	saltPart, keyPart, found := strings.Cut(rest, "$")
	if !found {
		return nil, nil, false
	}
	salt, err := b64.Strict().DecodeString(saltPart)
	if err != nil || len(salt) != saltSize {
		return nil, nil, false
	}
	key, err = b64.Strict().DecodeString(keyPart)
	if err != nil || len(key) != keySize {
		return nil, nil, false
	}
	return salt, key, true
}

// IsHashed reports whether stored is a well-formed argon2id credential.
func IsHashed(stored string) bool {
	_, _, ok := parseHash(stored)
	return ok
}

// VerifyPassword checks candidate against a stored credential in either
// encoding. Comparison is constant time.
func VerifyPassword(stored, candidate string) bool {
	salt, want, ok := parseHash(stored)
	if !ok {
		return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
	}
	got := DeriveKey([]byte(candidate), salt)
	return subtle.ConstantTimeCompare(want, got) == 1
}

// CheckScheme returns ErrUnknownScheme unless scheme is one of the supported
// schemes. An empty scheme means plain.
func CheckScheme(scheme string) error {
	switch scheme {
	case "", SchemePlain, SchemeArgon2id:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
}

// Encode returns the credential representation for scheme.
func Encode(scheme, password string) string {
	if scheme == SchemeArgon2id {
		return HashPassword(password)
	}
	return password
}
