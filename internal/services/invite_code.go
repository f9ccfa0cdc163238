package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// inviteCodeBytes is the entropy of a generated invite code. 16 bytes gives
// 128 bits, enough that codes never collide in practice; the unique index on
// invitations.invite_code is the backstop.
const inviteCodeBytes = 16

// GenerateInviteCode returns a random URL-safe invite code. It is stateless
// and needs no store round trip; callers retry on ErrDuplicateCode.
func GenerateInviteCode() (string, error) {
	b := make([]byte, inviteCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
