package rpc

import (
	"crypto/sha512"
	"encoding/hex"
	"time"
)

// adminTokenLayout truncates the clock to the hour, so admin tokens rotate
// on hour boundaries rather than in a rolling window.
const adminTokenLayout = "2006010215"

// checkAuth verifies the envelope token. Admins authenticate against a
// digest of the current hour plus the admin salt; everyone else against a
// digest of account+login+salt, with an absent account contributing an
// empty string. Pure function of the envelope and the injected clock.
func (s *Service) checkAuth(env *Envelope, now time.Time) bool {
	var payload string
	if env.IsAdmin() {
		payload = now.Format(adminTokenLayout) + s.adminSalt
	} else {
		payload = env.Account() + env.Login() + s.salt
	}
	return digest(payload) == env.Token()
}

// AdminDigest computes the admin token valid for the hour containing now.
// Exposed for the token generator tool and for clients provisioning admin
// credentials.
func AdminDigest(now time.Time, adminSalt string) string {
	return digest(now.Format(adminTokenLayout) + adminSalt)
}

// UserDigest computes the token expected from a non-admin caller.
func UserDigest(account, login, salt string) string {
	return digest(account + login + salt)
}

func digest(payload string) string {
	sum := sha512.Sum512([]byte(payload))
	return hex.EncodeToString(sum[:])
}
