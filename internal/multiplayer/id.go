package multiplayer

import (
	"strings"

	"github.com/google/uuid"
)

// NewSessionID returns a random session id. Dashes are stripped so the id
// is a single opaque token on the wire.
func NewSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
