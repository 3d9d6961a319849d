package jwt

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Claims is the token payload for the roster API. Subject carries the
// user id; Guild scopes the token to one guild. Role is informational
// only; authorization decisions always go through the guild service.
type Claims struct {
	jwt.RegisteredClaims
	Guild sharedtypes.GuildID `json:"guild"`
	Role  string              `json:"role"`
}

// UserID parses the subject claim.
func (c *Claims) UserID() (sharedtypes.UserID, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return sharedtypes.UserID(id), nil
}
