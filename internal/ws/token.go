package ws

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// token.go mints and verifies the creator capability token, grounded on
// the teacher's internal/service/auth_service.go generateAccessToken and
// ValidateToken. Unlike the teacher's per-user session token, this token
// is bound to a room name only - it is minted once when the room is
// created and handed to whichever connection occupies FirstOpenSeat()
// first, per spec §4.1's "capability token, not an identity token."
type creatorClaims struct {
	RoomName string `json:"roomName"`
	jwt.RegisteredClaims
}

// MintCreatorToken signs a capability token scoped to roomName. It never
// expires on its own; the room's own TTL reap is what retires it.
func MintCreatorToken(secret, roomName string) (string, error) {
	claims := creatorClaims{
		RoomName: roomName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyCreatorToken parses tokenString and returns the room name it was
// minted for, or an error if the signature, method, or shape is wrong.
func VerifyCreatorToken(secret, tokenString string) (roomName string, err error) {
	claims := &creatorClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	return claims.RoomName, nil
}
