package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenAndParse(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	issued := time.Now()

	tok, err := NewToken("64b7f0c2a1", secret, issued, time.Hour)
	require.NoError(t, err)

	uid, err := ParseToken(tok, secret, issued.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1", uid)
}

func TestParseToken_ExpiryWindow(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	issued := time.Unix(1_700_000_000, 0)

	tok, err := NewToken("u1", secret, issued, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret, issued.Add(time.Hour-time.Second))
	require.NoError(t, err)

	_, err = ParseToken(tok, secret, issued.Add(time.Hour+time.Second))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewToken("u2", []byte("right-secret"), time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("wrong-secret"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", []byte("k"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "u3",
	})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(s, []byte("k"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_MissingUserID(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := NewToken("", secret, time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret, time.Now())
	assert.ErrorIs(t, err, ErrInvalidToken)
}
