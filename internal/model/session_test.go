package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Owns(t *testing.T) {
	user := User{ID: 3, Email: "alice@x.com"}

	assert.True(t, Session{UserID: 3, Email: "alice@x.com"}.Owns(user))
	assert.False(t, Session{UserID: 4, Email: "alice@x.com"}.Owns(user))
	assert.False(t, Session{UserID: 3, Email: "ALICE@x.com"}.Owns(user))
	assert.False(t, Session{}.Owns(user))
}
