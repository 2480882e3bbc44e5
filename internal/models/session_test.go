package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionResetKeepsIDAndPreferences(t *testing.T) {
	session := NewSessionState("sess-1")
	session.Status = SessionStatusAuthenticated
	session.User = &User{ID: "u1", Email: "a@b.com", Role: RoleUser}
	session.Token = "jwt"
	expiry := time.Now().Add(time.Hour)
	session.TokenExpiry = &expiry
	session.Preferences = Preferences{Language: "de", Currency: "EUR"}
	session.SearchHistory = []string{"widgets"}

	session.Reset()

	assert.Equal(t, "sess-1", session.SessionID)
	assert.Equal(t, SessionStatusAnonymous, session.Status)
	assert.Nil(t, session.User)
	assert.Empty(t, session.Token)
	assert.Nil(t, session.TokenExpiry)
	assert.Empty(t, session.SearchHistory)
	assert.Equal(t, "de", session.Preferences.Language)
	assert.Equal(t, "EUR", session.Preferences.Currency)
}

func TestSessionIsAuthenticated(t *testing.T) {
	session := NewSessionState("sess-1")
	assert.False(t, session.IsAuthenticated())

	session.Status = SessionStatusAuthenticated
	assert.False(t, session.IsAuthenticated(), "authenticated status without user and token is not enough")

	session.User = &User{ID: "u1"}
	session.Token = "jwt"
	assert.True(t, session.IsAuthenticated())
}

func TestRecordSearchDedupesAndCaps(t *testing.T) {
	session := NewSessionState("sess-1")

	session.RecordSearch("shoes")
	session.RecordSearch("hats")
	session.RecordSearch("shoes")

	assert.Equal(t, []string{"shoes", "hats"}, session.SearchHistory)

	for i := 0; i < 30; i++ {
		session.RecordSearch(string(rune('a' + i)))
	}
	assert.Len(t, session.SearchHistory, 20)

	session.RecordSearch("")
	assert.Len(t, session.SearchHistory, 20)
}
