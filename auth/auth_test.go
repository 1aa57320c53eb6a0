package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcs/commission-engine/auth"
)

func TestStaticTable(t *testing.T) {
	table := auth.NewStaticTable([]auth.StaticUser{
		{Username: "admin@example.com", Password: "secret", Name: "Admin User", Role: auth.RoleAdmin},
	})

	// GIVEN: correct credentials
	s, err := table.Authenticate(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, s.Role)
	assert.Equal(t, "Admin User", s.Name)

	// Wrong password and unknown user produce the same error.
	_, err = table.Authenticate(context.Background(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = table.Authenticate(context.Background(), "nobody", "secret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestDirectory(t *testing.T) {
	dir := auth.NewDirectory("agentpass")

	// Empty roster rejects everyone.
	_, err := dir.Authenticate(context.Background(), "jdoe", "agentpass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	dir.SetAgents([]auth.AgentEntry{
		{Username: "jdoe", Name: "Jane Doe", AgentID: "42"},
	})

	s, err := dir.Authenticate(context.Background(), "jdoe", "agentpass")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAgent, s.Role)
	assert.Equal(t, "42", s.AgentID)
	assert.Equal(t, "Jane Doe", s.Name)

	_, err = dir.Authenticate(context.Background(), "jdoe", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestDirectory_RefreshReplacesRoster(t *testing.T) {
	dir := auth.NewDirectory("agentpass")
	dir.SetAgents([]auth.AgentEntry{{Username: "old", Name: "Old", AgentID: "1"}})
	dir.SetAgents([]auth.AgentEntry{{Username: "new", Name: "New", AgentID: "2"}})

	_, err := dir.Authenticate(context.Background(), "old", "agentpass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = dir.Authenticate(context.Background(), "new", "agentpass")
	assert.NoError(t, err)

	assert.Len(t, dir.Agents(), 1)
}

func TestDirectory_EmptySharedPasswordRejectsAll(t *testing.T) {
	dir := auth.NewDirectory("")
	dir.SetAgents([]auth.AgentEntry{{Username: "jdoe", Name: "Jane Doe", AgentID: "42"}})

	_, err := dir.Authenticate(context.Background(), "jdoe", "")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestChain(t *testing.T) {
	admins := auth.NewStaticTable([]auth.StaticUser{
		{Username: "admin", Password: "adminpass", Name: "Admin", Role: auth.RoleAdmin},
	})
	agents := auth.NewDirectory("agentpass")
	agents.SetAgents([]auth.AgentEntry{{Username: "jdoe", Name: "Jane Doe", AgentID: "42"}})

	chain := auth.Chain{admins, agents}

	s, err := chain.Authenticate(context.Background(), "admin", "adminpass")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, s.Role)

	s, err = chain.Authenticate(context.Background(), "jdoe", "agentpass")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAgent, s.Role)

	_, err = chain.Authenticate(context.Background(), "jdoe", "adminpass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestSigner_RoundTrip(t *testing.T) {
	signer := auth.NewSigner("test-secret", time.Hour)
	session := auth.Session{Username: "jdoe", Name: "Jane Doe", Role: auth.RoleAgent, AgentID: "42"}

	token, err := signer.Issue(session, time.Now())
	require.NoError(t, err)

	got, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestSigner_RejectsExpired(t *testing.T) {
	signer := auth.NewSigner("test-secret", time.Hour)

	token, err := signer.Issue(auth.Session{Username: "jdoe"}, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = signer.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestSigner_RejectsForeignSecret(t *testing.T) {
	token, err := auth.NewSigner("secret-a", time.Hour).Issue(auth.Session{Username: "jdoe"}, time.Now())
	require.NoError(t, err)

	_, err = auth.NewSigner("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = auth.NewSigner("secret-a", time.Hour).Verify("garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
