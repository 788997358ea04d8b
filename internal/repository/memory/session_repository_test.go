package memory

import (
	"testing"

	"examgen-be/pkg/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository()
	session := pipeline.NewSession(pipeline.Parameters{Subject: "math", QuestionCount: 3})

	repo.Save(session)

	got, found := repo.Get(session.Id.String())
	require.True(t, found)
	assert.Same(t, session, got, "repository must hand back the live session, not a copy")
}

func TestSessionRepositoryMiss(t *testing.T) {
	repo := NewSessionRepository()

	got, found := repo.Get("b6f9c1f2-0000-0000-0000-000000000000")
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo := NewSessionRepository()
	session := pipeline.NewSession(pipeline.Parameters{Subject: "physics"})
	repo.Save(session)

	repo.Delete(session.Id.String())

	_, found := repo.Get(session.Id.String())
	assert.False(t, found)
}
