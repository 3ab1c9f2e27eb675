package dao_test

import (
	"testing"

	"github.com/balojey/abdullateef-api/dao"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteDAO(t *testing.T) {
	ctx, db := setup(t)
	notes := dao.NewNoteDAO(db)
	c := createClient(t, db, "Noted", "Pilgrim", nil)
	author := uuid.New()

	_, err := notes.Create(ctx, dao.NoteInput{ClientID: c.ID, Content: "   "})
	assert.ErrorIs(t, err, dao.ErrInvalidInput)
	_, err = notes.Create(ctx, dao.NoteInput{ClientID: uuid.New(), Content: "orphan"})
	assert.ErrorIs(t, err, dao.ErrInvalidInput)

	n, err := notes.Create(ctx, dao.NoteInput{ClientID: c.ID, Content: "Needs wheelchair assistance", CreatedBy: &author})
	require.NoError(t, err)
	_, err = notes.Create(ctx, dao.NoteInput{ClientID: c.ID, Content: "Paid deposit in cash"})
	require.NoError(t, err)

	byClient, err := notes.GetByClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, byClient, 2)

	byAuthor, err := notes.GetByCreatedBy(ctx, author)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, n.ID, byAuthor[0].ID)

	updated, err := notes.UpdateContent(ctx, n.ID, "Needs wheelchair at Jeddah")
	require.NoError(t, err)
	assert.Equal(t, "Needs wheelchair at Jeddah", updated.Content)

	_, err = notes.UpdateContent(ctx, n.ID, "")
	assert.ErrorIs(t, err, dao.ErrInvalidInput)
	_, err = notes.UpdateContent(ctx, uuid.New(), "text")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	require.NoError(t, notes.Delete(ctx, n.ID))
	_, err = notes.GetByID(ctx, n.ID)
	assert.ErrorIs(t, err, dao.ErrNotFound)

	all, err := notes.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
