package links_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkhub/internal/links"
	"linkhub/internal/testsupport"
)

func TestAddLink(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "owner")
	profile := testsupport.CreateTestProfile(t, db, user.ID, "links-page")

	t.Run("assigns sequential positions per profile", func(t *testing.T) {
		first, err := links.Add(db, user.ID, profile.ID, "First", "https://example.com/1", "")
		require.NoError(t, err)
		second, err := links.Add(db, user.ID, profile.ID, "Second", "https://example.com/2", "")
		require.NoError(t, err)

		assert.Equal(t, 1, first.Position)
		assert.Equal(t, 2, second.Position)
	})

	t.Run("positions are independent across profiles", func(t *testing.T) {
		other := testsupport.CreateTestProfile(t, db, user.ID, "other-page")

		link, err := links.Add(db, user.ID, other.ID, "Solo", "https://example.com/solo", "")
		require.NoError(t, err)
		assert.Equal(t, 1, link.Position)
	})

	t.Run("empty title and url create an active draft", func(t *testing.T) {
		draft := testsupport.CreateTestProfile(t, db, user.ID, "draft-page")

		link, err := links.Add(db, user.ID, draft.ID, "", "", "")
		require.NoError(t, err)

		assert.Empty(t, link.Title)
		assert.Empty(t, link.URL)
		assert.True(t, link.IsActive)
		assert.Equal(t, 1, link.Position)
		assert.Equal(t, links.DefaultPlatform, link.Platform)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		trimmed := testsupport.CreateTestProfile(t, db, user.ID, "trimmed-page")

		link, err := links.Add(db, user.ID, trimmed.ID, "  Padded  ", " https://example.com ", "youtube")
		require.NoError(t, err)
		assert.Equal(t, "Padded", link.Title)
		assert.Equal(t, "https://example.com", link.URL)
		assert.Equal(t, "youtube", link.Platform)
	})
}

func TestUpdateLink(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "owner")
	profile := testsupport.CreateTestProfile(t, db, user.ID, "links-page")
	link := testsupport.CreateTestLink(t, db, user.ID, profile.ID, "Original", "https://example.com")

	t.Run("applies partial updates", func(t *testing.T) {
		title := "Renamed"
		updated, err := links.Update(db, link.ID, user.ID, links.UpdateInput{Title: &title})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "https://example.com", updated.URL)
	})

	t.Run("deactivation flips the flag", func(t *testing.T) {
		inactive := false
		updated, err := links.Update(db, link.ID, user.ID, links.UpdateInput{IsActive: &inactive})

		require.NoError(t, err)
		assert.False(t, updated.IsActive)

		_, err = links.FindActive(db, link.ID)
		assert.ErrorIs(t, err, links.ErrLinkNotFound)
	})

	t.Run("rejects link owned by someone else", func(t *testing.T) {
		stranger := testsupport.CreateTestUser(t, db, "stranger@example.com", "stranger")
		title := "hijacked"

		_, err := links.Update(db, link.ID, stranger.ID, links.UpdateInput{Title: &title})
		assert.ErrorIs(t, err, links.ErrLinkNotFound)
	})
}

func TestReorder(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "owner")
	profile := testsupport.CreateTestProfile(t, db, user.ID, "reorder-page")

	a := testsupport.CreateTestLink(t, db, user.ID, profile.ID, "A", "https://example.com/a")
	b := testsupport.CreateTestLink(t, db, user.ID, profile.ID, "B", "https://example.com/b")
	c := testsupport.CreateTestLink(t, db, user.ID, profile.ID, "C", "https://example.com/c")

	t.Run("position becomes index in submitted order", func(t *testing.T) {
		require.NoError(t, links.Reorder(db, []string{c.ID, a.ID, b.ID}, user.ID))

		ordered, err := links.ListByProfile(db, user.ID, profile.ID)
		require.NoError(t, err)
		require.Len(t, ordered, 3)
		assert.Equal(t, c.ID, ordered[0].ID)
		assert.Equal(t, a.ID, ordered[1].ID)
		assert.Equal(t, b.ID, ordered[2].ID)
	})

	t.Run("ids owned by someone else are skipped", func(t *testing.T) {
		stranger := testsupport.CreateTestUser(t, db, "stranger@example.com", "stranger")
		strangerProfile := testsupport.CreateTestProfile(t, db, stranger.ID, "stranger-page")
		foreign := testsupport.CreateTestLink(t, db, stranger.ID, strangerProfile.ID, "Foreign", "https://example.com/f")

		require.NoError(t, links.Reorder(db, []string{foreign.ID, a.ID, b.ID, c.ID}, user.ID))

		// The foreign link keeps its own position.
		kept, err := links.FindOwned(db, foreign.ID, stranger.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, kept.Position)

		ordered, err := links.ListByProfile(db, user.ID, profile.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, ordered[0].ID)
	})
}

func TestDeleteLink(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "owner")
	profile := testsupport.CreateTestProfile(t, db, user.ID, "delete-page")

	t.Run("deletes owned link", func(t *testing.T) {
		link := testsupport.CreateTestLink(t, db, user.ID, profile.ID, "Doomed", "https://example.com")

		require.NoError(t, links.Delete(db, link.ID, user.ID))

		_, err := links.FindOwned(db, link.ID, user.ID)
		assert.ErrorIs(t, err, links.ErrLinkNotFound)
	})

	t.Run("missing link errors", func(t *testing.T) {
		assert.ErrorIs(t, links.Delete(db, "no-such-id", user.ID), links.ErrLinkNotFound)
	})
}

func TestIDsByUser(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "owner")
	first := testsupport.CreateTestProfile(t, db, user.ID, "page-one")
	second := testsupport.CreateTestProfile(t, db, user.ID, "page-two")

	a := testsupport.CreateTestLink(t, db, user.ID, first.ID, "A", "https://example.com/a")
	b := testsupport.CreateTestLink(t, db, user.ID, second.ID, "B", "https://example.com/b")

	ids, err := links.IDsByUser(db, user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
}
