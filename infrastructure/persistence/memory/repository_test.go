package memory

import (
	"context"
	"testing"

	"scholargraph/domain/core/entities"
	"scholargraph/domain/core/valueobjects"
	pkgerrors "scholargraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAffiliation(t *testing.T, id string, x, y int) *entities.Affiliation {
	t.Helper()
	affID, err := valueobjects.NewAffiliationID(id)
	require.NoError(t, err)
	name, err := valueobjects.NewName("Institute " + id)
	require.NoError(t, err)
	affiliation, err := entities.NewAffiliation(affID, name, valueobjects.NewCoord(x, y))
	require.NoError(t, err)
	return affiliation
}

func newPublication(t *testing.T, id valueobjects.PublicationID) *entities.Publication {
	t.Helper()
	title, err := valueobjects.NewName("Paper")
	require.NoError(t, err)
	publication, err := entities.NewPublication(id, title, 2020, nil, nil)
	require.NoError(t, err)
	return publication
}

func TestAffiliationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAffiliationRepository(0)

	require.NoError(t, repo.Save(ctx, newAffiliation(t, "b", 1, 1)))
	require.NoError(t, repo.Save(ctx, newAffiliation(t, "a", 2, 2)))
	require.NoError(t, repo.Save(ctx, newAffiliation(t, "c", 1, 1)))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ID().String())
	assert.Equal(t, "c", list[2].ID().String())

	found, err := repo.FindByCoord(ctx, valueobjects.NewCoord(1, 1))
	require.NoError(t, err)
	assert.Equal(t, "b", found.ID().String())

	_, err = repo.FindByCoord(ctx, valueobjects.NewCoord(9, 9))
	assert.True(t, pkgerrors.IsNotFound(err))

	id := list[0].ID()
	exists, err := repo.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.GetByID(ctx, id)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.True(t, pkgerrors.IsNotFound(repo.Delete(ctx, id)))

	require.NoError(t, repo.Clear(ctx))
	count, _ = repo.Count(ctx)
	assert.Equal(t, 0, count)
}

func TestAffiliationRepositoryLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewAffiliationRepository(1)

	first := newAffiliation(t, "a", 0, 0)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, first), "updating an existing record stays within the limit")

	err := repo.Save(ctx, newAffiliation(t, "b", 0, 0))
	assert.True(t, pkgerrors.IsConflict(err))
}

func TestPublicationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPublicationRepository(2)

	require.NoError(t, repo.Save(ctx, newPublication(t, 20)))
	require.NoError(t, repo.Save(ctx, newPublication(t, 3)))
	assert.True(t, pkgerrors.IsConflict(repo.Save(ctx, newPublication(t, 7))))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, valueobjects.PublicationID(3), list[0].ID())
	assert.Equal(t, valueobjects.PublicationID(20), list[1].ID())

	exists, err := repo.Exists(ctx, 20)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, 20))
	_, err = repo.GetByID(ctx, 20)
	assert.True(t, pkgerrors.IsNotFound(err))

	require.NoError(t, repo.Clear(ctx))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
