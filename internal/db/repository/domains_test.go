package repository

import (
	"context"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "docsight/internal/db"
	"docsight/internal/domain"
)

func setupRepo(t *testing.T) (*VerifiedDomainRepo, context.Context) {
	t.Helper()
	writeDB, _ := internaldb.OpenTestSQLite(t)
	return NewVerifiedDomainRepo(writeDB), context.Background()
}

func TestAddAndListDomains(t *testing.T) {
	repo, ctx := setupRepo(t)

	d, err := repo.Add(ctx, "Alice@Foo.com", "Inlang.COM")
	require.NoError(t, err)
	assert.Equal(t, "alice@foo.com", d.UserEmail)
	assert.Equal(t, "inlang.com", d.Host)
	assert.False(t, d.Verified)

	all, err := repo.List(ctx, "alice@foo.com")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Verified)

	// Unverified claims never contribute to access control.
	verified, err := repo.ListVerified(ctx, "alice@foo.com")
	require.NoError(t, err)
	assert.Empty(t, verified)
}

func TestMarkVerified(t *testing.T) {
	repo, ctx := setupRepo(t)

	_, err := repo.Add(ctx, "alice@foo.com", "inlang.com")
	require.NoError(t, err)

	require.NoError(t, repo.MarkVerified(ctx, "alice@foo.com", "inlang.com"))

	verified, err := repo.ListVerified(ctx, "alice@foo.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"inlang.com"}, verified)
}

func TestMarkVerifiedUnknownClaim(t *testing.T) {
	repo, ctx := setupRepo(t)

	err := repo.MarkVerified(ctx, "alice@foo.com", "nope.com")
	var nf *domain.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestAddDuplicateClaim(t *testing.T) {
	repo, ctx := setupRepo(t)

	_, err := repo.Add(ctx, "alice@foo.com", "inlang.com")
	require.NoError(t, err)

	_, err = repo.Add(ctx, "alice@foo.com", "inlang.com")
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestDomainsAreScopedPerUser(t *testing.T) {
	repo, ctx := setupRepo(t)

	_, err := repo.Add(ctx, "alice@foo.com", "inlang.com")
	require.NoError(t, err)
	require.NoError(t, repo.MarkVerified(ctx, "alice@foo.com", "inlang.com"))

	verified, err := repo.ListVerified(ctx, "bob@bar.com")
	require.NoError(t, err)
	assert.Empty(t, verified)
}
