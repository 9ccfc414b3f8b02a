package repository

import (
	"context"
	"empresas/cmd/internal/domain/entity"
	"empresas/cmd/internal/domain/sqlite"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *DefaultCompanyRepository {
	t.Helper()
	db, err := sqlite.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return NewCompanyRepository(db)
}

func str(s string) *string {
	return &s
}

func seed(t *testing.T, repo *DefaultCompanyRepository, nit, name *string, status entity.WorkflowStatus) *entity.Company {
	t.Helper()
	c := &entity.Company{
		NIT:        nit,
		Name:       name,
		Status:     status,
		RawPayload: []byte(`{}`),
		CreatedAt:  "2024-01-01T00:00:00.000000+00:00",
		UpdatedAt:  "2024-01-01T00:00:00.000000+00:00",
	}
	require.NoError(t, repo.Create(context.Background(), c))
	require.NotZero(t, c.ID)
	return c
}

func TestFindFirstByNaturalKey(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	got, err := repo.FindFirstByNaturalKey(ctx, str("900"), str("Acme"))
	require.NoError(t, err)
	assert.Nil(t, got, "empty table must not match")

	first := seed(t, repo, str("900"), str("Acme"), entity.StatusPending)
	second := seed(t, repo, str("901"), str("Acme"), entity.StatusPending)
	third := seed(t, repo, str("902"), nil, entity.StatusPending)

	tests := []struct {
		name   string
		nit    *string
		nombre *string
		wantID int64
	}{
		{name: "by nit", nit: str("902"), wantID: third.ID},
		{name: "by name with other nit", nit: str("999"), nombre: str("Acme"), wantID: first.ID},
		{name: "lowest id wins on shared name", nombre: str("Acme"), wantID: first.ID},
		{name: "nit of later row", nit: str("901"), nombre: str("Other"), wantID: second.ID},
		{name: "no match", nit: str("000"), nombre: str("Nobody")},
		{name: "nil keys never match null columns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindFirstByNaturalKey(ctx, tt.nit, tt.nombre)
			require.NoError(t, err)
			if tt.wantID == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestCreate_DefaultsAndRawPayload(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	c := &entity.Company{
		Name:       str("Acme"),
		Status:     entity.StatusPending,
		RawPayload: []byte(`{"nombre":"Acme"}`),
		CreatedAt:  "2024-01-01T00:00:00.000000+00:00",
		UpdatedAt:  "2024-01-01T00:00:00.000000+00:00",
	}
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.FindFirstByNaturalKey(ctx, nil, str("Acme"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.StatusPending, got.Status)
	assert.Nil(t, got.NIT)
	assert.JSONEq(t, `{"nombre":"Acme"}`, string(got.RawPayload))
}

func TestUpdateData_KeepsStatusAndCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	c := seed(t, repo, str("900"), str("Acme"), entity.StatusProcessed)

	update := &entity.Company{
		ID:         c.ID,
		NIT:        str("900"),
		Name:       str("Acme SAS"),
		Category:   str("SOCIEDAD"),
		RawPayload: []byte(`{"nombre":"Acme SAS"}`),
		UpdatedAt:  "2025-06-01T00:00:00.000000+00:00",
	}
	require.NoError(t, repo.UpdateData(ctx, update))

	got, err := repo.FindFirstByNaturalKey(ctx, str("900"), nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme SAS", *got.Name)
	assert.Equal(t, "SOCIEDAD", *got.Category)
	assert.Equal(t, entity.StatusProcessed, got.Status)
	assert.Equal(t, c.CreatedAt, got.CreatedAt)
	assert.Equal(t, "2025-06-01T00:00:00.000000+00:00", got.UpdatedAt)
}

func TestUpdateData_NullsAbsentFields(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	c := seed(t, repo, str("900"), str("Acme"), entity.StatusPending)
	c.Chamber = str("BOGOTA")
	require.NoError(t, repo.UpdateData(ctx, c))

	require.NoError(t, repo.UpdateData(ctx, &entity.Company{ID: c.ID, NIT: str("900"), RawPayload: []byte(`{}`)}))

	got, err := repo.FindFirstByNaturalKey(ctx, str("900"), nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Chamber)
	assert.Nil(t, got.Name)
}

func TestUpdateStatusByKey(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seed(t, repo, str("1"), str("A"), entity.StatusPending)
	seed(t, repo, str("2"), str("A"), entity.StatusPending)
	seed(t, repo, str("A"), str("B"), entity.StatusPending)
	untouched := seed(t, repo, str("3"), str("C"), entity.StatusPending)

	n, err := repo.UpdateStatusByKey(ctx, "A", entity.StatusProcessed, "2025-01-01T00:00:00.000000+00:00")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n, "key is matched against nit and name")

	processed, err := repo.FindByStatus(ctx, entity.StatusProcessed)
	require.NoError(t, err)
	assert.Len(t, processed, 3)
	for _, c := range processed {
		assert.Equal(t, "2025-01-01T00:00:00.000000+00:00", c.UpdatedAt)
	}

	pending, err := repo.FindByStatus(ctx, entity.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, untouched.ID, pending[0].ID)

	n, err = repo.UpdateStatusByKey(ctx, "nonexistent", entity.StatusError, "2025-01-01T00:00:00.000000+00:00")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFindAll_StoreOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	a := seed(t, repo, nil, str("A"), entity.StatusPending)
	b := seed(t, repo, nil, str("B"), entity.StatusError)

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)
	assert.Equal(t, b.ID, all[1].ID)
}
