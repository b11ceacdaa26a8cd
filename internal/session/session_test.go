package session

import (
	"context"
	"testing"
	"time"

	"worknest-console/internal/auth"
	"worknest-console/internal/models"
	"worknest-console/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestLoad_RequiredKeys(t *testing.T) {
	full := Values{KeyEmpID: "7", KeyCompanyID: "2", KeyRoleID: "11", KeyName: "Omar"}
	s, err := Load("sid", full)
	require.NoError(t, err)
	require.Equal(t, int64(7), s.EmpID)
	require.Equal(t, int64(2), s.CompanyID)
	require.Equal(t, models.RoleProjectManager, s.Role)
	require.Equal(t, "Omar", s.Name)

	for _, key := range []string{KeyEmpID, KeyCompanyID, KeyRoleID} {
		partial := Values{}
		for k, v := range full {
			partial[k] = v
		}
		delete(partial, key)
		_, err := Load("sid", partial)
		require.ErrorIs(t, err, ErrMissingKey)
		var missing *MissingKeyError
		require.ErrorAs(t, err, &missing)
		require.Equal(t, key, missing.Key)
	}

	_, err = Load("sid", Values{KeyEmpID: "abc", KeyCompanyID: "2", KeyRoleID: "8"})
	require.ErrorIs(t, err, ErrMissingKey)
	_, err = Load("sid", Values{KeyEmpID: "5", KeyCompanyID: "", KeyRoleID: "8"})
	require.ErrorIs(t, err, ErrMissingKey)
}

func TestCompose_CompanyFallback(t *testing.T) {
	emp := &models.Employee{EmpID: 5, Name: "Asha", Email: "asha@acme.io", CompanyID: 4, RoleID: 8}

	values, err := Compose("tok", &auth.BackendClaims{Role: models.RoleAdmin, CompanyID: 9}, emp)
	require.NoError(t, err)
	require.Equal(t, "9", values[KeyCompanyID])

	values, err = Compose("tok", &auth.BackendClaims{Role: models.RoleAdmin}, emp)
	require.NoError(t, err)
	require.Equal(t, "4", values[KeyCompanyID])
	require.Equal(t, "8", values[KeyRoleID])
	require.Equal(t, "tok", values[KeyToken])
	require.Contains(t, values[KeyUser], `"company_id":4`)

	emp.CompanyID = 0
	_, err = Compose("tok", &auth.BackendClaims{Role: models.RoleAdmin}, emp)
	require.ErrorIs(t, err, ErrMissingKey)

	_, err = Compose("tok", &auth.BackendClaims{}, nil)
	require.ErrorIs(t, err, ErrMissingKey)
}

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	return NewStore(db, time.Hour)
}

func TestStore_CreateLoadPut(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	id, err := store.Create(ctx, "Asha@Acme.io", Values{KeyEmpID: "5", KeyCompanyID: "1", KeyRoleID: "8", KeyName: "Asha"})
	require.NoError(t, err)
	require.Len(t, id, 36)

	s, err := store.Load(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Asha", s.Name)

	require.NoError(t, store.Put(ctx, id, Values{KeyName: "Asha N."}))
	s, err = store.Load(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Asha N.", s.Name)
	require.Equal(t, int64(5), s.EmpID)
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	a, err := store.Create(ctx, "a@x.io", Values{KeyName: "A"})
	require.NoError(t, err)
	b, err := store.Create(ctx, "b@x.io", Values{KeyName: "B"})
	require.NoError(t, err)

	va, err := store.Values(ctx, a)
	require.NoError(t, err)
	vb, err := store.Values(ctx, b)
	require.NoError(t, err)
	require.Equal(t, "A", va[KeyName])
	require.Equal(t, "B", vb[KeyName])

	// a session without its numeric keys is a precondition failure
	_, err = store.Load(ctx, a)
	require.ErrorIs(t, err, ErrMissingKey)
}

func TestStore_DeleteAndUnknown(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	id, err := store.Create(ctx, "a@x.io", Values{KeyName: "A"})
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, id))

	_, err = store.Values(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, store.Put(ctx, "missing", Values{KeyName: "x"}), ErrNotFound)
}

func TestStore_Expiry(t *testing.T) {
	ctx := context.Background()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	store := NewStore(db, time.Hour)

	id, err := store.Create(ctx, "a@x.io", Values{KeyName: "A"})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.ConsoleSession{}).Where("id = ?", id).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = store.Values(ctx, id)
	require.ErrorIs(t, err, ErrExpired)

	n, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestStore_CachedSnapshotEndsWithSession(t *testing.T) {
	ctx := context.Background()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	store := NewStore(db, 50*time.Millisecond)

	id, err := store.Create(ctx, "a@x.io", Values{KeyName: "A"})
	require.NoError(t, err)
	values, err := store.Values(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "A", values[KeyName])

	time.Sleep(100 * time.Millisecond)
	_, err = store.Values(ctx, id)
	require.ErrorIs(t, err, ErrExpired)
}
