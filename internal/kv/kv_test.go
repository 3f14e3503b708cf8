package kv

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	stores := map[string]Store{}
	for _, tc := range []struct{ backend, path string }{
		{BackendMemory, ""},
		{BackendBadger, filepath.Join(dir, "badger")},
		{BackendSQLite, filepath.Join(dir, "sqlite", "prefs.db")},
	} {
		s, err := Open(tc.backend, tc.path)
		require.NoError(t, err, "open %s", tc.backend)
		t.Cleanup(func() { s.Close() })
		stores[tc.backend] = s
	}
	return stores
}

func keys(t *testing.T, s Store) []string {
	t.Helper()
	entries, err := s.Entries(context.Background())
	require.NoError(t, err)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key+"="+e.Value)
	}
	sort.Strings(out)
	return out
}

func TestSetEntriesDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, name, s.Backend())
			require.Empty(t, keys(t, s))

			require.NoError(t, s.Set(ctx, "message_1", "a|2024-01-01 00:00:00|false"))
			require.NoError(t, s.Set(ctx, "message_2", "b|2024-01-01 00:00:01|true"))
			require.NoError(t, s.Set(ctx, "message_1", "a2|2024-01-01 00:00:00|false"), "overwrite")

			require.Equal(t, []string{
				"message_1=a2|2024-01-01 00:00:00|false",
				"message_2=b|2024-01-01 00:00:01|true",
			}, keys(t, s))

			require.NoError(t, s.Delete(ctx, "message_1"))
			require.NoError(t, s.Delete(ctx, "missing"), "delete of missing key should not fail")
			require.Equal(t, []string{"message_2=b|2024-01-01 00:00:01|true"}, keys(t, s))
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "sub", "dir", "prefs.db")

	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "message_1", "hello|2024-01-01 00:00:00|false"))
	require.NoError(t, s.Close())

	require.FileExists(t, dbPath)

	s, err = NewSQLiteStore(dbPath)
	require.NoError(t, err, "reopen")
	defer s.Close()
	require.Len(t, keys(t, s), 1)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("redis", "")
	require.ErrorIs(t, err, ErrUnknownBackend)
}
