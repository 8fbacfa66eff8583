package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/webext"
	"github.com/fwojciec/webext/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkSaveNamespace measures upserts for a full harvest run against a
// file-backed database.
func BenchmarkSaveNamespace(b *testing.B) {
	b.Run("insert", func(b *testing.B) {
		benchmarkSaves(b, func(i int) string { return fmt.Sprintf("ns%d", i) })
	})

	b.Run("replace", func(b *testing.B) {
		benchmarkSaves(b, func(int) string { return "tabs" })
	})
}

func benchmarkSaves(b *testing.B, name func(i int) string) {
	b.Helper()

	dbPath := filepath.Join(b.TempDir(), "bench.db")
	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())
	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	ctx := context.Background()
	svc := sqlite.NewNamespaceService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ns := tabsNamespace()
		ns.Name = name(i)
		rec := &webext.NamespaceRecord{
			Name:      ns.Name,
			SourceURL: "https://example.org/reference/" + ns.Name,
			Namespace: ns,
		}
		if err := svc.SaveNamespace(ctx, rec); err != nil {
			b.Fatal(err)
		}
	}
}
