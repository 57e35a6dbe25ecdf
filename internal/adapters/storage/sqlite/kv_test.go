package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestKV(t *testing.T) *KV {
	t.Helper()

	kv, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("empty path should fail")
	}
}

func TestKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := openTestKV(t)

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing key err = %v, want ErrNotFound", err)
	}

	if err := kv.Set(ctx, "roster", `[{"id":"c1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "roster", `[{"id":"c2"}]`); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	v, err := kv.Get(ctx, "roster")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != `[{"id":"c2"}]` {
		t.Fatalf("value = %s", v)
	}

	if err := kv.Delete(ctx, "roster"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get(ctx, "roster"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted key err = %v, want ErrNotFound", err)
	}
}

func TestKVListKeys(t *testing.T) {
	ctx := context.Background()
	kv := openTestKV(t)

	for _, k := range []string{"backup:2026-08-25", "roster", "backup:2026-08-23", "roster:last_saved"} {
		if err := kv.Set(ctx, k, "x"); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	keys, err := kv.ListKeys(ctx, "backup:")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"backup:2026-08-23", "backup:2026-08-25"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}

	// prefijo con _ no debe comportarse como wildcard de LIKE
	keys, err = kv.ListKeys(ctx, "roster:last_")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"roster:last_saved"}) {
		t.Fatalf("keys = %v", keys)
	}
}

func TestKVSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	kv, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := kv.Set(ctx, "roster", "persisted"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	kv2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv2.Close()

	v, err := kv2.Get(ctx, "roster")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if v != "persisted" {
		t.Fatalf("value = %s, want persisted", v)
	}
}
