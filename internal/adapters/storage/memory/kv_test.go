package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestKVBasics(t *testing.T) {
	ctx := context.Background()
	kv := NewKV()

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing key err = %v, want ErrNotFound", err)
	}

	if err := kv.Set(ctx, "roster", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "roster", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, err := kv.Get(ctx, "roster")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "v2" {
		t.Fatalf("value = %s, want v2", v)
	}

	if err := kv.Set(ctx, "  ", "x"); err == nil {
		t.Fatal("blank key should be rejected")
	}

	if err := kv.Delete(ctx, "roster"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get(ctx, "roster"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted key err = %v, want ErrNotFound", err)
	}
}

func TestKVListKeysSortedByPrefix(t *testing.T) {
	ctx := context.Background()
	kv := NewKV()

	for _, k := range []string{"backup:2026-08-25", "roster", "backup:2026-08-23", "backup:2026-08-24"} {
		if err := kv.Set(ctx, k, "x"); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	keys, err := kv.ListKeys(ctx, "backup:")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []string{"backup:2026-08-23", "backup:2026-08-24", "backup:2026-08-25"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
}
