package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMemoryKV(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get on empty store = ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "slot", "value"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, _ := kv.Get(ctx, "slot"); !ok || v != "value" {
		t.Fatalf("Get = %q, %v; want value, true", v, ok)
	}

	if err := kv.Set(ctx, "slot", "replaced"); err != nil {
		t.Fatal(err)
	}
	if v, _, _ := kv.Get(ctx, "slot"); v != "replaced" {
		t.Fatalf("Get after overwrite = %q, want replaced", v)
	}

	if err := kv.Del(ctx, "slot"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "slot"); ok {
		t.Fatal("key survived Del")
	}

	if !kv.Healthy(ctx) {
		t.Fatal("memory backend reported unhealthy")
	}
}

func TestSQLiteKV(t *testing.T) {
	kv, err := NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	defer kv.Close()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get on fresh db = ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "slot", "a"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set(ctx, "slot", "b"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if v, ok, _ := kv.Get(ctx, "slot"); !ok || v != "b" {
		t.Fatalf("Get = %q, %v; want b, true", v, ok)
	}

	if err := kv.Del(ctx, "slot"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "slot"); ok {
		t.Fatal("key survived Del")
	}
}
