package kvstore

import (
	"context"
	"testing"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestGetMissingKey(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			value, err := s.Get(ctx, "nope")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if value != nil {
				t.Errorf("value = %q, want nil for missing key", value)
			}
		})
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, err := s.Get(ctx, "k")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != `{"a":1}` {
				t.Errorf("value = %q, want %q", got, `{"a":1}`)
			}
		})
	}
}

func TestSetOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s.Set(ctx, "k", []byte("old"))
			if err := s.Set(ctx, "k", []byte("new")); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, _ := s.Get(ctx, "k")
			if string(got) != "new" {
				t.Errorf("value = %q, want %q", got, "new")
			}
		})
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s.Set(ctx, "k", []byte("v"))
			if err := s.Remove(ctx, "k"); err != nil {
				t.Fatalf("remove: %v", err)
			}
			got, _ := s.Get(ctx, "k")
			if got != nil {
				t.Errorf("value after remove = %q, want nil", got)
			}

			// Removing a missing key is fine
			if err := s.Remove(ctx, "never"); err != nil {
				t.Errorf("remove missing: %v", err)
			}
		})
	}
}

func TestGetMultiple(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s.Set(ctx, "a", []byte("1"))
			s.Set(ctx, "b", []byte("2"))

			got, err := s.GetMultiple(ctx, []string{"a", "b", "missing"})
			if err != nil {
				t.Fatalf("get multiple: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("results = %d, want 2 (missing keys omitted)", len(got))
			}
			values := map[string]string{}
			for _, kv := range got {
				values[kv.Key] = string(kv.Value)
			}
			if values["a"] != "1" || values["b"] != "2" {
				t.Errorf("values = %v", values)
			}
		})
	}
}

func TestRemoveMultiple(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s.Set(ctx, "a", []byte("1"))
			s.Set(ctx, "b", []byte("2"))
			s.Set(ctx, "keep", []byte("3"))

			if err := s.RemoveMultiple(ctx, []string{"a", "b", "missing"}); err != nil {
				t.Fatalf("remove multiple: %v", err)
			}

			for _, key := range []string{"a", "b"} {
				if v, _ := s.Get(ctx, key); v != nil {
					t.Errorf("%q survived RemoveMultiple", key)
				}
			}
			if v, _ := s.Get(ctx, "keep"); string(v) != "3" {
				t.Errorf("unrelated key damaged: %q", v)
			}
		})
	}
}
