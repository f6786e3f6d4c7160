package rediskv

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/lazy"
	"github.com/kbukum/lazykit/task"
)

type profile struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// newTestClient creates a go-redis client backed by miniredis.
func newTestClient(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mini.Close)

	client, err := NewClient(Config{Addr: mini.Addr()})
	if err != nil {
		t.Fatalf("failed to create redis client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, mini
}

func await[T any](t *testing.T, p *lazy.Maybe[T]) (T, bool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	v, err := p.Await(ctx)
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	return v.Get()
}

func TestGet_Hit(t *testing.T) {
	client, mini := newTestClient(t)
	_ = mini.Set("greeting", "hello")

	p, err := lazy.Map(Get(context.Background(), client, "greeting"), func(s string) int { return len(s) })
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if n, ok := await(t, p); !ok || n != 5 {
		t.Errorf("got (%d, %v), want (5, true)", n, ok)
	}
}

func TestGet_MissIsNone(t *testing.T) {
	client, _ := newTestClient(t)

	tk := Lookup(context.Background(), client, "absent")
	if _, ok := await(t, tk.Lazy()); ok {
		t.Error("expected None for a missing key")
	}
	if tk.Err() != nil {
		t.Errorf("a miss is not an error, got %v", tk.Err())
	}
}

func TestGet_ServerDownIsSourceFailed(t *testing.T) {
	task.Configure(task.Config{SilenceFailures: true})
	defer task.Configure(task.Config{})

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr(), MaxRetries: -1})
	defer client.Close()
	mini.Close()

	tk := Lookup(context.Background(), client, "k")
	if _, ok := await(t, tk.Lazy()); ok {
		t.Error("expected None when the server is unreachable")
	}
	if !stderrors.Is(tk.Err(), errors.ErrSourceFailed) {
		t.Errorf("got %v, want SOURCE_FAILED", tk.Err())
	}
}

func TestLookup_NilClient(t *testing.T) {
	task.Configure(task.Config{SilenceFailures: true})
	defer task.Configure(task.Config{})

	tk := Lookup(context.Background(), nil, "k")
	if !stderrors.Is(tk.Err(), errors.ErrNullArgument) {
		t.Errorf("got %v, want NULL_ARGUMENT", tk.Err())
	}
}

func TestGetJSON(t *testing.T) {
	task.Configure(task.Config{SilenceFailures: true})
	defer task.Configure(task.Config{})

	client, mini := newTestClient(t)
	_ = mini.Set("p", `{"name":"ada","tags":["x"]}`)
	_ = mini.Set("bad", `{not json`)

	got, ok := await(t, GetJSON[profile](context.Background(), client, "p"))
	if !ok || got.Name != "ada" || len(got.Tags) != 1 {
		t.Errorf("got (%+v, %v), want ada with one tag", got, ok)
	}

	if _, ok := await(t, GetJSON[profile](context.Background(), client, "bad")); ok {
		t.Error("expected None for malformed JSON")
	}
}

func TestStore_SaveLoadDelete(t *testing.T) {
	client, mini := newTestClient(t)
	store := NewStore[profile](client, "profiles")
	ctx := context.Background()

	if err := store.Save(ctx, "1", profile{Name: "lin"}, time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !mini.Exists("profiles:1") {
		t.Fatal("expected prefixed key to exist")
	}

	name, err := lazy.Map(store.Load(ctx, "1"), func(p profile) string { return p.Name })
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if got, _ := await(t, name); got != "lin" {
		t.Errorf("got %q, want lin", got)
	}

	if err := store.Delete(ctx, "1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := await(t, store.Load(ctx, "1")); ok {
		t.Error("expected None after Delete")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{Addr: "localhost:6379"}, false},
		{"missing addr", Config{}, true},
		{"bad timeout", Config{Addr: "x:1", DialTimeout: "soon"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.ApplyDefaults()
			if err := tc.cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
