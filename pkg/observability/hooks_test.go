package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNoReceivers(t *testing.T) {
	ctx := context.Background()
	Lookup().OnList(ctx, 3, time.Second, nil)
	Lookup().OnDescribe(ctx, "requests", time.Second, nil)
	Cache().OnCacheHit(ctx, "pip-show")
	Cache().OnCacheMiss(ctx, "pip-show")
	Cache().OnCacheSet(ctx, "pip-show", 10)
	Render().OnRenderStart(ctx, []string{"svg"})
	Render().OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
}

func TestRegisterFansOut(t *testing.T) {
	var got []string
	record := func(name string) func(context.Context, string) {
		return func(_ context.Context, kind string) { got = append(got, name+":"+kind) }
	}

	stopA := Register(Hooks{Cache: CacheFuncs{Hit: record("a")}})
	defer stopA()
	stopB := Register(Hooks{Cache: CacheFuncs{Hit: record("b"), Miss: record("b-miss")}})
	defer stopB()

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "pip-show")
	Cache().OnCacheMiss(ctx, "pip-show")

	want := []string{"a:pip-show", "b:pip-show", "b-miss:pip-show"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestUnregister(t *testing.T) {
	before := Registered()
	var lists int
	stop := Register(Hooks{Lookup: LookupFuncs{
		List: func(context.Context, int, time.Duration, error) { lists++ },
	}})
	if Registered() != before+1 {
		t.Fatalf("Registered() = %d, want %d", Registered(), before+1)
	}

	ctx := context.Background()
	Lookup().OnList(ctx, 1, 0, nil)
	stop()
	stop()
	Lookup().OnList(ctx, 1, 0, nil)

	if lists != 1 {
		t.Errorf("OnList delivered %d times, want 1", lists)
	}
	if Registered() != before {
		t.Errorf("Registered() = %d after unregister, want %d", Registered(), before)
	}
}

type renderRecorder struct {
	started []string
	err     error
}

func (r *renderRecorder) OnRenderStart(_ context.Context, formats []string) {
	r.started = append(r.started, formats...)
}

func (r *renderRecorder) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	r.err = err
}

func TestRenderHooks(t *testing.T) {
	rec := &renderRecorder{}
	defer Register(Hooks{Render: rec})()

	ctx := context.Background()
	boom := errors.New("boom")
	Render().OnRenderStart(ctx, []string{"svg", "json"})
	Render().OnRenderComplete(ctx, []string{"svg", "json"}, time.Millisecond, boom)

	if diff := cmp.Diff([]string{"svg", "json"}, rec.started); diff != "" {
		t.Errorf("started mismatch (-want +got):\n%s", diff)
	}
	if rec.err != boom {
		t.Errorf("OnRenderComplete err = %v, want %v", rec.err, boom)
	}
}

func TestNilFuncsSkipped(t *testing.T) {
	defer Register(Hooks{Lookup: LookupFuncs{}, Cache: CacheFuncs{}})()
	ctx := context.Background()
	Lookup().OnDescribe(ctx, "x", 0, nil)
	Cache().OnCacheSet(ctx, "pip-show", 1)
}
