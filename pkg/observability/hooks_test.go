package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnComposeStart(ctx, "Bank - API - Components")
	p.OnComposeComplete(ctx, "Bank - API - Components", 3, 1, time.Second)
	p.OnRenderStart(ctx, "Bank - API - Components", []string{"svg"})
	p.OnRenderComplete(ctx, "Bank - API - Components", []string{"svg"}, time.Second, nil)

	s := NoopStoreHooks{}
	s.OnStoreGet(ctx, "bank", time.Second, nil)
	s.OnStorePut(ctx, "bank", time.Second, nil)
	s.OnStoreDelete(ctx, "bank", nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)
}

type recordingPipelineHooks struct {
	NoopPipelineHooks
	composed []string
}

func (h *recordingPipelineHooks) OnComposeStart(_ context.Context, viewName string) {
	h.composed = append(h.composed, viewName)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)
	Pipeline().OnComposeStart(context.Background(), "v1")
	if len(rec.composed) != 1 || rec.composed[0] != "v1" {
		t.Errorf("composed = %v, want [v1]", rec.composed)
	}

	// Nil registration keeps the current hooks.
	SetPipelineHooks(nil)
	if Pipeline() != rec {
		t.Error("SetPipelineHooks(nil) replaced registered hooks")
	}
}
