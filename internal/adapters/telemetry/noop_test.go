package telemetry_test

import (
	"context"
	"testing"

	"go.trai.ch/shed/internal/adapters/telemetry"
	"go.trai.ch/shed/internal/core/domain"
	"go.trai.ch/shed/internal/core/ports"
)

func TestNoOp(t *testing.T) {
	recorder := telemetry.NewNoOp()

	ctx, vertex := recorder.Record(context.Background(), "noop task")
	if _, ok := ports.VertexFromContext(ctx); !ok {
		t.Fatal("expected vertex on the returned context")
	}

	if _, err := vertex.Stdout().Write([]byte("ignored")); err != nil {
		t.Errorf("stdout write failed: %v", err)
	}
	if _, err := vertex.Stderr().Write([]byte("ignored")); err != nil {
		t.Errorf("stderr write failed: %v", err)
	}
	vertex.Log(domain.LogLevelInfo, "ignored")
	vertex.Cached()
	vertex.Complete(nil)

	if err := recorder.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
}
