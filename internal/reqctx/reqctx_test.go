package reqctx_test

import (
	"context"
	"testing"

	"github.com/nextelligentia/leadops/internal/reqctx"
)

func TestRoundTrip(t *testing.T) {
	ctx := reqctx.WithRequestID(context.Background(), "req-1")
	ctx = reqctx.WithAccountID(ctx, "acc-1")

	if got := reqctx.RequestID(ctx); got != "req-1" {
		t.Errorf("request id: got %q", got)
	}
	if got := reqctx.AccountID(ctx); got != "acc-1" {
		t.Errorf("account id: got %q", got)
	}
}

func TestAbsent(t *testing.T) {
	if reqctx.RequestID(context.Background()) != "" || reqctx.AccountID(context.Background()) != "" {
		t.Error("expected empty values on a bare context")
	}
}

func TestNewRequestID_Unique(t *testing.T) {
	if reqctx.NewRequestID() == reqctx.NewRequestID() {
		t.Error("request ids should differ")
	}
}
