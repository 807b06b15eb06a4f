package ctxutil

import (
	"context"
	"testing"
)

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Errorf("request id: got %q, want %q", got, "req-123")
	}
}

func TestRequestID_Absent(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("request id: got %q, want empty", got)
	}
}

func TestAdmin_RoundTrip(t *testing.T) {
	t.Parallel()

	if IsAdminCtx(context.Background()) {
		t.Error("background context must not be admin")
	}
	if !IsAdminCtx(WithAdmin(context.Background())) {
		t.Error("admin context not detected")
	}
}
