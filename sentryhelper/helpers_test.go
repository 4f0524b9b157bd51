package sentryhelper

import (
	"context"
	"testing"

	sentry "github.com/getsentry/sentry-go"
)

func TestHubFromContextFallsBack(t *testing.T) {
	if got := HubFromContext(context.Background()); got != sentry.CurrentHub() {
		t.Error("expected CurrentHub for a context without a cloned hub")
	}
}

func TestStartActionTransactionClonesHub(t *testing.T) {
	ctx, tx := StartActionTransaction(context.Background(), "lyrics", "Love Story")
	defer tx.Finish()

	hub := HubFromContext(ctx)
	if hub == sentry.CurrentHub() {
		t.Error("expected a cloned hub in the transaction context")
	}
	if tx.Tags["action"] != "lyrics" || tx.Tags["title"] != "Love Story" {
		t.Errorf("transaction tags = %v", tx.Tags)
	}

	// Must not panic without a configured client.
	AddBreadcrumb(ctx, &sentry.Breadcrumb{Category: "test", Message: "crumb"})
	CaptureMessage(ctx, "message")
}
