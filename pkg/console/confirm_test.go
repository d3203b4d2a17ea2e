package console

import (
	"context"
	"testing"
	"time"
)

func TestConfirmations_RequestAndResolve(t *testing.T) {
	confirmations := NewConfirmations()

	token, done := confirmations.Request("Delete schedule?")
	if token == "" {
		t.Fatal("expected a non-empty token")
	}
	if prompt, ok := confirmations.Prompt(token); !ok || prompt != "Delete schedule?" {
		t.Fatalf("Prompt = %q, %v", prompt, ok)
	}

	if !confirmations.Resolve(token, true) {
		t.Fatal("Resolve returned false for a pending token")
	}
	select {
	case approved := <-done:
		if !approved {
			t.Fatal("expected an approved outcome")
		}
	default:
		t.Fatal("outcome channel must already carry the answer")
	}

	if confirmations.PendingCount() != 0 {
		t.Fatalf("pending count = %d after resolve", confirmations.PendingCount())
	}
}

func TestConfirmations_ResolveUnknownToken(t *testing.T) {
	confirmations := NewConfirmations()
	if confirmations.Resolve("nope", true) {
		t.Fatal("Resolve must report false for an unknown token")
	}
}

func TestConfirmations_ResolveTwice(t *testing.T) {
	confirmations := NewConfirmations()
	token, _ := confirmations.Request("Remove admin?")

	if !confirmations.Resolve(token, false) {
		t.Fatal("first Resolve failed")
	}
	if confirmations.Resolve(token, true) {
		t.Fatal("second Resolve must be a no-op")
	}
}

func TestConfirmations_ConcurrentRequestsAreIndependent(t *testing.T) {
	confirmations := NewConfirmations()

	tokenA, doneA := confirmations.Request("a")
	tokenB, doneB := confirmations.Request("b")
	if tokenA == tokenB {
		t.Fatal("tokens must be unique")
	}

	confirmations.Resolve(tokenB, true)
	confirmations.Resolve(tokenA, false)

	if approved := <-doneA; approved {
		t.Fatal("request a must be refused")
	}
	if approved := <-doneB; !approved {
		t.Fatal("request b must be approved")
	}
}

func TestConfirmations_AwaitApproved(t *testing.T) {
	confirmations := NewConfirmations()

	go func() {
		// Wait until the request shows up in the table, then approve it.
		for {
			if confirmations.PendingCount() == 1 {
				break
			}
			time.Sleep(time.Millisecond)
		}
		for _, token := range confirmations.tokens() {
			confirmations.Resolve(token, true)
		}
	}()

	if !confirmations.Await(context.Background(), "Save template?") {
		t.Fatal("expected approval")
	}
}

func TestConfirmations_AwaitCancelled(t *testing.T) {
	confirmations := NewConfirmations()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if confirmations.Await(ctx, "Save template?") {
		t.Fatal("cancelled await must count as refusal")
	}
	if confirmations.PendingCount() != 0 {
		t.Fatal("cancelled request must be removed from the table")
	}
}
