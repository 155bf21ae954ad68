package otp

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_VerifyWithoutIssue(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	ok, err := store.Verify(context.Background(), "alice", "123456")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected no pending code for alice")
	}
}

func TestMemoryStore_IssueAndVerify(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	code, err := store.Issue(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}

	ok, err := store.Verify(context.Background(), "alice", code)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected code to verify")
	}
}

func TestMemoryStore_SingleUse(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	code, _ := store.Issue(context.Background(), "alice")
	if ok, _ := store.Verify(context.Background(), "alice", code); !ok {
		t.Fatalf("first verify should succeed")
	}
	if ok, _ := store.Verify(context.Background(), "alice", code); ok {
		t.Fatalf("replayed code should not verify")
	}
}

func TestMemoryStore_ReissueInvalidatesPrior(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	first, _ := store.Issue(context.Background(), "alice")
	second, _ := store.Issue(context.Background(), "alice")

	if first == second {
		t.Skip("codes collided; nothing to assert")
	}
	if ok, _ := store.Verify(context.Background(), "alice", first); ok {
		t.Fatalf("superseded code should not verify")
	}
	if ok, _ := store.Verify(context.Background(), "alice", second); !ok {
		t.Fatalf("latest code should verify")
	}
}

func TestMemoryStore_MismatchKeepsPending(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	code, _ := store.Issue(context.Background(), "alice")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	if ok, _ := store.Verify(context.Background(), "alice", wrong); ok {
		t.Fatalf("wrong code should not verify")
	}
	if ok, _ := store.Verify(context.Background(), "alice", code); !ok {
		t.Fatalf("correct code should still verify after a mismatch")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(5 * time.Minute)

	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	code, _ := store.Issue(context.Background(), "alice")

	current = current.Add(5*time.Minute + time.Second)
	if ok, _ := store.Verify(context.Background(), "alice", code); ok {
		t.Fatalf("expired code should not verify")
	}
	// The expired entry is dropped, not left behind.
	if ok, _ := store.Verify(context.Background(), "alice", code); ok {
		t.Fatalf("expired code should stay invalid")
	}
}

func TestMemoryStore_IndependentUsernames(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	aliceCode, _ := store.Issue(context.Background(), "alice")
	bobCode, _ := store.Issue(context.Background(), "bob")

	if ok, _ := store.Verify(context.Background(), "alice", aliceCode); !ok {
		t.Fatalf("alice's code should verify")
	}
	if ok, _ := store.Verify(context.Background(), "bob", bobCode); !ok {
		t.Fatalf("bob's code should verify after alice consumed hers")
	}
}

func TestMemoryStore_ConcurrentIssues(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	var wg sync.WaitGroup
	codes := make([]string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code, err := store.Issue(context.Background(), "user"+strconv.Itoa(i))
			if err != nil {
				t.Errorf("Issue failed: %v", err)
				return
			}
			codes[i] = code
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		ok, err := store.Verify(context.Background(), "user"+strconv.Itoa(i), codes[i])
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if !ok {
			t.Fatalf("code for user%d did not verify", i)
		}
	}
}

func TestRandomCode_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := RandomCode()
		if err != nil {
			t.Fatalf("RandomCode failed: %v", err)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}
	}
}
