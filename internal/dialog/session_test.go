package dialog

import (
	"sync"
	"testing"
)

func TestGetOrCreateMaterializesIdleSession(t *testing.T) {
	store := NewStore()
	sess := store.GetOrCreate(42)
	if sess.UserID != 42 || sess.Step != StepIdle || sess.Fields != (Fields{}) {
		t.Fatalf("unexpected fresh session: %+v", sess)
	}
	if store.InProgress(42) {
		t.Fatal("fresh session must not be in progress")
	}
}

func TestClearIsIndistinguishableFromAbsent(t *testing.T) {
	store := NewStore()
	store.Save(Session{UserID: 1, Step: StepYear, Fields: Fields{Brand: "Toyota", Model: "Camry"}})
	store.Clear(1)

	sess := store.GetOrCreate(1)
	if sess.Step != StepIdle || sess.Fields != (Fields{}) {
		t.Fatalf("cleared session differs from a fresh one: %+v", sess)
	}
	// Clearing twice is a no-op.
	store.Clear(1)
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	store := NewStore()
	store.Save(Session{UserID: 1, Step: StepModel, Fields: Fields{Brand: "Toyota"}})
	store.Save(Session{UserID: 2, Step: StepModel, Fields: Fields{Brand: "Lada"}})

	if got := store.GetOrCreate(1).Fields.Brand; got != "Toyota" {
		t.Fatalf("user 1 brand = %q", got)
	}
	if got := store.GetOrCreate(2).Fields.Brand; got != "Lada" {
		t.Fatalf("user 2 brand = %q", got)
	}

	store.Clear(1)
	if got := store.GetOrCreate(2).Fields.Brand; got != "Lada" {
		t.Fatalf("clearing user 1 affected user 2: brand = %q", got)
	}
}

func TestGetOrCreateReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Save(Session{UserID: 7, Step: StepBrand})

	sess := store.GetOrCreate(7)
	sess.Fields.Brand = "mutated"

	if got := store.GetOrCreate(7).Fields.Brand; got != "" {
		t.Fatalf("store observed caller mutation: brand = %q", got)
	}
}

func TestLockIsStableAcrossClear(t *testing.T) {
	store := NewStore()

	before := store.Lock(5)
	store.Save(Session{UserID: 5, Step: StepBrand})
	store.Clear(5)

	if after := store.Lock(5); after != before {
		t.Fatal("Clear replaced the user's lock; a holder could be bypassed")
	}
}

func TestLockSerializesSameUser(t *testing.T) {
	store := NewStore()
	const iterations = 200

	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				lock := store.Lock(9)
				lock.Lock()
				sess := store.GetOrCreate(9)
				step, fields, _ := Transition(sess.Step, sess.Fields, ButtonFindPart)
				sess.Step = step
				sess.Fields = fields
				store.Save(sess)
				store.Clear(9)
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	if store.InProgress(9) {
		t.Fatal("session left in progress after cleanup")
	}
}
