package model

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"
)

func TestEmptyModel(t *testing.T) {
	m := New(3, 2)
	if m.Len() != 0 {
		t.Errorf("len = %v, want 0", m.Len())
	}
	if _, _, ok := m.Lookup(0, 0); ok {
		t.Error("empty model holds a transition")
	}
	if _, err := m.Sample(rand.New(rand.NewSource(1))); !errors.Is(err,
		ErrEmpty) {
		t.Errorf("sample error = %v, want %v", err, ErrEmpty)
	}
}

func TestUpdateOverwrites(t *testing.T) {
	m := New(3, 2)

	if err := m.Update(1, 1, 0.5, 2); err != nil {
		t.Fatal(err)
	}
	if err := m.Update(1, 1, -1, 0); err != nil {
		t.Fatal(err)
	}
	if err := m.Update(0, 0, 1, 1); err != nil {
		t.Fatal(err)
	}

	r, next, ok := m.Lookup(1, 1)
	if !ok || r != -1 || next != 0 {
		t.Errorf("lookup(1, 1) = (%v, %v, %v), want (-1, 0, true)", r, next,
			ok)
	}
	if m.Len() != 2 {
		t.Errorf("len = %v, want 2", m.Len())
	}
	if m.keys[0] != (Key{1, 1}) || m.keys[1] != (Key{0, 0}) {
		t.Errorf("keys = %v, want first-seen order", m.keys)
	}
}

func TestUpdateOutOfRange(t *testing.T) {
	m := New(3, 2)

	for _, c := range [][3]int{{3, 0, 0}, {0, 2, 0}, {0, 0, 3}, {-1, 0, 0}} {
		if err := m.Update(c[0], c[1], 0, c[2]); err == nil {
			t.Errorf("update%v: expected an error", c)
		}
	}
	if m.Len() != 0 {
		t.Error("failed updates changed the model")
	}
}

func TestPrepopulated(t *testing.T) {
	states, actions := 54, 4
	m := NewPrepopulated(states, actions)

	if m.Len() != states*actions {
		t.Fatalf("len = %v, want %v", m.Len(), states*actions)
	}
	for s := 0; s < states; s++ {
		for a := 0; a < actions; a++ {
			r, next, ok := m.Lookup(s, a)
			if !ok || r != 0 || next != s {
				t.Fatalf("lookup(%v, %v) = (%v, %v, %v), want a self-loop",
					s, a, r, next, ok)
			}
		}
	}

	// Overwriting a prepopulated pair must not add a key
	if err := m.Update(5, 3, 1, 6); err != nil {
		t.Fatal(err)
	}
	if m.Len() != states*actions {
		t.Errorf("len after update = %v, want %v", m.Len(), states*actions)
	}
}

func TestSampleOnlyKnownPairs(t *testing.T) {
	m := New(10, 4)
	known := map[Key]bool{{2, 1}: true, {7, 3}: true, {0, 0}: true}
	for k := range known {
		if err := m.Update(k.State, k.Action, 0, 0); err != nil {
			t.Fatal(err)
		}
	}

	rng := rand.New(rand.NewSource(11))
	seen := make(map[Key]int)
	for i := 0; i < 600; i++ {
		k, err := m.Sample(rng)
		if err != nil {
			t.Fatal(err)
		}
		if !known[k] {
			t.Fatalf("sampled unknown pair %v", k)
		}
		seen[k]++
	}
	for k := range known {
		if seen[k] < 100 {
			t.Errorf("pair %v sampled %d of 600 times", k, seen[k])
		}
	}
}
