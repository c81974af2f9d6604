package engine

import (
	"sync"
	"testing"
)

func TestSequence_Next(t *testing.T) {
	s := NewSequence()

	id, seq := s.Next()
	if id != "00000001" || seq != 1 {
		t.Errorf("first Next() = (%q, %d), want (00000001, 1)", id, seq)
	}

	id, seq = s.Next()
	if id != "00000002" || seq != 2 {
		t.Errorf("second Next() = (%q, %d), want (00000002, 2)", id, seq)
	}
}

func TestSequence_Monotonic(t *testing.T) {
	s := NewSequence()

	var prevID string
	var prevSeq uint64
	for i := 0; i < 1000; i++ {
		id, seq := s.Next()
		if seq <= prevSeq {
			t.Fatalf("sequence not strictly increasing: %d after %d", seq, prevSeq)
		}
		if id <= prevID {
			t.Fatalf("id not lexicographically increasing: %q after %q", id, prevID)
		}
		prevID, prevSeq = id, seq
	}
}

func TestSequence_Reset(t *testing.T) {
	s := NewSequence()
	s.Next()
	s.Next()
	s.Reset()

	id, seq := s.Next()
	if id != "00000001" || seq != 1 {
		t.Errorf("Next() after Reset() = (%q, %d), want (00000001, 1)", id, seq)
	}
}

func TestSequence_NoDuplicatesUnderConcurrency(t *testing.T) {
	s := NewSequence()

	const workers = 8
	const perWorker = 500

	results := make(chan uint64, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, seq := s.Next()
				results <- seq
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[uint64]bool, workers*perWorker)
	for seq := range results {
		if seen[seq] {
			t.Fatalf("duplicate sequence issued: %d", seq)
		}
		seen[seq] = true
	}
}
