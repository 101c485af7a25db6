package core

import (
	"fmt"
	"sync"
	"testing"
)

func TestChannelStoreConcurrentFirstAccess(t *testing.T) {
	s := NewChannelStore()

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("user%d", i)
			s.Subscribe("fresh", name, NewClient(name, name))
		}(i)
	}
	wg.Wait()

	// One channel object: every subscriber must be visible in it.
	if got := len(s.Members("fresh")); got != workers {
		t.Fatalf("expected %d members in single channel, got %d", workers, got)
	}
}

func TestChannelStoreHistoryIsSnapshot(t *testing.T) {
	s := NewChannelStore()
	s.AppendMessage("general", Message{Author: "alice", Body: "one", Role: RoleUser})

	history := s.History("general")
	history[0].Body = "mutated"

	if got := s.History("general")[0].Body; got != "one" {
		t.Fatalf("stored history was mutated through snapshot: %q", got)
	}
}

func TestChannelStoreAppendCreatesChannel(t *testing.T) {
	s := NewChannelStore()

	recipients := s.AppendMessage("brand-new", Message{Author: "alice", Body: "hi", Role: RoleUser})
	if len(recipients) != 0 {
		t.Fatalf("expected no recipients in empty channel, got %d", len(recipients))
	}
	if got := len(s.History("brand-new")); got != 1 {
		t.Fatalf("expected 1 message, got %d", got)
	}
}

func TestChannelStoreUnknownChannelHistoryEmpty(t *testing.T) {
	s := NewChannelStore()
	if got := s.History("ghost"); len(got) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(got))
	}
}

func TestChannelStoreClearAllKeepsMembers(t *testing.T) {
	s := NewChannelStore()
	alice := NewClient("a", "alice")
	s.Subscribe("general", "alice", alice)
	s.Subscribe("random", "alice", alice)
	s.AppendMessage("general", Message{Author: "alice", Body: "hi", Role: RoleUser})
	s.AppendMessage("random", Message{Author: "alice", Body: "yo", Role: RoleUser})

	s.ClearAll()

	if got := len(s.History("general")); got != 0 {
		t.Fatalf("general history not cleared: %d messages", got)
	}
	if got := len(s.History("random")); got != 0 {
		t.Fatalf("random history not cleared: %d messages", got)
	}
	if got := s.Members("general"); len(got) != 1 || got[0] != "alice" {
		t.Fatalf("general membership changed by ClearAll: %v", got)
	}
}

func TestChannelStoreRemoveMemberEverywhere(t *testing.T) {
	s := NewChannelStore()
	alice := NewClient("a", "alice")
	bob := NewClient("b", "bob")
	s.Subscribe("general", "alice", alice)
	s.Subscribe("random", "alice", alice)
	s.Subscribe("general", "bob", bob)

	s.RemoveMember("alice")

	if got := s.Members("general"); len(got) != 1 || got[0] != "bob" {
		t.Fatalf("unexpected general members: %v", got)
	}
	if got := s.Members("random"); len(got) != 0 {
		t.Fatalf("alice still in random: %v", got)
	}
}

func TestChannelStoreMultiMembershipAccumulates(t *testing.T) {
	s := NewChannelStore()
	alice := NewClient("a", "alice")

	s.Subscribe("general", "alice", alice)
	s.Subscribe("random", "alice", alice)

	// Joining a second channel must not leave the first.
	if got := s.Members("general"); len(got) != 1 {
		t.Fatalf("general membership lost after second join: %v", got)
	}
	if got := s.Members("random"); len(got) != 1 {
		t.Fatalf("random membership missing: %v", got)
	}
}
