package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/coinboard/coinboard/internal/core/domain"
)

func TestGrantStore_PutAndCollision(t *testing.T) {
	s := NewGrantStore()

	if err := s.Put(&domain.Grant{Token: "t1", Amount: 5}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := s.Put(&domain.Grant{Token: "t1", Amount: 9}); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken on collision, got %v", err)
	}

	g, ok := s.Get("t1")
	if !ok || g.Amount != 5 {
		t.Fatalf("collision overwrote grant: %+v", g)
	}
}

func TestGrantStore_RemoveExactlyOnce(t *testing.T) {
	s := NewGrantStore()
	_ = s.Put(&domain.Grant{Token: "t1", Amount: 5})

	const attempts = 32
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := s.Remove("t1"); ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expected exactly 1 successful remove, got %d", wins)
	}
	if s.Len() != 0 {
		t.Fatalf("grant still present after removal")
	}
}

func TestGrantStore_AttachImage(t *testing.T) {
	s := NewGrantStore()
	_ = s.Put(&domain.Grant{Token: "t1", Amount: 5})

	if !s.AttachImage("t1", []byte("png")) {
		t.Fatalf("attach rejected for live grant")
	}
	g, _ := s.Get("t1")
	if string(g.Image) != "png" {
		t.Fatalf("image not stored")
	}

	s.Remove("t1")
	if s.AttachImage("t1", []byte("png")) {
		t.Fatalf("attach accepted for removed grant")
	}
}

func TestGrantStore_ListMintOrder(t *testing.T) {
	s := NewGrantStore()
	for _, token := range []string{"t1", "t2", "t3"} {
		_ = s.Put(&domain.Grant{Token: token})
	}
	s.Remove("t2")

	list := s.List()
	want := []string{"t1", "t3"}
	if len(list) != len(want) {
		t.Fatalf("expected %d grants, got %d", len(want), len(list))
	}
	for i, token := range want {
		if list[i].Token != token {
			t.Fatalf("position %d: expected %s, got %s", i, token, list[i].Token)
		}
	}
}
