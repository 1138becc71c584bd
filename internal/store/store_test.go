package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"projectboard/internal/domain"
	"projectboard/internal/domain/models/board"
)

type StoreSuite struct {
	suite.Suite
	store     *Store
	snapshots [][]board.Project
}

func (s *StoreSuite) SetupTest() {
	seq := 0
	s.store = New(WithIDGenerator(func() string {
		seq++
		return fmt.Sprintf("p%d", seq)
	}))
	s.snapshots = nil
	s.store.AddListener(func(projects []board.Project) {
		s.snapshots = append(s.snapshots, projects)
	})
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

// TestScenario walks the add, move, repeat-move sequence from the board's contract.
func (s *StoreSuite) TestScenario() {
	project := s.store.AddProject("Build API", "REST service", 3)

	s.Require().Len(s.snapshots, 1)
	s.Require().Len(s.snapshots[0], 1)
	s.Equal(board.StatusActive, s.snapshots[0][0].Status)
	s.Equal(3, s.snapshots[0][0].People)
	s.Equal(project.ID, s.snapshots[0][0].ID)

	s.True(s.store.MoveProject(project.ID, board.StatusFinished))
	s.Require().Len(s.snapshots, 2)
	s.Require().Len(s.snapshots[1], 1)
	s.Equal(board.StatusFinished, s.snapshots[1][0].Status)

	s.False(s.store.MoveProject(project.ID, board.StatusFinished))
	s.Len(s.snapshots, 2)
}

func (s *StoreSuite) TestAddProject() {
	s.Run("assigns unique ids and active status", func() {
		a := s.store.AddProject("A", "first one", 1)
		b := s.store.AddProject("B", "second one", 2)

		s.NotEqual(a.ID, b.ID)
		s.Equal(board.StatusActive, a.Status)
		s.Equal(board.StatusActive, b.Status)
	})

	s.Run("keeps insertion order", func() {
		snapshot := s.store.Snapshot()
		s.Require().Len(snapshot, 2)
		s.Equal("A", snapshot[0].Title)
		s.Equal("B", snapshot[1].Title)
	})

	s.Run("does not validate input", func() {
		p := s.store.AddProject("", "", -4)
		s.Equal(-4, p.People)
		s.Equal(3, s.store.Len())
	})
}

func (s *StoreSuite) TestSnapshotsAreCopies() {
	s.store.AddProject("A", "first one", 1)
	s.Require().Len(s.snapshots, 1)

	s.snapshots[0][0].Title = "tampered"
	s.snapshots[0][0].Status = board.StatusFinished

	s.store.AddProject("B", "second one", 2)
	s.Require().Len(s.snapshots, 2)
	s.Equal("A", s.snapshots[1][0].Title)
	s.Equal(board.StatusActive, s.snapshots[1][0].Status)

	direct := s.store.Snapshot()
	direct[0].Title = "also tampered"
	s.Equal("A", s.store.Snapshot()[0].Title)
}

func (s *StoreSuite) TestEachListenerGetsOwnCopy() {
	var first, second []board.Project
	s.store.Subscribe(func(p []board.Project) { first = p })
	s.store.Subscribe(func(p []board.Project) { second = p })

	s.store.AddProject("A", "first one", 1)
	first[0].Title = "changed"

	s.Equal("A", second[0].Title)
}

func (s *StoreSuite) TestMoveProject() {
	s.Run("unknown id is a silent no-op", func() {
		s.store.AddProject("A", "first one", 1)
		before := s.store.Snapshot()
		calls := len(s.snapshots)

		s.False(s.store.MoveProject("missing", board.StatusFinished))
		s.Equal(calls, len(s.snapshots))
		s.Equal(before, s.store.Snapshot())
	})

	s.Run("same status does not notify", func() {
		p := s.store.Snapshot()[0]
		calls := len(s.snapshots)

		s.False(s.store.MoveProject(p.ID, board.StatusActive))
		s.Equal(calls, len(s.snapshots))
	})

	s.Run("changes only status", func() {
		p := s.store.Snapshot()[0]
		s.True(s.store.MoveProject(p.ID, board.StatusFinished))

		moved, ok := s.store.Project(p.ID)
		s.Require().True(ok)
		s.Equal(board.StatusFinished, moved.Status)
		s.Equal(p.Title, moved.Title)
		s.Equal(p.Description, moved.Description)
		s.Equal(p.People, moved.People)
	})

	s.Run("moves back", func() {
		p := s.store.Snapshot()[0]
		s.True(s.store.MoveProject(p.ID, board.StatusActive))
	})
}

func (s *StoreSuite) TestSubscriptions() {
	s.Run("unsubscribe stops notifications", func() {
		calls := 0
		sub := s.store.Subscribe(func([]board.Project) { calls++ })

		s.store.AddProject("A", "first one", 1)
		sub.Unsubscribe()
		sub.Unsubscribe()
		s.store.AddProject("B", "second one", 1)

		s.Equal(1, calls)
	})

	s.Run("duplicate registrations are notified separately", func() {
		calls := 0
		listener := func([]board.Project) { calls++ }
		a := s.store.Subscribe(listener)
		b := s.store.Subscribe(listener)
		defer a.Unsubscribe()
		defer b.Unsubscribe()

		s.store.AddProject("C", "third one", 1)
		s.Equal(2, calls)
	})

	s.Run("unsubscribe from inside a listener", func() {
		calls := 0
		var sub *Subscription
		sub = s.store.Subscribe(func([]board.Project) {
			calls++
			sub.Unsubscribe()
		})

		s.store.AddProject("D", "fourth one", 1)
		s.store.AddProject("E", "fifth one", 1)
		s.Equal(1, calls)
	})

	s.Run("listeners run in registration order", func() {
		var order []string
		a := s.store.Subscribe(func([]board.Project) { order = append(order, "a") })
		b := s.store.Subscribe(func([]board.Project) { order = append(order, "b") })
		defer a.Unsubscribe()
		defer b.Unsubscribe()

		s.store.AddProject("F", "sixth one", 1)
		s.Equal([]string{"a", "b"}, order)
	})

	s.Run("subscribe current returns snapshot", func() {
		var got [][]board.Project
		sub, current := s.store.SubscribeCurrent(func(p []board.Project) { got = append(got, p) })
		defer sub.Unsubscribe()

		s.Equal(s.store.Len(), len(current))
		s.store.AddProject("G", "seventh one", 1)
		s.Require().Len(got, 1)
		s.Equal(len(current)+1, len(got[0]))
	})
}

func (s *StoreSuite) TestHydrate() {
	s.Run("loads persisted projects without notifying", func() {
		st := New()
		calls := 0
		st.Subscribe(func([]board.Project) { calls++ })

		err := st.Hydrate([]board.Project{
			{ID: "x", Title: "X", People: 1, Status: board.StatusFinished},
			{ID: "y", Title: "Y", People: 2},
		})
		s.Require().NoError(err)
		s.Equal(0, calls)
		s.Equal(2, st.Len())

		s.True(st.MoveProject("y", board.StatusFinished))
		s.Equal(1, calls)
	})

	s.Run("rejects non-empty store", func() {
		s.store.AddProject("A", "first one", 1)
		err := s.store.Hydrate([]board.Project{{ID: "z"}})
		s.ErrorIs(err, domain.ErrConflict)
	})

	s.Run("rejects duplicate ids", func() {
		err := New().Hydrate([]board.Project{{ID: "dup"}, {ID: "dup"}})
		s.ErrorIs(err, domain.ErrConflict)
	})
}

func (s *StoreSuite) TestConcurrentMutations() {
	st := New()
	var mu sync.Mutex
	lengths := []int{}
	st.Subscribe(func(p []board.Project) {
		mu.Lock()
		lengths = append(lengths, len(p))
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.AddProject("T", "concurrent", 1)
		}()
	}
	wg.Wait()

	s.Equal(50, st.Len())
	s.Require().Len(lengths, 50)
	for i, n := range lengths {
		s.Equal(i+1, n, "snapshots must arrive in mutation order")
	}
}

func TestDefaultIsSingleton(t *testing.T) {
	a := Default()
	b := Default()
	if a != b {
		t.Fatal("Default returned different stores")
	}
}
