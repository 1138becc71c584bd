package store

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"projectboard/internal/domain/models/board"
)

// TestStoreProperties checks notification invariants over generated call sequences
func TestStoreProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: snapshot length tracks the number of adds, one notification each
	properties.Property("snapshot length equals add count", prop.ForAll(
		func(n int) bool {
			st := New()
			var last []board.Project
			calls := 0
			st.Subscribe(func(p []board.Project) {
				calls++
				last = p
				// Mutating the received copy must never leak into the store
				for i := range p {
					p[i].Title = "mutated"
				}
			})

			for i := 0; i < n; i++ {
				st.AddProject("title", "description", i+1)
			}

			if calls != n || len(last) != n || st.Len() != n {
				return false
			}
			for _, p := range st.Snapshot() {
				if p.Title != "title" {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 40),
	))

	// Property: moves to unknown ids never notify or change state
	properties.Property("unknown move is a no-op", prop.ForAll(
		func(n int, id string) bool {
			st := New()
			for i := 0; i < n; i++ {
				st.AddProject("title", "description", 1)
			}
			before := st.Snapshot()

			calls := 0
			st.Subscribe(func([]board.Project) { calls++ })
			if st.MoveProject("unknown-"+id, board.StatusFinished) {
				return false
			}

			after := st.Snapshot()
			if calls != 0 || len(after) != len(before) {
				return false
			}
			for i := range before {
				if before[i] != after[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 10),
		gen.AlphaString(),
	))

	// Property: repeating a move notifies exactly once
	properties.Property("repeated move is idempotent", prop.ForAll(
		func(repeats int) bool {
			st := New()
			p := st.AddProject("title", "description", 1)

			calls := 0
			st.Subscribe(func([]board.Project) { calls++ })
			for i := 0; i < repeats; i++ {
				st.MoveProject(p.ID, board.StatusFinished)
			}
			return calls == 1
		},
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}
