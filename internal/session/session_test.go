// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package session

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/zetaloop/DSProject2-Calculator/internal/value"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDisplayModesExclusive(t *testing.T) {
	st := NewState()
	st.SetScientific(true)
	st.SetFraction(true)
	assert.False(t, st.UseScientific)
	assert.True(t, st.UseFraction)

	st.SetBase(Bin)
	assert.False(t, st.UseFraction)
	assert.Equal(t, 2, st.Base.Radix())

	st.SetScientific(true)
	assert.Equal(t, Dec, st.Base)

	st.SetFraction(false)
	assert.True(t, st.UseScientific, "switching a mode off leaves the others alone")
}

func TestCommit(t *testing.T) {
	st := NewState()
	st.PredictedAns = value.Real(9)
	st.Commit(value.Real(4))
	assert.Equal(t, value.Real(4), st.CurrentAns)
	assert.Equal(t, value.Real(4), st.PredictedAns, "the committed value replaces a stale preview")
	assert.True(t, st.ShowingAnswer)
}

func TestStateJSON(t *testing.T) {
	st := NewState()
	st.Memory = value.Number{Re: 1, Im: 2}
	st.SetBase(Hex)
	st.Angle = Deg

	data, err := json.Marshal(st)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"number_base":"Hex"`)
	assert.Contains(t, string(data), `"angle":"Deg"`)

	var got State
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *st, got)

	assert.Error(t, json.Unmarshal([]byte(`{"number_base":"Duo"}`), &got))
	assert.Error(t, json.Unmarshal([]byte(`{"angle":"Grad"}`), &got))
}

func TestParseLabels(t *testing.T) {
	b, ok := ParseBase("hex")
	assert.True(t, ok)
	assert.Equal(t, Hex, b)
	_, ok = ParseBase("duo")
	assert.False(t, ok)

	a, ok := ParseAngle("DEG")
	assert.True(t, ok)
	assert.Equal(t, Deg, a)
	assert.Equal(t, "Hyp", Hyp.String())
}

func TestRegistryPut(t *testing.T) {
	r := NewRegistry()
	s := r.Put(Snapshot{})

	_, err := uuid.Parse(s.ID())
	require.NoError(t, err, "an empty id is assigned a uuid")
	assert.False(t, s.Snapshot().UpdatedAt.IsZero())

	got, ok := r.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	fixed := r.Put(Snapshot{ID: "fixed", Expression: []string{"1", "|"}})
	assert.Equal(t, "fixed", fixed.ID())
	_, ok = r.Get("fixed")
	assert.True(t, ok)

	r.Delete(s.ID())
	_, ok = r.Get(s.ID())
	assert.False(t, ok)
}

func TestRegistryAdopt(t *testing.T) {
	r := NewRegistry()
	first := r.Adopt(Snapshot{ID: "x", Expression: []string{"1"}})
	second := r.Adopt(Snapshot{ID: "x", Expression: []string{"2"}})
	assert.Same(t, first, second)
	assert.Equal(t, []string{"1"}, second.Snapshot().Expression)
}

func TestSessionUpdate(t *testing.T) {
	s := NewRegistry().Put(Snapshot{})

	snap, err := s.Update(func(sn *Snapshot) error {
		sn.Expression = []string{"2", "|"}
		sn.State.Memory = value.Real(3)
		sn.ID = "hijack"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "|"}, snap.Expression)
	assert.NotEqual(t, "hijack", snap.ID, "id is fixed for the session's lifetime")

	boom := errors.New("boom")
	snap, err = s.Update(func(sn *Snapshot) error {
		sn.Expression = nil
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"2", "|"}, snap.Expression, "failed update is discarded")

	snap.Expression[0] = "9"
	assert.Equal(t, "2", s.Snapshot().Expression[0], "snapshots are copies")
}

func TestSessionConcurrentUpdates(t *testing.T) {
	r := NewRegistry()
	a, b := r.Put(Snapshot{}), r.Put(Snapshot{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, s := range []*Session{a, b} {
			wg.Add(1)
			go func(s *Session) {
				defer wg.Done()
				_, _ = s.Update(func(sn *Snapshot) error {
					sn.State.Memory.Re++
					return nil
				})
			}(s)
		}
	}
	wg.Wait()

	assert.Equal(t, 50.0, a.Snapshot().State.Memory.Re)
	assert.Equal(t, 50.0, b.Snapshot().State.Memory.Re)
}
