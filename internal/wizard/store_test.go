package wizard

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStoreStartAndGet(t *testing.T) {
	st := NewStore()
	s := st.Start(false)
	require.NotEmpty(t, s.ID)
	require.Equal(t, StepVehicleType, s.Step)

	got, ok := st.Get(s.ID)
	require.True(t, ok)
	require.Equal(t, s.ID, got.ID)

	_, ok = st.Get("no-existe")
	require.False(t, ok)

	other := st.Start(true)
	require.NotEqual(t, s.ID, other.ID)
}

func TestStoreUpdate(t *testing.T) {
	st := NewStore()
	s := st.Start(false)

	updated, ok, err := st.Update(s.ID, func(s *Session) error {
		return s.SelectVehicleType("car")
	})
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "car", updated.Draft.VehicleTypeID)

	boom := errors.New("boom")
	_, ok, err = st.Update(s.ID, func(*Session) error { return boom })
	require.True(t, ok, "session survives a failed update")
	require.ErrorIs(t, err, boom)

	_, ok, err = st.Update("no-existe", func(*Session) error { return nil })
	require.False(t, ok)
	require.NoError(t, err)
}

func TestStoreHandsOutSnapshots(t *testing.T) {
	st := NewStore()
	s := st.Start(false)

	// Mutating a snapshot never touches the stored session.
	s.Step = StepConfirm
	s.Draft.VehicleTypeID = "suv"
	got, ok := st.Get(s.ID)
	require.True(t, ok)
	require.Equal(t, StepVehicleType, got.Step)
	require.Empty(t, got.Draft.VehicleTypeID)

	got.Draft.Client.Plate = "ABC-123"
	again, _ := st.Get(s.ID)
	require.Empty(t, again.Draft.Client.Plate)
}

func TestStoreConcurrentReadsAndWrites(t *testing.T) {
	st := NewStore()
	s := st.Start(false)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			st.Update(s.ID, func(s *Session) error {
				return s.SelectDate(fmt.Sprintf("2026-10-%02d", i%28+1))
			})
		}(i)
		go func() {
			defer wg.Done()
			if snap, ok := st.Get(s.ID); ok {
				snap.Complete()
				snap.Segments()
			}
		}()
	}
	wg.Wait()

	snap, ok := st.Get(s.ID)
	require.True(t, ok)
	require.NotEmpty(t, snap.Draft.Date)
}

func TestStoreDelete(t *testing.T) {
	st := NewStore()
	s := st.Start(false)
	st.Delete(s.ID)
	_, ok := st.Get(s.ID)
	require.False(t, ok)
}

func TestStoreSweep(t *testing.T) {
	st := NewStore()
	stale := st.Start(false)
	fresh := st.Start(false)

	_, ok, err := st.Update(stale.ID, func(s *Session) error {
		s.UpdatedAt = time.Now().UTC().Add(-3 * time.Hour)
		return nil
	})
	require.True(t, ok)
	require.NoError(t, err)

	removed := st.Sweep(2 * time.Hour)
	require.Equal(t, 1, removed)
	_, ok = st.Get(stale.ID)
	require.False(t, ok)
	_, ok = st.Get(fresh.ID)
	require.True(t, ok)
}
