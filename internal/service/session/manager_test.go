package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/session"
)

func newManager(t *testing.T, cfg session.Config) *session.Manager {
	t.Helper()
	m := session.NewManager(cfg, zerolog.Nop())
	t.Cleanup(m.Stop)
	return m
}

func TestManager_Create(t *testing.T) {
	m := newManager(t, session.Config{})

	defaults := models.RawFieldInputs{
		Name:         "Elena Rossi",
		ID:           "12345678",
		Degree:       "Computer Science",
		City:         "Trento",
		Language:     "it",
		ActivityType: "lectures",
		Course:       "Advanced Programming",
		Professor:    "Prof. Bianchi",
	}

	s := m.Create("device-1", defaults)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "device-1", s.DeviceID)
	assert.Equal(t, "Elena Rossi", s.Fields.Name)
	assert.Equal(t, "Trento", s.Fields.City)

	// зависящие от вида занятия поля не переживают сессию
	assert.Empty(t, s.Fields.ActivityType)
	assert.Empty(t, s.Fields.Course)
	assert.Empty(t, s.Fields.Professor)

	assert.False(t, s.State.HasSubmittedOnce())
	assert.False(t, s.Building)
}

func TestManager_Get(t *testing.T) {
	m := newManager(t, session.Config{})

	created := m.Create("", models.RawFieldInputs{})

	got, err := m.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestManager_MergeFields(t *testing.T) {
	m := newManager(t, session.Config{})
	s := m.Create("", models.RawFieldInputs{Name: "Elena Rossi"})

	course := "Advanced Programming"
	activity := "lectures"
	merged, err := m.MergeFields(s.ID, models.UpdateFieldsRequest{
		ActivityType: &activity,
		Course:       &course,
	})
	require.NoError(t, err)

	assert.Equal(t, "lectures", merged.Fields.ActivityType)
	assert.Equal(t, "Advanced Programming", merged.Fields.Course)
	assert.Equal(t, "Elena Rossi", merged.Fields.Name)

	empty := ""
	merged, err = m.MergeFields(s.ID, models.UpdateFieldsRequest{Course: &empty})
	require.NoError(t, err)
	assert.Empty(t, merged.Fields.Course)
	assert.Equal(t, "lectures", merged.Fields.ActivityType)

	_, err = m.MergeFields("missing", models.UpdateFieldsRequest{})
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestManager_MarkSubmitted(t *testing.T) {
	m := newManager(t, session.Config{})
	s := m.Create("", models.RawFieldInputs{})

	snap, flipped, err := m.MarkSubmitted(s.ID)
	require.NoError(t, err)
	assert.True(t, flipped)
	assert.True(t, snap.State.HasSubmittedOnce())

	snap, flipped, err = m.MarkSubmitted(s.ID)
	require.NoError(t, err)
	assert.False(t, flipped)
	assert.True(t, snap.State.HasSubmittedOnce())
}

func TestManager_MarkSubmittedMonotonicUnderConcurrency(t *testing.T) {
	m := newManager(t, session.Config{})
	s := m.Create("", models.RawFieldInputs{})

	var wg sync.WaitGroup
	flips := make(chan bool, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, flipped, err := m.MarkSubmitted(s.ID)
			if err == nil && flipped {
				flips <- true
			}
		}()
	}
	wg.Wait()
	close(flips)

	assert.Len(t, flips, 1)
}

func TestManager_BuildGuard(t *testing.T) {
	m := newManager(t, session.Config{})
	s := m.Create("", models.RawFieldInputs{})

	require.NoError(t, m.BeginBuild(s.ID))

	err := m.BeginBuild(s.ID)
	assert.ErrorIs(t, err, session.ErrBuildInFlight)

	m.EndBuild(s.ID)
	assert.NoError(t, m.BeginBuild(s.ID))
}

func TestManager_Expiry(t *testing.T) {
	m := newManager(t, session.Config{TTL: 10 * time.Millisecond, SweepInterval: time.Hour})
	s := m.Create("", models.RawFieldInputs{})

	time.Sleep(50 * time.Millisecond)

	_, err := m.Get(s.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestManager_Janitor(t *testing.T) {
	m := newManager(t, session.Config{TTL: 10 * time.Millisecond, SweepInterval: 10 * time.Millisecond})
	m.Start()

	m.Create("", models.RawFieldInputs{})
	m.Create("", models.RawFieldInputs{})

	assert.Eventually(t, func() bool {
		return m.Count() == 0
	}, time.Second, 20*time.Millisecond)
}
