package engine

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ybdev/birthdayd/internal/store"
)

type dispatchCall struct {
	FullName  string
	DaysUntil int
}

// recordingDispatcher captures every dispatch for assertions.
type recordingDispatcher struct {
	calls []dispatchCall
}

func (d *recordingDispatcher) Dispatch(_ context.Context, fullName string, daysUntil int) {
	d.calls = append(d.calls, dispatchCall{fullName, daysUntil})
}

// panickyDispatcher simulates a dispatcher implementation gone wrong.
type panickyDispatcher struct{}

func (panickyDispatcher) Dispatch(context.Context, string, int) {
	panic("transport exploded")
}

func testEngine(t *testing.T, d Dispatcher) (*Engine, *store.DB) {
	t.Helper()
	db, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, d, zerolog.Nop()), db
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestProjectDate(t *testing.T) {
	tests := []struct {
		name       string
		ref        time.Time
		daysBefore int
		want       time.Time
	}{
		{"leap year boundary", at(2024, time.February, 27, 0), 2, at(2024, time.February, 29, 0)},
		{"non-leap rollover", at(2023, time.February, 27, 0), 2, at(2023, time.March, 1, 0)},
		{"year end", at(2023, time.December, 31, 0), 1, at(2024, time.January, 1, 0)},
		{"zero offset", at(2025, time.March, 10, 0), 0, at(2025, time.March, 10, 0)},
		{"negative offset", at(2024, time.March, 1, 0), -1, at(2024, time.February, 29, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectDate(tt.ref, tt.daysBefore))
		})
	}
}

func TestRunTickDispatchesMatch(t *testing.T) {
	rec := &recordingDispatcher{}
	eng, db := testEngine(t, rec)

	_, err := db.CreateRule(7, 9)
	require.NoError(t, err)
	_, err = db.CreateFriend("Ada", at(2025, time.March, 10, 0))
	require.NoError(t, err)

	eng.RunTick(context.Background(), at(2025, time.March, 3, 9))

	require.Len(t, rec.calls, 1)
	assert.Equal(t, dispatchCall{"Ada", 7}, rec.calls[0])
}

func TestRunTickWrongHour(t *testing.T) {
	rec := &recordingDispatcher{}
	eng, db := testEngine(t, rec)

	_, err := db.CreateRule(7, 9)
	require.NoError(t, err)
	_, err = db.CreateFriend("Ada", at(2025, time.March, 10, 0))
	require.NoError(t, err)

	eng.RunTick(context.Background(), at(2025, time.March, 3, 10))

	assert.Empty(t, rec.calls)
}

func TestRunTickIgnoresBirthYear(t *testing.T) {
	rec := &recordingDispatcher{}
	eng, db := testEngine(t, rec)

	_, err := db.CreateRule(0, 9)
	require.NoError(t, err)
	_, err = db.CreateFriend("Grace", at(1906, time.December, 9, 0))
	require.NoError(t, err)

	eng.RunTick(context.Background(), at(2025, time.December, 9, 9))

	require.Len(t, rec.calls, 1)
	assert.Equal(t, dispatchCall{"Grace", 0}, rec.calls[0])
}

func TestRunTickMultipleRulesAndFriends(t *testing.T) {
	rec := &recordingDispatcher{}
	eng, db := testEngine(t, rec)

	// Two rules due at hour 9, one at another hour.
	_, err := db.CreateRule(0, 9)
	require.NoError(t, err)
	_, err = db.CreateRule(7, 9)
	require.NoError(t, err)
	_, err = db.CreateRule(1, 20)
	require.NoError(t, err)

	// Two friends share the day-of birthday, one matches the 7-day rule.
	_, err = db.CreateFriend("Ada", at(1990, time.March, 3, 0))
	require.NoError(t, err)
	_, err = db.CreateFriend("Grace", at(1985, time.March, 3, 0))
	require.NoError(t, err)
	_, err = db.CreateFriend("Alan", at(1990, time.March, 10, 0))
	require.NoError(t, err)

	eng.RunTick(context.Background(), at(2025, time.March, 3, 9))

	assert.ElementsMatch(t, []dispatchCall{
		{"Ada", 0},
		{"Grace", 0},
		{"Alan", 7},
	}, rec.calls)
}

func TestRunTickLeapDayTarget(t *testing.T) {
	rec := &recordingDispatcher{}
	eng, db := testEngine(t, rec)

	_, err := db.CreateRule(2, 9)
	require.NoError(t, err)
	_, err = db.CreateFriend("Leap", at(2000, time.February, 29, 0))
	require.NoError(t, err)

	eng.RunTick(context.Background(), at(2024, time.February, 27, 9))

	require.Len(t, rec.calls, 1)
	assert.Equal(t, dispatchCall{"Leap", 2}, rec.calls[0])
}

func TestRunTickEmptyStores(t *testing.T) {
	rec := &recordingDispatcher{}
	eng, _ := testEngine(t, rec)

	// No rules, no friends: a cheap no-op, not an error.
	eng.RunTick(context.Background(), at(2025, time.March, 3, 9))
	assert.Empty(t, rec.calls)
}

func TestRunTickContainsPanics(t *testing.T) {
	eng, db := testEngine(t, panickyDispatcher{})

	_, err := db.CreateRule(0, 9)
	require.NoError(t, err)
	_, err = db.CreateFriend("Ada", at(1990, time.March, 3, 0))
	require.NoError(t, err)

	// Must not propagate; the trigger would otherwise die.
	assert.NotPanics(t, func() {
		eng.RunTick(context.Background(), at(2025, time.March, 3, 9))
	})
}
