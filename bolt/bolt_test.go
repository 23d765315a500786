package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rideaware/landing"
)

func mustOpenDB(t *testing.T) *DB {
	t.Helper()

	db := NewDB(filepath.Join(t.TempDir(), "landing.bolt"))
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func countSubscribers(t *testing.T, db *DB) int {
	t.Helper()

	n, err := db.stormDB.Count(&landing.Subscriber{})
	require.NoError(t, err)
	return n
}

func TestSubscriberService(t *testing.T) {
	ctx := context.Background()
	db := mustOpenDB(t)
	s := NewStore(db)

	sub, err := s.AddSubscriber(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotZero(t, sub.ID)

	_, err = s.AddSubscriber(ctx, "a@x.com")
	assert.Equal(t, landing.ErrConflict, landing.ErrorCode(err))
	assert.Equal(t, 1, countSubscribers(t, db))

	err = s.RemoveSubscriber(ctx, "nobody@x.com")
	assert.Equal(t, landing.ErrNotFound, landing.ErrorCode(err))
	assert.Equal(t, 1, countSubscribers(t, db))

	require.NoError(t, s.RemoveSubscriber(ctx, "a@x.com"))
	assert.Equal(t, 0, countSubscribers(t, db))

	err = s.RemoveSubscriber(ctx, "a@x.com")
	assert.Equal(t, landing.ErrNotFound, landing.ErrorCode(err))

	// the address can subscribe again once removed
	_, err = s.AddSubscriber(ctx, "a@x.com")
	assert.NoError(t, err)
}

func TestNewsletterService(t *testing.T) {
	ctx := context.Background()
	db := mustOpenDB(t)
	s := NewStore(db)

	newsletters, err := s.ListNewsletters(ctx)
	require.NoError(t, err)
	assert.Empty(t, newsletters)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	seeded := []*landing.Newsletter{
		{Subject: "March", Body: "<p>m</p>", SentAt: base},
		{Subject: "May", Body: "<p>y</p>", SentAt: base.AddDate(0, 2, 0)},
		{Subject: "April", Body: "<p>a</p>", SentAt: base.AddDate(0, 1, 0)},
	}
	for _, n := range seeded {
		require.NoError(t, db.stormDB.Save(n))
	}

	newsletters, err = s.ListNewsletters(ctx)
	require.NoError(t, err)
	require.Len(t, newsletters, 3)
	assert.Equal(t, "May", newsletters[0].Subject)
	assert.Equal(t, "April", newsletters[1].Subject)
	assert.Equal(t, "March", newsletters[2].Subject)

	n, err := s.GetNewsletter(ctx, seeded[2].ID)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "April", n.Subject)
	assert.Equal(t, "<p>a</p>", n.Body)
	assert.True(t, seeded[2].SentAt.Equal(n.SentAt))

	n, err = s.GetNewsletter(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, n)
}

func TestContactService(t *testing.T) {
	db := mustOpenDB(t)

	m := &landing.ContactMessage{Name: "Jane", Email: "jane@x.com", Subject: "support", Message: "The app crashes when I open it."}
	require.NoError(t, NewStore(db).AddContactMessage(context.Background(), m))
	assert.NotZero(t, m.ID)

	var got landing.ContactMessage
	require.NoError(t, db.stormDB.One("ID", m.ID, &got))
	assert.Equal(t, "Jane", got.Name)
}

func TestDB_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landing.bolt")

	db := NewDB(path)
	require.NoError(t, db.Open())
	_, err := NewStore(db).AddSubscriber(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db = NewDB(path)
	require.NoError(t, db.Open())
	defer db.Close()
	assert.Equal(t, 1, countSubscribers(t, db))
}
