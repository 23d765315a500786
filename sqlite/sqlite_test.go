package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rideaware/landing"
)

func mustOpenDB(t *testing.T) *DB {
	t.Helper()

	db := NewDB(filepath.Join(t.TempDir(), "landing.db"), zerolog.Nop())
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func seedNewsletter(t *testing.T, db *DB, subject, body string, sentAt time.Time) int {
	t.Helper()

	res, err := db.sqlDB.Exec("INSERT INTO newsletters (subject, body, sent_at) VALUES (?, ?, ?)", subject, body, sentAt)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	return int(id)
}

func countSubscribers(t *testing.T, db *DB, email string) int {
	t.Helper()

	var n int
	require.NoError(t, db.sqlDB.QueryRow("SELECT COUNT(*) FROM subscribers WHERE email = ?", email).Scan(&n))
	return n
}

func TestDB_OpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landing.db")

	db := NewDB(path, zerolog.Nop())
	require.NoError(t, db.Open())
	_, err := NewStore(db).AddSubscriber(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db = NewDB(path, zerolog.Nop())
	require.NoError(t, db.Open())
	defer db.Close()

	var n int
	require.NoError(t, db.sqlDB.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&n))
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, countSubscribers(t, db, "a@x.com"))
}

func TestDB_OpenLogsToLogger(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "landing.db")

	db := NewDB(path, zerolog.New(&buf))
	require.NoError(t, db.Open())
	require.NoError(t, db.Close())

	assert.Contains(t, buf.String(), `"db":"sqlite"`)
	assert.Contains(t, buf.String(), `"applied":3`)
	assert.Contains(t, buf.String(), "Database schema is up to date")

	buf.Reset()
	db = NewDB(path, zerolog.New(&buf))
	require.NoError(t, db.Open())
	defer db.Close()
	assert.Contains(t, buf.String(), `"applied":0`)
}

func TestDB_OpenRequiresPath(t *testing.T) {
	assert.Error(t, NewDB("", zerolog.Nop()).Open())
}

func TestSubscriberService(t *testing.T) {
	ctx := context.Background()

	t.Run("add then duplicate", func(t *testing.T) {
		db := mustOpenDB(t)
		s := NewStore(db)

		sub, err := s.AddSubscriber(ctx, "a@x.com")
		require.NoError(t, err)
		assert.NotZero(t, sub.ID)
		assert.Equal(t, "a@x.com", sub.Email)

		_, err = s.AddSubscriber(ctx, "a@x.com")
		require.Error(t, err)
		assert.Equal(t, landing.ErrConflict, landing.ErrorCode(err))
		assert.Equal(t, 1, countSubscribers(t, db, "a@x.com"))
	})

	t.Run("email match is exact", func(t *testing.T) {
		db := mustOpenDB(t)
		s := NewStore(db)

		_, err := s.AddSubscriber(ctx, "a@x.com")
		require.NoError(t, err)
		_, err = s.AddSubscriber(ctx, "A@x.com")
		require.NoError(t, err)
	})

	t.Run("remove unknown email", func(t *testing.T) {
		db := mustOpenDB(t)
		s := NewStore(db)

		_, err := s.AddSubscriber(ctx, "b@x.com")
		require.NoError(t, err)

		err = s.RemoveSubscriber(ctx, "a@x.com")
		assert.Equal(t, landing.ErrNotFound, landing.ErrorCode(err))
		assert.Equal(t, 1, countSubscribers(t, db, "b@x.com"))
	})

	t.Run("subscribe then unsubscribe twice", func(t *testing.T) {
		db := mustOpenDB(t)
		s := NewStore(db)

		_, err := s.AddSubscriber(ctx, "a@x.com")
		require.NoError(t, err)
		require.NoError(t, s.RemoveSubscriber(ctx, "a@x.com"))
		assert.Equal(t, 0, countSubscribers(t, db, "a@x.com"))

		err = s.RemoveSubscriber(ctx, "a@x.com")
		assert.Equal(t, landing.ErrNotFound, landing.ErrorCode(err))
	})

	t.Run("concurrent double submit", func(t *testing.T) {
		db := mustOpenDB(t)
		s := NewStore(db)

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			conflicts int
		)
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := s.AddSubscriber(ctx, "race@x.com"); landing.ErrorCode(err) == landing.ErrConflict {
					mu.Lock()
					conflicts++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 4, conflicts)
		assert.Equal(t, 1, countSubscribers(t, db, "race@x.com"))
	})
}

func TestNewsletterService(t *testing.T) {
	ctx := context.Background()
	db := mustOpenDB(t)
	s := NewStore(db)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	oldest := seedNewsletter(t, db, "March", "<p>m</p>", base)
	newest := seedNewsletter(t, db, "May", "<p>y</p>", base.AddDate(0, 2, 0))
	middle := seedNewsletter(t, db, "April", "<p>a</p>", base.AddDate(0, 1, 0))

	newsletters, err := s.ListNewsletters(ctx)
	require.NoError(t, err)
	require.Len(t, newsletters, 3)
	assert.Equal(t, []int{newest, middle, oldest}, []int{newsletters[0].ID, newsletters[1].ID, newsletters[2].ID})

	n, err := s.GetNewsletter(ctx, middle)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "April", n.Subject)
	assert.Equal(t, "<p>a</p>", n.Body)
	assert.True(t, base.AddDate(0, 1, 0).Equal(n.SentAt))

	n, err = s.GetNewsletter(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, n)
}

func TestNewsletterService_Empty(t *testing.T) {
	newsletters, err := NewStore(mustOpenDB(t)).ListNewsletters(context.Background())
	require.NoError(t, err)
	assert.Empty(t, newsletters)
}

func TestContactService(t *testing.T) {
	db := mustOpenDB(t)

	m := &landing.ContactMessage{
		Name:    "Jane",
		Email:   "jane@x.com",
		Subject: "general",
		Message: "Hello there, this is a question.",
	}
	require.NoError(t, NewStore(db).AddContactMessage(context.Background(), m))
	assert.NotZero(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())

	var name string
	require.NoError(t, db.sqlDB.QueryRow("SELECT name FROM contact_messages WHERE id = ?", m.ID).Scan(&name))
	assert.Equal(t, "Jane", name)
}
