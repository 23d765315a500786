package mongo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rideaware/landing"
)

func TestClassify(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}

	assert.Equal(t, landing.ErrConflict, landing.ErrorCode(classify("op", dup)))
	assert.Equal(t, landing.ErrUnavailable, landing.ErrorCode(classify("op", context.DeadlineExceeded)))
	assert.Equal(t, landing.ErrInternal, landing.ErrorCode(classify("op", errors.New("boom"))))
}

// mustOpenDB connects to MONGO_TEST_URI and skips otherwise.
func mustOpenDB(t *testing.T) *DB {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	stale := NewDB(uri, "landing_test", 0)
	require.NoError(t, stale.Open())
	require.NoError(t, stale.db.Drop(context.Background()))
	require.NoError(t, stale.Close())

	db := NewDB(uri, "landing_test", 0)
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		_ = db.db.Drop(context.Background())
		_ = db.Close()
	})

	return db
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	db := mustOpenDB(t)
	s := NewStore(db)

	_, err := s.AddSubscriber(ctx, "a@x.com")
	require.NoError(t, err)
	_, err = s.AddSubscriber(ctx, "a@x.com")
	assert.Equal(t, landing.ErrConflict, landing.ErrorCode(err))

	require.NoError(t, s.RemoveSubscriber(ctx, "a@x.com"))
	assert.Equal(t, landing.ErrNotFound, landing.ErrorCode(s.RemoveSubscriber(ctx, "a@x.com")))

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, subject := range []string{"March", "April", "May"} {
		_, err := db.db.Collection(newslettersCollection).InsertOne(ctx, landing.Newsletter{
			ID:      i + 1,
			Subject: subject,
			Body:    "<p>" + subject + "</p>",
			SentAt:  base.AddDate(0, i, 0),
		})
		require.NoError(t, err)
	}

	newsletters, err := s.ListNewsletters(ctx)
	require.NoError(t, err)
	require.Len(t, newsletters, 3)
	assert.Equal(t, "May", newsletters[0].Subject)
	assert.Equal(t, "March", newsletters[2].Subject)

	n, err := s.GetNewsletter(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "April", n.Subject)

	n, err = s.GetNewsletter(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, n)

	m := &landing.ContactMessage{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "support",
		Message: "When does the Android app ship?",
	}
	require.NoError(t, s.AddContactMessage(ctx, m))
	assert.NotZero(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())
}
