package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestBoltArchive returns a new archive in a temporary path.
func newTestBoltArchive() (*boltBookArchive, error) {
	f, err := os.CreateTemp("", "tmp.bolt.db-")
	if err != nil {
		return nil, err
	}
	f.Close()
	testConfig := &Config{
		BoltDB: BoltDBConfig{
			FilePath:   f.Name(),
			Timeout:    5 * time.Second,
			BucketName: "test.books",
		},
	}

	client, err := GetBoltDBClient(testConfig)
	if err != nil {
		os.Remove(f.Name())
		return nil, err
	}
	return NewBoltBookArchive(zap.NewNop(), &testConfig.BoltDB, client), nil
}

// closeTestBoltArchive closes the temporary archive and removes the underlying data file.
func (ba *boltBookArchive) closeTestBoltArchive() error {
	defer os.Remove(ba.config.FilePath)
	return ba.Close()
}

func TestBoltArchive(t *testing.T) {
	ba, err := newTestBoltArchive()
	require.NoError(t, err, "failed in creating a test bolt archive")
	defer ba.closeTestBoltArchive()

	book := Book{ID: "b:0", Name: "Bolt test book", PageCount: 10, ReadPage: 10, Finished: true}

	t.Run("put book", func(t *testing.T) {
		require.NoError(t, ba.Put(context.TODO(), book))
		stored, err := ba.GetOne(context.TODO(), "b:0")
		assert.NoError(t, err)
		assert.Equal(t, book, stored)
	})

	t.Run("replace book", func(t *testing.T) {
		book.Name = "Bolt test book updated"
		require.NoError(t, ba.Put(context.TODO(), book))
		require.NoError(t, ba.Put(context.TODO(), Book{ID: "b:1", Name: "Second"}))
		books, err := ba.GetAll(context.TODO())
		assert.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "Bolt test book updated", books[0].Name)
		assert.Equal(t, "b:1", books[1].ID)
	})

	t.Run("delete book", func(t *testing.T) {
		require.NoError(t, ba.Delete(context.TODO(), "b:0"))
		_, err := ba.GetOne(context.TODO(), "b:0")
		assert.ErrorIs(t, err, ErrBookNotFound)
		assert.NoError(t, ba.Delete(context.TODO(), "b:0"))
	})
}
