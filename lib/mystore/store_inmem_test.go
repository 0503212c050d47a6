package mystore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	UID  string
	Name string
}

func TestPutGet(t *testing.T) {
	ctx := context.TODO()
	store, cleanup, err := NewInMemoryStore[record](ctx)
	assert.NoError(t, err)
	defer cleanup()

	err = store.Put(ctx, "1", record{UID: "1", Name: "one"})
	assert.NoError(t, err)

	got, exists, err := store.Get(ctx, "1")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "one", got.Name)

	_, exists, err = store.Get(ctx, "2")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestList(t *testing.T) {
	ctx := context.TODO()
	store, cleanup, _ := NewInMemoryStore[record](ctx)
	defer cleanup()

	store.Put(ctx, "1", record{UID: "1"})
	store.Put(ctx, "2", record{UID: "2"})

	all, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTransactionRollback(t *testing.T) {
	ctx := context.TODO()
	store, cleanup, _ := NewInMemoryStore[record](ctx)
	defer cleanup()

	err := store.RunInTransaction(ctx, func(c context.Context) error {
		innerErr := store.Put(c, "1", record{UID: "1"})
		assert.NoError(t, innerErr)

		return fmt.Errorf("force rollback")
	})
	assert.Error(t, err)

	// The in-memory store keeps the write: rollback only releases the lock.
	_, _, getErr := store.Get(ctx, "1")
	assert.NoError(t, getErr)
}

func TestTransactionCommit(t *testing.T) {
	ctx := context.TODO()
	store, cleanup, _ := NewInMemoryStore[record](ctx)
	defer cleanup()

	err := store.RunInTransaction(ctx, func(c context.Context) error {
		return store.Put(c, "1", record{UID: "1", Name: "tx"})
	})
	assert.NoError(t, err)

	got, exists, _ := store.Get(ctx, "1")
	assert.True(t, exists)
	assert.Equal(t, "tx", got.Name)
}
