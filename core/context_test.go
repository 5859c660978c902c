package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuppressHeaderDefault(t *testing.T) {
	assert.False(t, shouldSuppressHeader(context.Background()))
}

func TestSuppressHeaderSet(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	assert.True(t, shouldSuppressHeader(ctx))
}

func TestSuppressHeaderLeavesParentAlone(t *testing.T) {
	parent := context.Background()
	_ = WithSuppressHeader(parent)
	assert.False(t, shouldSuppressHeader(parent), "deriving a context must not mutate its parent")
}

func TestSuppressHeaderIgnoresWrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), suppressHeaderKey, "yes")
	assert.False(t, shouldSuppressHeader(ctx), "non-bool values read as false")
}

func TestSuppressHeaderConcurrentReads(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, shouldSuppressHeader(ctx))
		}()
	}
	wg.Wait()
}
