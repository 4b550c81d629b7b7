package locks_test

import (
	"sync"
	"testing"

	"github.com/KirkDiggler/rpg-combat-kata/internal/locks"
	"github.com/stretchr/testify/assert"
)

func TestKeyed_SerializesSameKey(t *testing.T) {
	keyed := locks.NewKeyed()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := keyed.Lock("hero")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, keyed.Len())
}

func TestKeyed_DuplicateKeysDoNotDeadlock(t *testing.T) {
	keyed := locks.NewKeyed()

	unlock := keyed.Lock("a", "a", "b")
	assert.Equal(t, 2, keyed.Len())
	unlock()

	assert.Equal(t, 0, keyed.Len())
}

func TestKeyed_OpposingOrderDoesNotDeadlock(t *testing.T) {
	keyed := locks.NewKeyed()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			keyed.Lock("a", "b")()
		}()
		go func() {
			defer wg.Done()
			keyed.Lock("b", "a")()
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, keyed.Len())
}
