package service

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressManager_NonInteractiveWriter(t *testing.T) {
	var buf bytes.Buffer
	pm := NewProgressManager()
	pm.SetWriter(&buf)

	assert.False(t, pm.IsInteractive())

	pm.Initialize(10)
	pm.Start()
	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			pm.Update(n, 10)
		}(i)
	}
	wg.Wait()
	pm.Complete(true)
	pm.Close()

	assert.Empty(t, buf.String(), "no bar is drawn on a non-terminal writer")
}

func TestProgressManager_InteractiveBar(t *testing.T) {
	var buf bytes.Buffer
	pm := NewProgressManager()
	pm.SetWriter(&buf)
	pm.interactive = true

	pm.Initialize(3)
	pm.Start()
	pm.Update(1, 3)
	pm.Update(3, 3)
	pm.Complete(true)

	assert.Contains(t, buf.String(), DefaultProgressDescription)
	assert.Nil(t, pm.progressBar)

	// completing twice is harmless
	pm.Complete(false)
}

func TestProgressManager_UpdateAfterComplete(t *testing.T) {
	var buf bytes.Buffer
	pm := NewProgressManager()
	pm.SetWriter(&buf)
	pm.interactive = true

	pm.Initialize(4)
	pm.Start()
	pm.Update(1, 4)
	pm.Complete(false)
	require.Nil(t, pm.progressBar)

	// a chunk still running after cancellation reports in late
	pm.Update(2, 4)
	assert.Nil(t, pm.progressBar, "late updates must not draw a new bar")

	// a new run starts over
	pm.Initialize(2)
	pm.Start()
	assert.NotNil(t, pm.progressBar)
	pm.Close()
}

func TestProgressManager_UpdateNeverMovesBackwards(t *testing.T) {
	var buf bytes.Buffer
	pm := NewProgressManager()
	pm.SetWriter(&buf)
	pm.interactive = true

	pm.Initialize(5)
	pm.Start()
	pm.Update(3, 5)
	pm.Update(2, 5)
	assert.Equal(t, 3, pm.processed)
	assert.Equal(t, int64(3), pm.progressBar.State().CurrentNum)

	pm.Update(4, 5)
	assert.Equal(t, 4, pm.processed)
	pm.Complete(true)
}
