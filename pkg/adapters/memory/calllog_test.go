package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxflow/voxflow/pkg/domain"
)

func TestCallLog_NewestFirst(t *testing.T) {
	ctx := context.Background()
	l := NewCallLog(10)

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Append(ctx, domain.CallLog{
			ID: fmt.Sprintf("e%d", i),
			To: "+15550001111",
			At: time.Now(),
		}))
	}

	entries, err := l.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "e2", entries[0].ID)
	assert.Equal(t, "e0", entries[2].ID)
}

func TestCallLog_CapacityBound(t *testing.T) {
	ctx := context.Background()
	l := NewCallLog(2)

	for i := 0; i < 5; i++ {
		require.NoError(t, l.Append(ctx, domain.CallLog{ID: fmt.Sprintf("e%d", i)}))
	}

	entries, err := l.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e4", entries[0].ID)
	assert.Equal(t, "e3", entries[1].ID)
}

func TestCallLog_RecentLimit(t *testing.T) {
	ctx := context.Background()
	l := NewCallLog(10)
	for i := 0; i < 4; i++ {
		require.NoError(t, l.Append(ctx, domain.CallLog{ID: fmt.Sprintf("e%d", i)}))
	}

	entries, err := l.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = l.Recent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}
