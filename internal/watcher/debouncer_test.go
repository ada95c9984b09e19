package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveBatch(t *testing.T, d *Debouncer) []FileEvent {
	t.Helper()
	select {
	case batch := <-d.Output():
		return batch
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for batch")
		return nil
	}
}

func TestDebouncer_CoalescesRapidWrites(t *testing.T) {
	// Given: a debouncer with a short window
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	// When: the same file is written several times in a row
	for i := 0; i < 5; i++ {
		d.Add(FileEvent{Path: "repositories.json", Operation: OpModify, Timestamp: time.Now()})
	}

	// Then: one event comes out
	batch := receiveBatch(t, d)
	require.Len(t, batch, 1)
	assert.Equal(t, "repositories.json", batch[0].Path)
	assert.Equal(t, OpModify, batch[0].Operation)
}

func TestDebouncer_CoalescingRules(t *testing.T) {
	tests := []struct {
		name  string
		ops   []Operation
		want  Operation
		empty bool
	}{
		{name: "create then modify", ops: []Operation{OpCreate, OpModify}, want: OpCreate},
		{name: "create then delete", ops: []Operation{OpCreate, OpDelete}, empty: true},
		{name: "delete then create", ops: []Operation{OpDelete, OpCreate}, want: OpModify},
		{name: "modify then delete", ops: []Operation{OpModify, OpDelete}, want: OpDelete},
		{name: "modify then rename", ops: []Operation{OpModify, OpRename}, want: OpRename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDebouncer(20 * time.Millisecond)
			defer d.Stop()

			for _, op := range tt.ops {
				d.Add(FileEvent{Path: "awards.json", Operation: op, Timestamp: time.Now()})
			}

			if tt.empty {
				select {
				case batch := <-d.Output():
					t.Fatalf("expected no batch, got %v", batch)
				case <-time.After(100 * time.Millisecond):
				}
				return
			}

			batch := receiveBatch(t, d)
			require.Len(t, batch, 1)
			assert.Equal(t, tt.want, batch[0].Operation)
		})
	}
}

func TestDebouncer_BatchSortedByPath(t *testing.T) {
	// Given: events for several collections
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	// When: they arrive out of order
	d.Add(FileEvent{Path: "videos.json", Operation: OpModify})
	d.Add(FileEvent{Path: "about.json", Operation: OpModify})
	d.Add(FileEvent{Path: "fields.json", Operation: OpModify})

	// Then: the batch is ordered by path
	batch := receiveBatch(t, d)
	require.Len(t, batch, 3)
	assert.Equal(t, "about.json", batch[0].Path)
	assert.Equal(t, "fields.json", batch[1].Path)
	assert.Equal(t, "videos.json", batch[2].Path)
}

func TestDebouncer_StopClosesOutput(t *testing.T) {
	d := NewDebouncer(time.Hour)
	d.Add(FileEvent{Path: "about.json", Operation: OpModify})

	d.Stop()
	d.Stop()
	d.Add(FileEvent{Path: "about.json", Operation: OpModify})

	_, ok := <-d.Output()
	assert.False(t, ok)
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "CREATE", OpCreate.String())
	assert.Equal(t, "MODIFY", OpModify.String())
	assert.Equal(t, "DELETE", OpDelete.String())
	assert.Equal(t, "RENAME", OpRename.String())
	assert.Equal(t, "UNKNOWN", Operation(42).String())
}
