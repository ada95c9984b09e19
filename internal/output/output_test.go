package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_Status_PrintsIconAndMessage(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a status message
	w.Status("🔍", "Loading index...")

	// Then: output contains icon and message
	assert.Equal(t, "🔍 Loading index...\n", buf.String())
}

func TestWriter_Status_NoIconIndents(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Status("", "detail")

	assert.Equal(t, "   detail\n", buf.String())
}

func TestWriter_Icons(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
		want  string
	}{
		{"success", func(w *Writer) { w.Successf("built %d docs", 20) }, "✅ built 20 docs"},
		{"warning", func(w *Writer) { w.Warningf("%s missing", "footer.json") }, "⚠️  footer.json missing"},
		{"error", func(w *Writer) { w.Errorf("failed: %s", "boom") }, "❌ failed: boom"},
		{"statusf", func(w *Writer) { w.Statusf("📦", "%d files", 2) }, "📦 2 files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.write(New(buf))
			assert.Equal(t, tt.want+"\n", buf.String())
		})
	}
}

func TestWriter_Code_IndentsEachLine(t *testing.T) {
	// Given: a multi-line snippet
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing it as code
	w.Code("wiki build\nwiki search")

	// Then: every line is indented and the block is padded
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "  wiki build", lines[1])
	assert.Equal(t, "  wiki search", lines[2])
}

func TestWriter_KeyValues_AlignsKeys(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).KeyValues([]Pair{
		{Key: "Documents", Value: "20"},
		{Key: "Index", Value: "4.1 kB"},
	})

	assert.Equal(t, "   Documents  20\n   Index      4.1 kB\n", buf.String())
}

func TestSize(t *testing.T) {
	assert.Equal(t, "0 B", Size(0))
	assert.Equal(t, "0 B", Size(-5))
	assert.Equal(t, "512 B", Size(512))
	assert.Equal(t, "4.1 kB", Size(4096))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1 document", Count(1, "document"))
	assert.Equal(t, "0 documents", Count(0, "document"))
	assert.Equal(t, "1,204 documents", Count(1204, "document"))
}
