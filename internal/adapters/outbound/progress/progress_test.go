package progress_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/grammarops/grammarops/internal/adapters/outbound/progress"
	"github.com/grammarops/grammarops/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNew_DisabledIsNoop(t *testing.T) {
	assert.IsType(t, domain.NoopProgress{}, progress.New(false))
}

func TestIsInteractive_FileIsNotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	assert.False(t, progress.IsInteractive(f))
}

func TestManager_DrawsToWriter(t *testing.T) {
	var buf bytes.Buffer
	m := progress.NewWithWriter(&buf)

	task := m.StartTask("Auditing", 3)
	task.Increment(1)
	task.Increment(2)
	task.Complete()
	m.Close()

	assert.Contains(t, buf.String(), "Auditing")
}
