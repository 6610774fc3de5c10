package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopProgress(t *testing.T) {
	var p Progress = NoopProgress{}
	task := p.StartTask("scanning", 10)
	assert.NotPanics(t, func() {
		task.Increment(3)
		task.Complete()
		p.Close()
	})
}

func TestBaseOf(t *testing.T) {
	assert.Equal(t, "Button.tsx", baseOf("src/components/Button.tsx"))
	assert.Equal(t, "Button", StripExt(baseOf("src/components/Button.tsx")))
}
