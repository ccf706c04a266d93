package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSetVerboseRaisesLevel(t *testing.T) {
	SetVerbose(true)
	assert.Equal(t, zap.DebugLevel, level.Level())

	SetVerbose(false)
	assert.Equal(t, zap.InfoLevel, level.Level())
}

func TestDebugfAndInfofDoNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		Debugf("patched jump at %d -> %d", 3, 9)
		Infof("compiled %d nodes", 12)
	})
}
