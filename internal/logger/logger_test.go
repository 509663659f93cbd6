package logger

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponent(t *testing.T) {
	entry := WithComponent("refresh")
	require.NotNil(t, entry)
	assert.Equal(t, "refresh", entry.Data["component"])
}

func TestLoggerInit(t *testing.T) {
	require.NotNil(t, Logger)
	assert.Equal(t, os.Stdout, Logger.Out)
}

func TestSetLevel(t *testing.T) {
	orig := Logger.GetLevel()
	defer Logger.SetLevel(orig)

	tests := []struct {
		name  string
		input string
		ok    bool
		want  logrus.Level
	}{
		{"debug", "debug", true, logrus.DebugLevel},
		{"uppercase", "WARN", true, logrus.WarnLevel},
		{"padded", " error ", true, logrus.ErrorLevel},
		{"invalid keeps previous", "loud", false, logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, SetLevel(tt.input))
			assert.Equal(t, tt.want, Logger.GetLevel())
		})
	}
}
