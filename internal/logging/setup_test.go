package logging

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelParsing(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, New(Config{Level: "DEBUG"}).GetLevel())
	assert.Equal(t, zerolog.WarnLevel, New(Config{Level: "warn"}).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New(Config{Level: "nonsense"}).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New(Config{}).GetLevel())
}

func TestNewWithFile_CreatesLogFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "logs", "stevedore.log")

	log, cleanup, err := NewWithFile(Config{
		Level:  "info",
		Format: "json",
		File: FileConfig{
			Enabled:    true,
			Path:       logPath,
			MaxSize:    1,
			MaxBackups: 1,
			MaxAge:     1,
		},
	})
	require.NoError(t, err)
	defer cleanup()

	log.Info().Msg("hello file")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}

func TestNewWithFile_Disabled(t *testing.T) {
	_, cleanup, err := NewWithFile(Config{Level: "info"})
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	cleanup()
}

func TestCtxWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := Logger{Logger: zerolog.New(&buf)}

	ctx := WithCtx(context.Background(), base)
	ctx = CtxWithFields(ctx, map[string]any{
		FieldLayer:   "usecase",
		FieldUseCase: "Pull",
	})
	ctx = CtxWithField(ctx, FieldImage, "app")

	log := FromCtx(ctx)
	log.Info().Msg("pulling")

	out := buf.String()
	assert.Contains(t, out, `"layer":"usecase"`)
	assert.Contains(t, out, `"usecase":"Pull"`)
	assert.Contains(t, out, `"image":"app"`)
}

func TestFromCtx_NoLogger(t *testing.T) {
	log := FromCtx(context.Background())
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}

func TestWrapErr(t *testing.T) {
	var buf bytes.Buffer
	log := Logger{Logger: zerolog.New(&buf)}
	cause := errors.New("boom")

	err := log.WrapErr(cause, "failed to pull image")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to pull image: boom", err.Error())
	assert.Contains(t, buf.String(), "failed to pull image")
}
