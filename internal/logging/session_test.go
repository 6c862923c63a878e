package logging

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSessionID_Format(t *testing.T) {
	id := sessionIDAt(time.Date(2025, 12, 17, 20, 51, 6, 0, time.UTC))

	assert.Regexp(t, regexp.MustCompile(`^20251217_205106_[0-9a-f]{4}$`), id)
	assert.Len(t, ShortSessionID(id), 4)
	assert.Equal(t, "ab", ShortSessionID("ab"))
}

func TestWithSession_AddsShortID(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf

	ctx := WithSession(WithContext(context.Background(), New(cfg)), "20251217_205106_a7b3")
	FromContext(ctx).Info().Msg("started")

	assert.Contains(t, buf.String(), `"session":"a7b3"`)
}

func TestRecoverPanic_RepanicsAfterLogging(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf
	ctx := WithContext(context.Background(), New(cfg))

	assert.PanicsWithValue(t, "boom", func() {
		defer RecoverPanic(ctx)
		panic("boom")
	})
	assert.Contains(t, buf.String(), `"panic":"boom"`)
	assert.Contains(t, buf.String(), "panic recovered")
}
