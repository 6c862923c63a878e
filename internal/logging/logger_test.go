package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.TraceLevel, ParseLevel("trace"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}

func TestFromContext_WithoutLoggerIsDisabled(t *testing.T) {
	log := FromContext(context.Background())

	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}

func TestWithPanelID_AddsField(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf
	ctx := WithContext(context.Background(), New(cfg))

	ctx = WithComponent(WithPanelID(ctx, "search"), "layout")
	FromContext(ctx).Info().Msg("hello")

	assert.Contains(t, buf.String(), `"panel_id":"search"`)
	assert.Contains(t, buf.String(), `"component":"layout"`)
}
