package styles

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/floatdock/internal/domain/entity"
	"github.com/bnema/floatdock/internal/infrastructure/config"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config file path and the active layout settings.
func (r *ConfigRenderer) RenderConfigInfo(path string, s entity.LayoutSettings) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	keyStyle := r.theme.Subtle
	valueStyle := r.theme.Normal

	line := func(key, value string) string {
		return fmt.Sprintf("    %s %s\n", keyStyle.Render(fmt.Sprintf("%-20s", key)), valueStyle.Render(value))
	}

	return fmt.Sprintf("\n  %s Config %s\n\n", iconStyle.Render(IconConfig), r.theme.Subtle.Render(path)) +
		line("free_placement", fmt.Sprintf("%t", s.FreePlacement)) +
		line("gap", FormatPixels(s.Gap)) +
		line("snap_threshold", FormatPixels(s.SnapThreshold)) +
		line("overlap_prevention", fmt.Sprintf("%t", s.OverlapPrevention)) +
		line("animation", s.AnimationDuration.String())
}

// RenderSchemaWritten renders the confirmation after writing the JSON schema.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Wrote schema %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Highlight.Render(filepath.Base(path)),
	)
}

// RenderReset renders the confirmation after restoring the default config.
func (r *ConfigRenderer) RenderReset(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Restored defaults in %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Subtle.Render(path),
	)
}

// RenderCanceled renders the message shown when the user declines a prompt.
func (r *ConfigRenderer) RenderCanceled() string {
	return fmt.Sprintf("\n  %s\n", r.theme.Subtle.Render("Canceled."))
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)
	return fmt.Sprintf("\n  %s %s\n", iconStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}

// RenderChanges renders the differences between the config file and the
// defaults as a diff.
func (r *ConfigRenderer) RenderChanges(changes []config.KeyChange) string {
	addStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	dropStyle := lipgloss.NewStyle().Foreground(r.theme.Warning)

	var sb strings.Builder
	sb.WriteString("\n")
	for _, c := range changes {
		switch c.Type {
		case config.KeyChangeAdded:
			sb.WriteString(addStyle.Render(fmt.Sprintf("    + %s = %s", c.Key, c.Value)))
		case config.KeyChangeUnknown:
			sb.WriteString(dropStyle.Render(fmt.Sprintf("    - %s = %s (unknown, dropped)", c.Key, c.Value)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderUpToDate renders the message shown when no migration is needed.
func (r *ConfigRenderer) RenderUpToDate(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Config is up to date %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Subtle.Render(path),
	)
}

// RenderMigrateHint renders the hint shown by config show when keys are missing.
func (r *ConfigRenderer) RenderMigrateHint(count int) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Warning)
	return fmt.Sprintf("  %s %d change(s) available, run %s\n",
		iconStyle.Render(IconWarning),
		count,
		r.theme.Highlight.Render("floatdock config migrate"),
	)
}

// RenderMigrated renders the confirmation after a migration.
func (r *ConfigRenderer) RenderMigrated(count int, path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Applied %d change(s) to %s\n",
		iconStyle.Render(IconCheck),
		count,
		r.theme.Subtle.Render(path),
	)
}
