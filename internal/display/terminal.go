// Package display provides terminal output formatting for the featured CLI.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/bigtalents/featured/internal/content"
)

const separator = " • "

// TerminalFormatter formats ranked featured content for terminal display.
type TerminalFormatter struct {
	// ShowBreakdown adds the per-item sub-score line.
	ShowBreakdown bool
}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{}
}

// FormatItem formats a single ranked item for display.
func (f *TerminalFormatter) FormatItem(rank int, item content.ScoredContent) string {
	var lines []string

	header := fmt.Sprintf("%d. [%s/%s] %s", rank,
		strings.ToUpper(string(item.Platform)), item.Content.Type, item.Title)
	lines = append(lines, header)

	meta := fmt.Sprintf("  by %s (%s)%s%s", item.CreatorName, item.CreatorTier,
		separator, f.FormatTimestamp(item.PublishedAt))
	lines = append(lines, meta)

	score := fmt.Sprintf("  score %.2f (raw %.2f)", item.Score, item.RawScore)
	if stats := f.formatStats(item.Content); stats != "" {
		score += separator + stats
	}
	lines = append(lines, score)

	if f.ShowBreakdown {
		b := item.Breakdown
		lines = append(lines, fmt.Sprintf(
			"  engagement %.1f%stype %.1f%sauthority %.1f%srecency %.1f%stier %.1f%sdiversity %+.1f",
			b.BaseEngagement, separator, b.ContentTypeMultiplier, separator,
			b.PlatformAuthority, separator, b.RecencyDecay, separator,
			b.TierBonus, separator, b.DiversityBonus))
	}

	if item.URL != "" {
		lines = append(lines, "  "+item.URL)
	}

	return strings.Join(lines, "\n") + "\n"
}

// formatStats formats the item's engagement counters into a single line.
func (f *TerminalFormatter) formatStats(c content.Content) string {
	var parts []string

	if c.ViewCount > 0 {
		parts = append(parts, fmt.Sprintf("%d views", c.ViewCount))
	}
	if c.LikeCount > 0 {
		parts = append(parts, fmt.Sprintf("%d likes", c.LikeCount))
	}
	if c.PeakViewers > 0 {
		parts = append(parts, fmt.Sprintf("%d peak viewers", c.PeakViewers))
	}

	return strings.Join(parts, separator)
}

// FormatFeatured formats the full ranked list for display.
func (f *TerminalFormatter) FormatFeatured(items []content.ScoredContent) string {
	if len(items) == 0 {
		return "No featured content right now.\n"
	}

	var formatted []string
	for i, item := range items {
		formatted = append(formatted, f.FormatItem(i+1, item))
	}

	return strings.Join(formatted, "\n")
}

// FormatTimestamp formats a timestamp as relative time.
func (f *TerminalFormatter) FormatTimestamp(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return pluralize(int(diff.Hours()/24), "day")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// pluralize returns "N unit ago" or "N units ago" based on count.
func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
