package main

import (
	"fmt"
	"strings"
	"time"

	"tiktok-planner/domain/model"

	"github.com/dustin/go-humanize"
)

// compactNumber renders counters as 950, 1.2k, 3.4M.
func compactNumber(n int64) string {
	if n < 1000 {
		return humanize.Comma(n)
	}
	value, prefix := humanize.ComputeSI(float64(n))
	return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.1f", value), "0"), ".") + prefix
}

func formatDuration(seconds int64) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func formatCreated(millis int64, now time.Time) string {
	if millis <= 0 {
		return "-"
	}
	return humanize.RelTime(time.UnixMilli(millis), now, "ago", "from now")
}

func formatVideo(i int, v model.VideoRecord, now time.Time) string {
	return fmt.Sprintf("%2d. [%s] %s\n    @%s · %s · ▶ %s ❤ %s 💬 %s ↗ %s · %s",
		i, v.ID, strings.TrimSpace(v.Title),
		v.Author.Mention(), formatDuration(v.DurationSeconds),
		compactNumber(v.Stats.Plays), compactNumber(v.Stats.Likes),
		compactNumber(v.Stats.Comments), compactNumber(v.Stats.Shares),
		formatCreated(v.CreatedAtMillis, now))
}

func formatQueueItem(item model.QueueItem) string {
	var b strings.Builder
	scheduled := item.ScheduledFor
	if scheduled == "" {
		scheduled = "unscheduled"
	}
	fmt.Fprintf(&b, "[%s] %s (%s)\n", item.ID, strings.TrimSpace(item.Title), scheduled)
	for _, entry := range item.Interactions {
		mark := " "
		if entry.Enabled {
			mark = "x"
		}
		fmt.Fprintf(&b, "    [%s] %s", mark, entry.Action)
		if entry.Details != "" {
			fmt.Fprintf(&b, ": %s", entry.Details)
		}
		b.WriteString("\n")
	}
	if item.Caption != "" {
		fmt.Fprintf(&b, "    caption: %s\n", strings.ReplaceAll(item.Caption, "\n", " / "))
	}
	if item.Notes != "" {
		fmt.Fprintf(&b, "    notes: %s\n", item.Notes)
	}
	return b.String()
}
