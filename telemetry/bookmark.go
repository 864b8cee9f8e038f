package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkCelebration BookmarkType = "celebration"
	BookmarkDispersed   BookmarkType = "dispersed"
	BookmarkPersistence BookmarkType = "persistence"
	BookmarkClipSurge   BookmarkType = "clip_surge"
	BookmarkSteadyBeat  BookmarkType = "steady_beat"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in the animation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// One-shot milestones
	celebrated bool
	dispersed  bool
	steady     bool

	// State tracking
	steadyWindows int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// Celebration: the first window that ends celebrated
	if b := bd.checkCelebration(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Dispersed: every particle has faded out after celebration
	if b := bd.checkDispersed(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Persistence: the No button was chased many times in one window
	if b := bd.checkPersistence(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if bd.historyFull || bd.historyIdx > 0 {
		// Clip surge: far more particles skipped than the rolling average
		if b := bd.checkClipSurge(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Steady beat: the same beat count across several windows
		if b := bd.checkSteadyBeat(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkCelebration(stats WindowStats) *Bookmark {
	if bd.celebrated || !stats.Celebrated {
		return nil
	}
	bd.celebrated = true
	return &Bookmark{
		Type:        BookmarkCelebration,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Proposal accepted after %.1fs, %d particles dispersing", stats.SimTimeSec, stats.Dispersing),
	}
}

func (bd *BookmarkDetector) checkDispersed(stats WindowStats) *Bookmark {
	if bd.dispersed || !stats.Celebrated || stats.Particles == 0 || stats.Visible > 0 {
		return nil
	}
	bd.dispersed = true
	return &Bookmark{
		Type:        BookmarkDispersed,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("All %d particles faded out", stats.Particles),
	}
}

func (bd *BookmarkDetector) checkPersistence(stats WindowStats) *Bookmark {
	if stats.Dodges < 5 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPersistence,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No button dodged %d times in one window", stats.Dodges),
	}
}

func (bd *BookmarkDetector) checkClipSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 2 || stats.Particles == 0 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.Clipped
	}
	avg := total / float64(len(history))

	// Ignore noise below 1% of the particles.
	floor := 0.01 * float64(stats.Particles)
	if stats.Clipped > floor && stats.Clipped > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkClipSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Clipped %.1f per tick, %.1fx average (%.1f)", stats.Clipped, stats.Clipped/max(avg, 1e-9), avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkSteadyBeat(stats WindowStats) *Bookmark {
	if bd.steady || stats.Beats == 0 || stats.Celebrated {
		bd.steadyWindows = 0
		return nil
	}

	history := bd.getHistory()
	last := history[(bd.historyIdx-1+len(history))%len(history)]
	if d := stats.Beats - last.Beats; d >= -1 && d <= 1 {
		bd.steadyWindows++
	} else {
		bd.steadyWindows = 0
	}

	if bd.steadyWindows == 3 {
		bd.steady = true
		return &Bookmark{
			Type:        BookmarkSteadyBeat,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Heart settled at %d beats per window", stats.Beats),
		}
	}

	return nil
}
