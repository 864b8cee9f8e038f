package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Celebration(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if bms := bd.Check(WindowStats{WindowEndTick: 300, Particles: 100, Visible: 100}); hasBookmark(bms, BookmarkCelebration) {
		t.Error("unexpected celebration before accept")
	}

	bms := bd.Check(WindowStats{WindowEndTick: 600, Celebrated: true, Particles: 100, Dispersing: 100, Visible: 100})
	if !hasBookmark(bms, BookmarkCelebration) {
		t.Error("expected celebration bookmark")
	}

	// One-shot.
	bms = bd.Check(WindowStats{WindowEndTick: 900, Celebrated: true, Particles: 100, Dispersing: 100, Visible: 50})
	if hasBookmark(bms, BookmarkCelebration) {
		t.Error("celebration bookmark should fire once")
	}
}

func TestBookmarkDetector_Dispersed(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// Nothing visible without a celebration is an empty heart, not a dispersal.
	if bms := bd.Check(WindowStats{WindowEndTick: 300, Particles: 0}); hasBookmark(bms, BookmarkDispersed) {
		t.Error("unexpected dispersed bookmark for empty heart")
	}

	bd.Check(WindowStats{WindowEndTick: 600, Celebrated: true, Particles: 100, Visible: 80})

	bms := bd.Check(WindowStats{WindowEndTick: 900, Celebrated: true, Particles: 100, Visible: 0})
	if !hasBookmark(bms, BookmarkDispersed) {
		t.Error("expected dispersed bookmark")
	}

	bms = bd.Check(WindowStats{WindowEndTick: 1200, Celebrated: true, Particles: 100, Visible: 0})
	if hasBookmark(bms, BookmarkDispersed) {
		t.Error("dispersed bookmark should fire once")
	}
}

func TestBookmarkDetector_Persistence(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if bms := bd.Check(WindowStats{WindowEndTick: 300, Dodges: 4}); hasBookmark(bms, BookmarkPersistence) {
		t.Error("unexpected persistence bookmark at 4 dodges")
	}
	if bms := bd.Check(WindowStats{WindowEndTick: 600, Dodges: 5}); !hasBookmark(bms, BookmarkPersistence) {
		t.Error("expected persistence bookmark at 5 dodges")
	}
}

func TestBookmarkDetector_ClipSurge(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 300), Particles: 1000, Clipped: 5})
	}

	bms := bd.Check(WindowStats{WindowEndTick: 1800, Particles: 1000, Clipped: 40})
	if !hasBookmark(bms, BookmarkClipSurge) {
		t.Error("expected clip_surge bookmark")
	}
}

func TestBookmarkDetector_ClipSurgeBelowFloor(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 300), Particles: 1000, Clipped: 1})
	}

	// 8x the average but under 1% of the particles.
	bms := bd.Check(WindowStats{WindowEndTick: 1800, Particles: 1000, Clipped: 8})
	if hasBookmark(bms, BookmarkClipSurge) {
		t.Error("clip surge below the noise floor should not fire")
	}
}

func TestBookmarkDetector_SteadyBeat(t *testing.T) {
	bd := NewBookmarkDetector(10)

	var fired int
	for i := 0; i < 8; i++ {
		bms := bd.Check(WindowStats{WindowEndTick: int32(i * 300), Beats: 2})
		if hasBookmark(bms, BookmarkSteadyBeat) {
			fired++
			if i != 3 {
				t.Errorf("expected steady_beat on window 3, got window %d", i)
			}
		}
	}
	if fired != 1 {
		t.Errorf("expected steady_beat once, got %d", fired)
	}
}

func TestBookmarkDetector_IrregularBeat(t *testing.T) {
	bd := NewBookmarkDetector(10)

	beats := []int{1, 4, 1, 4, 1, 4, 1, 4}
	for i, b := range beats {
		bms := bd.Check(WindowStats{WindowEndTick: int32(i * 300), Beats: b})
		if hasBookmark(bms, BookmarkSteadyBeat) {
			t.Fatalf("unexpected steady_beat at window %d", i)
		}
	}
}

func TestBookmarkDetector_HistoryWraps(t *testing.T) {
	bd := NewBookmarkDetector(3)

	for i := 0; i < 7; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 300), Particles: 1000, Clipped: 5})
	}

	if len(bd.getHistory()) != 3 {
		t.Errorf("expected history of 3, got %d", len(bd.getHistory()))
	}
	if bd.historyIdx != 1 {
		t.Errorf("expected history index 1 after 7 windows, got %d", bd.historyIdx)
	}
}

func TestNewBookmarkDetectorMinimumHistory(t *testing.T) {
	bd := NewBookmarkDetector(0)
	if bd.historySize != 3 {
		t.Errorf("expected minimum history size 3, got %d", bd.historySize)
	}
}
