package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/biome/components"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkExtinction       BookmarkType = "extinction"
	BookmarkPlantCrash       BookmarkType = "plant_crash"
	BookmarkPredatorRecovery BookmarkType = "predator_recovery"
	BookmarkStableEcosystem  BookmarkType = "stable_ecosystem"
	BookmarkSeasonChange     BookmarkType = "season_change"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
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

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPredMin      int // minimum carnivore count in recent history
	recentPlantPeak    int // peak plant count in recent history
	stableWindowsCount int // consecutive windows with stable populations
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		history:       make([]WindowStats, historySize),
		historySize:   historySize,
		recentPredMin: -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if prev, ok := bd.last(); ok {
		bookmarks = append(bookmarks, bd.checkExtinction(prev, stats)...)

		if b := bd.checkSeasonChange(prev, stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkPredatorRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkPlantCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkStableEcosystem(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	// Track carnivore minimum and plant peak
	if bd.recentPredMin < 0 || stats.Carnivores < bd.recentPredMin {
		bd.recentPredMin = stats.Carnivores
	}
	if stats.Plants > bd.recentPlantPeak {
		bd.recentPlantPeak = stats.Plants
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the held windows, oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	ordered := make([]WindowStats, 0, bd.historySize)
	ordered = append(ordered, bd.history[bd.historyIdx:]...)
	return append(ordered, bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) last() (WindowStats, bool) {
	if !bd.historyFull && bd.historyIdx == 0 {
		return WindowStats{}, false
	}
	idx := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[idx], true
}

func (bd *BookmarkDetector) checkExtinction(prev, stats WindowStats) []Bookmark {
	var out []Bookmark
	for k := components.Kind(0); k < components.NumKinds; k++ {
		if prev.Count(k) > 0 && stats.Count(k) == 0 {
			out = append(out, Bookmark{
				Type:        BookmarkExtinction,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("All %s died out (%d in previous window)", k, prev.Count(k)),
			})
		}
	}
	return out
}

func (bd *BookmarkDetector) checkSeasonChange(prev, stats WindowStats) *Bookmark {
	if prev.Season == "" || prev.Season == stats.Season {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkSeasonChange,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Season changed from %s to %s", prev.Season, stats.Season),
	}
}

func (bd *BookmarkDetector) checkPredatorRecovery(stats WindowStats) *Bookmark {
	if bd.recentPredMin <= 0 || bd.recentPredMin > 3 {
		return nil
	}

	threshold := bd.recentPredMin * 3
	if stats.Carnivores >= threshold && stats.Carnivores >= 6 {
		// Reset the minimum after triggering
		oldMin := bd.recentPredMin
		bd.recentPredMin = stats.Carnivores

		return &Bookmark{
			Type:        BookmarkPredatorRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Carnivore population recovered from %d to %d", oldMin, stats.Carnivores),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPlantCrash(stats WindowStats) *Bookmark {
	if bd.recentPlantPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Plants)/float64(bd.recentPlantPeak)
	if dropPercent > 0.30 && stats.Plants < bd.recentPlantPeak-10 {
		// Reset peak after crash
		oldPeak := bd.recentPlantPeak
		bd.recentPlantPeak = stats.Plants

		return &Bookmark{
			Type:        BookmarkPlantCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Plants crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Plants),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	// Need every level of the food chain present
	if stats.Plants < 10 || stats.Herbivores < 5 || stats.Carnivores < 2 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}
	recent := history[len(history)-4:]

	herbCV2 := squaredCV(recent, components.KindHerbivore)
	carnCV2 := squaredCV(recent, components.KindCarnivore)

	if herbCV2 < 0.04 && carnCV2 < 0.04 { // CV^2 < 0.04 means CV < 0.2
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Stable ecosystem with %d plants, %d herbivores, %d carnivores over 5+ windows", stats.Plants, stats.Herbivores, stats.Carnivores),
		}
	}

	return nil
}

// squaredCV returns the squared coefficient of variation of one kind's counts.
func squaredCV(windows []WindowStats, k components.Kind) float64 {
	var sum float64
	for _, w := range windows {
		sum += float64(w.Count(k))
	}
	mean := sum / float64(len(windows))
	if mean == 0 {
		return 0
	}

	var variance float64
	for _, w := range windows {
		d := float64(w.Count(k)) - mean
		variance += d * d
	}
	variance /= float64(len(windows))
	return variance / (mean * mean)
}
