package service

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"time"

	"github.com/foshmed/daybook/internal/repository"
	"github.com/foshmed/daybook/pkg/dates"
	"github.com/foshmed/daybook/pkg/entity"
	"github.com/google/uuid"
)

const recentActivityDays = 30

type StatsService struct {
	entries   repository.EntriesRepositoryI
	reminders repository.RemindersRepositoryI
}

func NewStatsService(entriesRepo repository.EntriesRepositoryI, remindersRepo repository.RemindersRepositoryI) *StatsService {
	if entriesRepo == nil || remindersRepo == nil {
		log.Fatal("provided nil repos to stats service")
	}
	return &StatsService{
		entries:   entriesRepo,
		reminders: remindersRepo,
	}
}

// distribution counts labels while remembering first-seen order, so the top
// label is picked the way a stable group-by-then-order-by-count query would.
type distribution struct {
	counts map[string]int
	order  []string
}

func newDistribution() *distribution {
	return &distribution{counts: make(map[string]int)}
}

func (d *distribution) add(label string) {
	if _, ok := d.counts[label]; !ok {
		d.order = append(d.order, label)
	}
	d.counts[label]++
}

// top returns the label with the strictly highest count; ties go to the
// label seen first. Empty string when the distribution is empty.
func (d *distribution) top() string {
	best := ""
	bestCount := 0
	for _, label := range d.order {
		if d.counts[label] > bestCount {
			bestCount = d.counts[label]
			best = label
		}
	}
	return best
}

func (ss *StatsService) GetStatistics(ctx context.Context, uid uuid.UUID, now time.Time) (*entity.UserStatistics, error) {
	rows, err := ss.entries.StatRows(ctx, uid)
	if err != nil {
		return nil, errors.New("entries repository error: " + err.Error())
	}
	quickNotes, err := ss.entries.CountQuickNotes(ctx, uid)
	if err != nil {
		return nil, errors.New("entries repository error: " + err.Error())
	}
	activeReminders, err := ss.reminders.CountActive(ctx, uid)
	if err != nil {
		return nil, errors.New("reminders repository error: " + err.Error())
	}

	moods := newDistribution()
	categories := newDistribution()
	timestamps := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		moods.add(row.Mood)
		categories.add(row.Category)
		timestamps = append(timestamps, row.CreatedAt)
	}

	today := dates.Of(now)
	current, longest := dates.Streaks(dates.DistinctDays(timestamps), today)

	stats := &entity.UserStatistics{
		TotalEntries:          len(rows),
		CurrentStreak:         current,
		LongestStreak:         longest,
		DominantMood:          moods.top(),
		FavoriteCategory:      categories.top(),
		MoodDistribution:      moods.counts,
		CategoryDistribution:  categories.counts,
		RecentActivity:        recentActivity(rows, now),
		QuickNotesCount:       quickNotes,
		ActiveReminders:       activeReminders,
		AverageEntriesPerWeek: averagePerWeek(rows, now),
		TotalCategories:       len(categories.counts),
		TotalMoodsUsed:        len(moods.counts),
	}
	return stats, nil
}

// recentActivity buckets entries per calendar day over the trailing window.
// Days without entries do not appear; most recent day first.
func recentActivity(rows []repository.EntryStatRow, now time.Time) []entity.ActivityBucket {
	cutoff := now.AddDate(0, 0, -recentActivityDays)
	perDay := make(map[dates.Date]int)
	for _, row := range rows {
		if row.CreatedAt.Before(cutoff) || row.CreatedAt.After(now) {
			continue
		}
		perDay[dates.Of(row.CreatedAt)]++
	}
	buckets := make([]entity.ActivityBucket, 0, len(perDay))
	for day, count := range perDay {
		buckets = append(buckets, entity.ActivityBucket{Date: day, Entries: count})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[j].Date.Before(buckets[i].Date) })
	return buckets
}

// averagePerWeek divides total entries by whole weeks elapsed since the
// first entry. Zero when there are no entries or no elapsed time yet.
func averagePerWeek(rows []repository.EntryStatRow, now time.Time) float64 {
	if len(rows) == 0 {
		return 0
	}
	// rows are ordered oldest first
	elapsedDays := int(now.Sub(rows[0].CreatedAt).Hours() / 24)
	weeks := float64(elapsedDays) / 7
	if weeks <= 0 {
		return 0
	}
	return math.Round(float64(len(rows))/weeks*10) / 10
}
