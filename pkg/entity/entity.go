package entity

import (
	"time"

	"github.com/foshmed/daybook/pkg/dates"
	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID
	Name            string
	Email           string
	PasswordHash    string
	ProfileImageURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Entry struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Mood       string     `json:"mood"`
	Category   string     `json:"category"`
	ImageURL   string     `json:"image_url,omitempty"`
	QuickNote  bool       `json:"is_quick_note"`
	TemplateID *uuid.UUID `json:"template_id,omitempty"`
	CreatedAt  time.Time  `json:"date"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type Reminder struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	EntryID     *uuid.UUID `json:"entry_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	RemindAt    time.Time  `json:"date_time"`
	Active      bool       `json:"is_active"`
	Type        string     `json:"type"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CalendarEvent struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        dates.Date `json:"event_date"`
	// "HH:MM", empty for all-day events
	Time      string    `json:"event_time,omitempty"`
	Type      string    `json:"event_type"`
	CreatedAt time.Time `json:"created_at"`
}

type Template struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	Default     bool      `json:"is_default"`
}

// CalendarSource tags which table a merged calendar item came from.
type CalendarSource string

const (
	SourceEntry    CalendarSource = "entry"
	SourceReminder CalendarSource = "reminder"
	SourceEvent    CalendarSource = "event"
)

// CalendarItem is the common shape entries, reminders and custom events are
// normalized into for the merged calendar feed.
type CalendarItem struct {
	Source      CalendarSource `json:"source"`
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Date        dates.Date     `json:"date"`
	Time        string         `json:"time,omitempty"`
	Type        string         `json:"type"`
	Mood        string         `json:"mood,omitempty"`
	Category    string         `json:"category,omitempty"`
}

type ActivityBucket struct {
	Date    dates.Date `json:"date"`
	Entries int        `json:"entries"`
}

// UserStatistics is recomputed from entry/reminder rows on every request,
// never read back from storage.
type UserStatistics struct {
	TotalEntries          int              `json:"total_entries"`
	CurrentStreak         int              `json:"current_streak"`
	LongestStreak         int              `json:"longest_streak"`
	DominantMood          string           `json:"dominant_mood"`
	FavoriteCategory      string           `json:"favorite_category"`
	MoodDistribution      map[string]int   `json:"mood_distribution"`
	CategoryDistribution  map[string]int   `json:"category_distribution"`
	RecentActivity        []ActivityBucket `json:"recent_activity"`
	QuickNotesCount       int              `json:"quick_notes_count"`
	ActiveReminders       int              `json:"active_reminders"`
	AverageEntriesPerWeek float64          `json:"average_entries_per_week"`
	TotalCategories       int              `json:"total_categories"`
	TotalMoodsUsed        int              `json:"total_moods_used"`
}

type Pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalCount  int `json:"total_entries"`
	PerPage     int `json:"entries_per_page"`
}
