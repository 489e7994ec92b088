package storage

import "time"

type User struct {
	ID        int64
	Username  string
	Email     *string
	CreatedAt time.Time
}

type Character struct {
	ID            int64
	UserID        int64
	Name          string
	Class         string
	Level         int
	CurrentXP     int
	TotalXP       int
	XPToNextLevel int
	Stats         map[string]int // JSON in the stats column
	IsActive      bool
	CreatedAt     time.Time
	LastActiveAt  time.Time
}

type Task struct {
	ID             int64
	CharacterID    int64
	Title          string
	Description    string
	Difficulty     string
	Category       string
	EstimatedHours float64
	ActualHours    float64
	Status         string
	Priority       int
	XPReward       int
	CreatedAt      time.Time
	StartedAt      *time.Time
	EndedAt        *time.Time
	Deadline       *time.Time
}

type TimeSession struct {
	ID              int64
	TaskID          int64
	CharacterID     int64
	StartTime       time.Time
	EndTime         *time.Time
	DurationSeconds *int64
}

type Achievement struct {
	ID          int64
	CharacterID int64
	Code        string
	Title       string
	Description string
	EarnedAt    time.Time
}

type LeaderboardEntry struct {
	CharacterID int64
	Name        string // joined from characters
	Class       string // joined from characters
	Rank        int
	Level       int
	XP          int
	LastUpdate  time.Time
}
