package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/thenoetrevino/trtodo/internal/models"
	"github.com/thenoetrevino/trtodo/internal/storage"
)

// FixedTime is the timestamp used by the sample fixtures
var FixedTime = time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)

// MemStorage keeps the snapshot in memory. It validates on Save like the
// real backends and hands out copies so callers never alias its state.
type MemStorage struct {
	mu    sync.Mutex
	snap  *models.Snapshot
	Saves int
}

func NewMemStorage(snap *models.Snapshot) *MemStorage {
	m := &MemStorage{}
	if snap != nil {
		m.snap = snap.Clone()
	}
	return m
}

func (m *MemStorage) Load(ctx context.Context) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return models.NewSnapshot(), nil
	}
	return m.snap.Clone(), nil
}

func (m *MemStorage) Save(ctx context.Context, snap *models.Snapshot) error {
	if err := storage.Validate(snap); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap.Clone()
	m.Saves++
	return nil
}

// SampleSnapshot returns two categories and four tasks, one of them soft-deleted
func SampleSnapshot() *models.Snapshot {
	due := FixedTime.Add(72 * time.Hour)
	lifespan := 30
	current := 1

	s := models.NewSnapshot()
	s.LastSync = FixedTime
	s.CurrentCategory = &current
	s.Config = models.Settings{
		DeletedTaskLifespan: &lifespan,
		DefaultCategory:     "Work",
		DefaultPriority:     models.PriorityMedium,
	}
	s.Categories = []models.Category{
		{ID: 1, Name: "Work", Description: "day job", Order: 0, CreatedAt: FixedTime},
		{ID: 2, Name: "Personal", Order: 1, CreatedAt: FixedTime},
	}
	s.Tasks = []models.Task{
		{ID: 1, Title: "Write report", Description: "quarterly numbers", CategoryID: 1,
			Priority: models.PriorityHigh, DueDate: &due, Order: 0, CreatedAt: FixedTime, UpdatedAt: FixedTime},
		{ID: 2, Title: "Review PR", CategoryID: 1, Completed: true,
			Priority: models.PriorityMedium, Order: 1, CreatedAt: FixedTime, UpdatedAt: FixedTime},
		{ID: 4, Title: "Buy groceries", CategoryID: 2,
			Priority: models.PriorityLow, Order: 0, CreatedAt: FixedTime, UpdatedAt: FixedTime},
		{ID: 5, Title: "Old idea", CategoryID: models.UncategorizedID,
			Priority: models.PriorityLow, Order: 0, CreatedAt: FixedTime, UpdatedAt: FixedTime},
	}
	return s
}
