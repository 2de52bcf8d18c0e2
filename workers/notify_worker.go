package workers

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"team-manager-system/models"
)

// NotifyWatcher periodically reports how many participations of upcoming
// events still await notification, so admins can see outstanding work in
// the logs. It never mutates the flag: only the admin bulk action does.
type NotifyWatcher struct {
	DB *gorm.DB
}

func NewNotifyWatcher(db *gorm.DB) *NotifyWatcher {
	return &NotifyWatcher{DB: db}
}

type pendingRow struct {
	EventID string
	Title   string
	Pending int64
}

func (w *NotifyWatcher) pendingByEvent() ([]pendingRow, error) {
	var rows []pendingRow
	err := w.DB.Model(&models.Participation{}).
		Select("participations.event_id as event_id, events.title as title, count(*) as pending").
		Joins("JOIN events ON events.id = participations.event_id").
		Where("participations.notified = ? AND events.is_cancelled = ? AND events.date_event >= ?",
			false, false, time.Now()).
		Group("participations.event_id, events.title").
		Scan(&rows).Error
	return rows, err
}

// Poll loops until the context is cancelled.
func (w *NotifyWatcher) Poll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("NotifyWatcher stopped")
			return
		case <-ticker.C:
			rows, err := w.pendingByEvent()
			if err != nil {
				log.Printf("[NotifyWatcher] query error: %v", err)
				continue
			}
			for _, r := range rows {
				log.Printf("[NotifyWatcher] event %q: %d participation(s) en attente de notification", r.Title, r.Pending)
			}
		}
	}
}
