package announce

import (
	"errors"
	"time"
)

// ErrNotFound is returned when an announcement or recipient is missing.
var ErrNotFound = errors.New("not found")

// Announcement is a notice posted to a course or, when IsGlobal, to everyone.
type Announcement struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CourseID    *int      `json:"courseId,omitempty"`
	CreatedByID *int      `json:"createdById,omitempty"`
	IsGlobal    bool      `json:"isGlobal"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Recipient tracks per-student delivery and read state of an announcement.
type Recipient struct {
	ID             int        `json:"id"`
	AnnouncementID int        `json:"announcementId"`
	StudentID      int        `json:"studentId"`
	IsRead         bool       `json:"isRead"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
}
