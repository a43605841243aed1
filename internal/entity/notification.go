package entity

type NotificationType string

const (
	NotificationGeneral      NotificationType = "general"
	NotificationAnnouncement NotificationType = "announcement"
	NotificationAssignment   NotificationType = "assignment"
	NotificationEvent        NotificationType = "event"
	NotificationPayment      NotificationType = "payment"
)

var NotificationTypes = []NotificationType{
	NotificationGeneral, NotificationAnnouncement, NotificationAssignment,
	NotificationEvent, NotificationPayment,
}

func (t NotificationType) Valid() bool {
	for _, nt := range NotificationTypes {
		if nt == t {
			return true
		}
	}
	return false
}

// RecipientMode selects how a notification is fanned out after it is saved.
type RecipientMode string

const (
	RecipientNone     RecipientMode = "none"
	RecipientAll      RecipientMode = "all"
	RecipientRegion   RecipientMode = "region"
	RecipientClass    RecipientMode = "class"
	RecipientSpecific RecipientMode = "specific"
)

func (m RecipientMode) Valid() bool {
	switch m {
	case RecipientNone, RecipientAll, RecipientRegion, RecipientClass, RecipientSpecific:
		return true
	}
	return false
}

type Notification struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        NotificationType `json:"type"`
	Nominal     *float64         `json:"nominal"`
	Date        Date             `json:"date"`
	IsScheduled bool             `json:"is_scheduled"`
	Image       *string          `json:"image"`
}

type Banner struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Link     *string `json:"link"`
	Image    string  `json:"image"`
	IsActive bool    `json:"is_active"`
}
