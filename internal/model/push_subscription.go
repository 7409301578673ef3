package model

import "time"

// PushSubscription holds the information for a browser push subscription.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey;size:512" json:"endpoint"`
	P256DH    string    `gorm:"column:p256dh;not null" json:"-"`
	Auth      string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created"`

	// Associations
	Targets []SubscriptionTarget `gorm:"foreignKey:Endpoint;references:Endpoint" json:"-"`
}

// SubscriptionTarget binds a subscription to one trackable entity. The pair
// of kind and id mirrors the audit log's polymorphic target reference.
type SubscriptionTarget struct {
	Endpoint   string     `gorm:"primaryKey;size:512" json:"-"`
	TargetKind TargetKind `gorm:"primaryKey;size:16" json:"kind"`
	TargetID   int64      `gorm:"primaryKey" json:"id"`
}
