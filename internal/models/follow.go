package models

import "time"

// Follow represents a directed follower -> followee edge.
// The primary key is a composite of (FollowerID, FolloweeID) to ensure uniqueness.
// Self-edges are rejected at the service layer and never stored.
type Follow struct {
	FollowerID uint `gorm:"primaryKey"`
	FolloweeID uint `gorm:"primaryKey"`
	CreatedAt  time.Time

	Follower User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Followee User `gorm:"foreignKey:FolloweeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
