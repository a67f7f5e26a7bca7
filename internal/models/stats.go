package models

// UserStats aggregates a user's activity totals, either lifetime or within a
// trailing window of days.
type UserStats struct {
	SnapsTotal   int64 `json:"twitsTotal"`
	LikesTotal   int64 `json:"likesTotal"`
	SharesTotal  int64 `json:"sharesTotal"`
	RepliesTotal int64 `json:"repliesTotal"`
}

// HashtagCount is one entry of a hashtag frequency ranking.
type HashtagCount struct {
	Name  string `json:"name" gorm:"column:name"`
	Count int64  `json:"count" gorm:"column:count"`
}
