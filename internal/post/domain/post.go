package domain

import "time"

// BlogPost is one published gallery entry. ReadTime is derived from the
// content at write time.
type BlogPost struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Images    []string  `json:"images" gorm:"serializer:json"`
	ReadTime  string    `json:"read_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}
