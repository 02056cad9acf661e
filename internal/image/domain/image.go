package domain

import "time"

// BlogImage is the metadata row for one uploaded photo; the bytes live in the
// file store under StoragePath.
type BlogImage struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Filename     string    `json:"filename" gorm:"not null"`
	OriginalName string    `json:"original_name"`
	StoragePath  string    `json:"-"`
	PublicURL    string    `json:"public_url"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	AltText      string    `json:"alt_text,omitempty"`
	Caption      string    `json:"caption,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (BlogImage) TableName() string {
	return "blog_images"
}
