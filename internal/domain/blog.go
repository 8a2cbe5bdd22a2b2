package domain

import (
	"time"

	"github.com/google/uuid"
)

type Blog struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string    `json:"title" gorm:"not null"`
	Synopsis    string    `json:"synopsis" gorm:"not null"`
	Content     string    `json:"content" gorm:"not null"`
	FeaturedImg string    `json:"featuredImg" gorm:"not null"`
	AuthorID    uuid.UUID `json:"authorId" gorm:"type:uuid;not null;index"`
	Author      *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	// Deleted blogs are never purged; is_deleted only ever transitions false -> true.
	IsDeleted bool      `json:"isDeleted" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
