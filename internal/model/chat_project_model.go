package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatProject struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string         `gorm:"type:varchar(255);not null"`
	ModelType  string         `gorm:"type:varchar(32);not null"`
	Strategy   string         `gorm:"type:varchar(32);not null"`
	PromptTmpl string         `gorm:"type:text"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (ChatProject) TableName() string {
	return "chat_projects"
}
