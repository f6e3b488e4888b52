package relational

import (
	"time"

	"github.com/servicedesk/atendimentos/internal/core/domain"
)

type userRecord struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"column:nome;size:150;not null;uniqueIndex"`
	Password string `gorm:"column:senha;not null"`
	Role     string `gorm:"column:funcao;size:50;not null"`
}

func (userRecord) TableName() string { return "usuarios" }

func (r userRecord) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Name:         r.Name,
		PasswordHash: r.Password,
		Role:         r.Role,
	}
}

type serviceEventRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Description string    `gorm:"column:descricao;type:text"`
	Category    string    `gorm:"column:categoria;size:100"`
	Duration    string    `gorm:"column:tempo;size:50"`
	Author      string    `gorm:"column:usuario;size:150;index"`
	CreatedAt   time.Time `gorm:"column:data_registro;not null"`
}

func (serviceEventRecord) TableName() string { return "atendimentos" }

func (r serviceEventRecord) toDomain() domain.ServiceEvent {
	return domain.ServiceEvent{
		ID:          r.ID,
		Description: r.Description,
		Category:    r.Category,
		Duration:    r.Duration,
		Author:      r.Author,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}
