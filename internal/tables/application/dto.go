package application

import (
	"time"

	"github.com/tablebistro/tablebistro/internal/tables/domain"
)

type TableSessionDTO struct {
	SessionID   string    `json:"sessionId"`
	TableNumber int       `json:"tableNumber"`
	StartedAt   time.Time `json:"startedAt"`
}

type TableDTO struct {
	Number    int    `json:"number"`
	Occupied  bool   `json:"occupied"`
	SessionID string `json:"sessionId,omitempty"`
}

func toTableDTO(t *domain.Table) TableDTO {
	dto := TableDTO{Number: t.ID().Value(), Occupied: t.IsOccupied()}
	if t.IsOccupied() {
		dto.SessionID = t.ActiveSession().ID().String()
	}
	return dto
}
