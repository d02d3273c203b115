package handler

import "cumplimed/backend/internal/service"

// Handler punto de entrada agregado de todos los handlers
type Handler struct {
	Document      *DocumentHandler
	ChangeControl *ChangeControlHandler
	Label         *LabelHandler
	Release       *ReleaseHandler
	Recall        *RecallHandler
	SystemConfig  *SystemConfigHandler
}

// NewHandler crea el agregado de handlers
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Document:      NewDocumentHandler(svc.Document),
		ChangeControl: NewChangeControlHandler(svc.ChangeControl),
		Label:         NewLabelHandler(svc.Label),
		Release:       NewReleaseHandler(svc.Release),
		Recall:        NewRecallHandler(svc.Recall),
		SystemConfig:  NewSystemConfigHandler(svc.SystemConfig),
	}
}
