package httpapi

import (
	"github.com/dmitrymomot/pvframework/pkg/report"
)

type listReportsRequest struct {
	InstanceKey string `query:"instance_key"`
	Limit       int    `query:"limit"`
}

type reportRequest struct {
	ID string `path:"id"`
}

func (s *Service) listReports(ctx Context, req listReportsRequest) Response {
	if req.Limit < 0 {
		return errorResponse(ErrBadRequest)
	}
	reports, err := s.store.List(ctx, report.Filter{InstanceKey: req.InstanceKey, Limit: req.Limit})
	if err != nil {
		return errorResponse(err)
	}
	if reports == nil {
		reports = []report.Report{}
	}
	return JSON(reports, WithMeta(map[string]any{"count": len(reports)}))
}

func (s *Service) getReport(ctx Context, req reportRequest) Response {
	rep, err := s.store.Get(ctx, req.ID)
	if err != nil {
		return errorResponse(err)
	}
	return JSON(rep)
}

func (s *Service) deleteReport(ctx Context, req reportRequest) Response {
	if err := s.store.Delete(ctx, req.ID); err != nil {
		return errorResponse(err)
	}
	return Empty()
}
