package httpapi

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/pvframework/pkg/logger"
	"github.com/dmitrymomot/pvframework/pkg/report"
)

type validateRequest struct {
	Ruleset  string `path:"name" json:"-"`
	Instance any    `json:"instance"`
}

type batchRequest struct {
	Ruleset   string `path:"name" json:"-"`
	Instances []any  `json:"instances"`
}

// BatchView summarizes a multi-instance run.
type BatchView struct {
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Warnings  int             `json:"warnings"`
	Reports   []report.Report `json:"reports"`
}

func (s *Service) validate(ctx Context, req validateRequest) Response {
	if req.Instance == nil {
		return errorResponse(fmt.Errorf("%w: instance is required", ErrBadRequest))
	}
	set, err := s.registry.Get(req.Ruleset)
	if err != nil {
		return errorResponse(err)
	}

	res, err := set.Manager.Validate(ctx, req.Instance)
	if err != nil {
		return errorResponse(err)
	}

	rep := report.FromResult(req.Ruleset, res)
	if err := s.store.Save(ctx, rep); err != nil {
		return errorResponse(fmt.Errorf("save report: %w", err))
	}
	s.log.InfoContext(ctx, "instance validated",
		logger.RunID(rep.ID),
		logger.Instance(rep.InstanceKey),
		slog.String("ruleset", req.Ruleset),
		logger.Count("fails", rep.NumFails),
		logger.Count("warnings", rep.NumWarnings),
	)
	return JSON(rep)
}

func (s *Service) validateBatch(ctx Context, req batchRequest) Response {
	if len(req.Instances) == 0 {
		return errorResponse(fmt.Errorf("%w: instances are required", ErrBadRequest))
	}
	set, err := s.registry.Get(req.Ruleset)
	if err != nil {
		return errorResponse(err)
	}

	batch, err := set.Manager.ValidateAll(ctx, req.Instances...)
	if err != nil {
		return errorResponse(err)
	}

	view := BatchView{
		Total:     batch.Total(),
		Succeeded: batch.NumSucceeds(),
		Failed:    batch.NumFails(),
		Warnings:  batch.NumWarnings(),
		Reports:   make([]report.Report, 0, batch.Total()),
	}
	for _, res := range batch.Results() {
		rep := report.FromResult(req.Ruleset, res)
		if err := s.store.Save(ctx, rep); err != nil {
			return errorResponse(fmt.Errorf("save report: %w", err))
		}
		view.Reports = append(view.Reports, rep)
	}
	s.log.InfoContext(ctx, "batch validated",
		slog.String("ruleset", req.Ruleset),
		logger.Count("total", view.Total),
		logger.Count("failed", view.Failed),
	)
	return JSON(view)
}
