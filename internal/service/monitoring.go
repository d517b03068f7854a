package service

import (
	"context"

	"smarthub/internal/models"
	"smarthub/internal/repository"
)

type MonitoringService struct {
	readings repository.ReadingRepo
	opts     Options
}

func NewMonitoringService(readings repository.ReadingRepo, opts Options) *MonitoringService {
	return &MonitoringService{readings: readings, opts: opts.withDefaults()}
}

// GetState returns the latest stored reading.
// If nothing was ingested yet, returns an idle snapshot stamped with now.
func (s *MonitoringService) GetState(ctx context.Context) (models.State, error) {
	latest, err := s.readings.Latest(ctx, 1)
	if err != nil {
		return models.State{}, err
	}
	if len(latest) == 0 {
		return models.State{Idle: models.IdleState{CurrentTime: s.opts.Now().In(s.opts.Location)}}, nil
	}
	r := latest[0]
	r.CurrentTime = r.CurrentTime.In(s.opts.Location)
	return models.State{Reading: &r}, nil
}
