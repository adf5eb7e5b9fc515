package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doelski/mabinihub-backend-go/internal/domain/attendance"
)

func TestRunOnceExecutesEveryJob(t *testing.T) {
	s := NewScheduler()
	var ran []string
	s.AddJob(Job{
		Name:     "first",
		Interval: time.Hour,
		Fn: func(context.Context) error {
			ran = append(ran, "first")
			return nil
		},
	})
	s.AddJob(Job{
		Name:     "failing",
		Interval: time.Hour,
		Fn: func(context.Context) error {
			ran = append(ran, "failing")
			return errors.New("tick failed")
		},
	})
	s.AddJob(Job{
		Name:     "last",
		Interval: time.Hour,
		Fn: func(context.Context) error {
			ran = append(ran, "last")
			return nil
		},
	})

	s.RunOnce(context.Background())

	// A failing job never stops the others.
	assert.Equal(t, []string{"first", "failing", "last"}, ran)
}

type generateOnlyService struct {
	attendance.Service
	dates []time.Time
}

func (g *generateOnlyService) GenerateDaily(_ context.Context, date time.Time) (attendance.GenerateSummary, error) {
	g.dates = append(g.dates, date)
	return attendance.GenerateSummary{}, nil
}

func TestAttendanceJobsRegisterGeneration(t *testing.T) {
	svc := &generateOnlyService{}
	s := NewScheduler()
	NewAttendanceJobs(svc).Register(s)

	s.RunOnce(context.Background())

	require.Len(t, svc.dates, 1)
	assert.WithinDuration(t, time.Now(), svc.dates[0], time.Minute)
}
