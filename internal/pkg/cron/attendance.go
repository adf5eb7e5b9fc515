package cron

import (
	"context"
	"time"

	"github.com/doelski/mabinihub-backend-go/internal/domain/attendance"
)

// AttendanceJobs wires attendance maintenance into the scheduler.
type AttendanceJobs struct {
	service attendance.Service
}

func NewAttendanceJobs(service attendance.Service) *AttendanceJobs {
	return &AttendanceJobs{service: service}
}

// Register adds the hourly daily-generation tick. The generation is
// rest-day and cutoff aware, so repeat ticks on the same date settle into
// no-ops; the hourly cadence only exists so the post-cutoff absence sweep
// happens within the hour.
func (j *AttendanceJobs) Register(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:       "generate_daily_records",
		Interval:   time.Hour,
		RunOnStart: true,
		Fn: func(ctx context.Context) error {
			_, err := j.service.GenerateDaily(ctx, time.Now())
			return err
		},
	})
}
