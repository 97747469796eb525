package camunda

import (
	"context"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
)

type recordedJob struct {
	taskType string
	status   string
}

type fakeRecorder struct {
	processed []recordedJob
	durations []time.Duration
}

func (f *fakeRecorder) RecordJobProcessed(_ context.Context, taskType, status string) {
	f.processed = append(f.processed, recordedJob{taskType, status})
}

func (f *fakeRecorder) RecordJobDuration(_ context.Context, _ string, d time.Duration, _ string) {
	f.durations = append(f.durations, d)
}

func TestInstrument(t *testing.T) {
	var handled []int64
	reg := Registration{
		TaskType: "match-providers",
		Handler: func(_ worker.JobClient, job entities.Job) {
			handled = append(handled, job.Key)
		},
	}

	rec := &fakeRecorder{}
	wrapped := Instrument(reg, rec)
	assert.Equal(t, "match-providers", wrapped.TaskType)

	wrapped.Handler(nil, entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 42}})

	assert.Equal(t, []int64{42}, handled)
	assert.Equal(t, []recordedJob{{"match-providers", "handled"}}, rec.processed)
	assert.Len(t, rec.durations, 1)
}
