package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wedding-voucher/voucher-svc/internal/domain"
	"wedding-voucher/voucher-svc/internal/mocks"
	"wedding-voucher/voucher-svc/internal/service"
)

func jobFor(jobType domain.JobType, guestID int64) interface{} {
	return mock.MatchedBy(func(job domain.VoucherJob) bool {
		return job.Type == jobType && job.GuestID == guestID && job.Attempt == 1 && !job.RequestedAt.IsZero()
	})
}

func TestDispatcher_DispatchIssue(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")

	tests := []struct {
		name           string
		prepareMocks   func(marker *mocks.DispatchMarker, publisher *mocks.JobPublisher)
		expectedQueued bool
		expectedError  bool
	}{
		{
			name: "queues_new_job",
			prepareMocks: func(marker *mocks.DispatchMarker, publisher *mocks.JobPublisher) {
				marker.On("Acquire", ctx, int64(42)).Return(true, nil).Once()
				publisher.On("PublishJob", ctx, jobFor(domain.JobIssueVoucher, 42)).Return(nil).Once()
			},
			expectedQueued: true,
		},
		{
			name: "dedupes_recent_dispatch",
			prepareMocks: func(marker *mocks.DispatchMarker, publisher *mocks.JobPublisher) {
				marker.On("Acquire", ctx, int64(42)).Return(false, nil).Once()
			},
			expectedQueued: false,
		},
		{
			name: "marker_unavailable_still_queues",
			prepareMocks: func(marker *mocks.DispatchMarker, publisher *mocks.JobPublisher) {
				marker.On("Acquire", ctx, int64(42)).Return(false, errBoom).Once()
				publisher.On("PublishJob", ctx, jobFor(domain.JobIssueVoucher, 42)).Return(nil).Once()
			},
			expectedQueued: true,
		},
		{
			name: "publish_failure_releases_marker",
			prepareMocks: func(marker *mocks.DispatchMarker, publisher *mocks.JobPublisher) {
				marker.On("Acquire", ctx, int64(42)).Return(true, nil).Once()
				publisher.On("PublishJob", ctx, jobFor(domain.JobIssueVoucher, 42)).Return(errBoom).Once()
				marker.On("Release", ctx, int64(42)).Return(nil).Once()
			},
			expectedQueued: false,
			expectedError:  true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			marker := mocks.NewDispatchMarker(t)
			publisher := mocks.NewJobPublisher(t)
			testCase.prepareMocks(marker, publisher)

			dispatcher := service.NewDispatcher(marker, publisher, zerolog.Nop())
			queued, err := dispatcher.DispatchIssue(ctx, 42)
			if testCase.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, testCase.expectedQueued, queued)
		})
	}
}

func TestDispatcher_DispatchRedeliver(t *testing.T) {
	ctx := context.Background()
	marker := mocks.NewDispatchMarker(t)
	publisher := mocks.NewJobPublisher(t)
	publisher.On("PublishJob", ctx, jobFor(domain.JobRedeliverVoucher, 7)).Return(nil).Once()

	dispatcher := service.NewDispatcher(marker, publisher, zerolog.Nop())
	require.NoError(t, dispatcher.DispatchRedeliver(ctx, 7))
	marker.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything)
}
