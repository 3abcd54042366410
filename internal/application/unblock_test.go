package application

import (
	"context"
	"testing"

	"chatpool/internal/domain"
	"chatpool/internal/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestUnblockAllSkipsSelfAndUnblockedUsers(t *testing.T) {
	account := testAccount("acc-1")
	self := &fakeUser{ref: account.User, blocked: true}
	friendly := &fakeUser{ref: domain.UserRef{ID: "u-2", Username: "amiable", Discriminator: "0002"}}
	blocked := &fakeUser{ref: domain.UserRef{ID: "u-3", Username: "nuisance", Discriminator: "0003"}, blocked: true}

	gateway := newFakeGateway(readySession(account.User, func(s *fakeSession) {
		s.users = []*fakeUser{self, friendly, blocked}
	}))

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Sleep(mock.Anything, testPace).Return(nil).Once()

	service := NewService(gateway, testSecrets(t), clock, zap.NewNop(), Config{PaceDelay: testPace})

	report, err := service.UnblockAll(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, domain.OperationReport{Succeeded: 1, Skipped: 1}, report)
	assert.Equal(t, 0, self.unblocks, "own identity must never be unblocked")
	assert.Equal(t, 0, friendly.unblocks)
	assert.Equal(t, 1, blocked.unblocks)
}

func TestUnblockAllContinuesPastTransientFailure(t *testing.T) {
	account := testAccount("acc-1")
	first := &fakeUser{ref: domain.UserRef{ID: "u-2", Username: "first", Discriminator: "0002"}, blocked: true, unblockErr: domain.ErrRateLimited}
	second := &fakeUser{ref: domain.UserRef{ID: "u-3", Username: "second", Discriminator: "0003"}, blocked: true}

	gateway := newFakeGateway(readySession(account.User, func(s *fakeSession) {
		s.users = []*fakeUser{first, second}
	}))

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Sleep(mock.Anything, testPace).Return(nil).Times(2)

	logger, logs := observedLogger()
	service := NewService(gateway, testSecrets(t), clock, logger, Config{PaceDelay: testPace})

	report, err := service.UnblockAll(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, domain.OperationReport{Succeeded: 1, Failed: 1}, report)
	assert.Equal(t, 1, second.unblocks)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).FilterMessage("couldn't unblock user")
	require.Equal(t, 1, warnings.Len())
	assert.Equal(t, "first#0002", warnings.All()[0].ContextMap()["user"])
}

func TestUnblockAllAsAllAggregatesReports(t *testing.T) {
	accounts := []domain.Account{testAccount("a"), testAccount("b")}

	gateway := newFakeGateway(func(account domain.Account, _ int) *fakeSession {
		sess := &fakeSession{identity: account.User}
		sess.users = []*fakeUser{
			{ref: domain.UserRef{ID: "u-x-" + string(account.ID), Username: "x"}, blocked: true},
		}
		return sess
	})

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Sleep(mock.Anything, mock.Anything).Return(nil).Times(2)

	service := NewService(gateway, testSecrets(t), clock, zap.NewNop(), Config{})

	batch, err := service.UnblockAllAsAll(context.Background(), accounts)
	require.NoError(t, err)
	require.Len(t, batch.Results, 2)
	assert.Equal(t, domain.AccountID("a"), batch.Results[0].Account.ID)
	assert.Equal(t, domain.AccountID("b"), batch.Results[1].Account.ID)
	for _, result := range batch.Results {
		assert.Equal(t, 1, result.Report.Succeeded)
	}
}
