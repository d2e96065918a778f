package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/merchant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateMerchantCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewCreateMerchantCommand(kernel.NewUUID(), "Teashop")
	require.NoError(t, err)

	merchantRepo := new(MockMerchantRepository)
	uow := new(MockUoW)
	uow.On("MerchantRepository").Return(merchantRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		merchantRepo.On("Add", ctx, mock.AnythingOfType("*merchant.Merchant")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMerchantUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateMerchantCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	created := merchantRepo.Calls[0].Arguments[1].(*merchant.Merchant)
	assert.True(t, created.ID().IsEqual(cmd.MerchantID()))
	assert.Equal(t, "Teashop", created.Name())
	assert.Zero(t, created.Balance())

	merchantRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateMerchantCommandHandler_Handle_NameIsRequired(t *testing.T) {
	_, err := commands.NewCreateMerchantCommand(kernel.NewUUID(), "")

	require.ErrorIs(t, err, commands.ErrMerchantNameIsRequired)
}

func TestCreateMerchantCommandHandler_Handle_ValidationError(t *testing.T) {
	handler := commands.NewCreateMerchantCommandHandler(new(MockMerchantUoWFactory))

	err := handler.Handle(t.Context(), commands.CreateMerchantCommand{})

	require.ErrorIs(t, err, commands.ErrCreateMerchantCommandIsNotConstructed)
}
