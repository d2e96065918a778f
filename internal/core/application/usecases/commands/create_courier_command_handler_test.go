package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewCreateCourierCommand(
		kernel.NewUUID(), "Aziz Karimov", "+998901234567", 4.5)
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	uow.On("CourierRepository").Return(courierRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		courierRepo.On("Add", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateCourierCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	created := courierRepo.Calls[0].Arguments[1].(*courier.Courier)
	assert.True(t, created.ID().IsEqual(cmd.CourierID()))
	assert.Equal(t, "Aziz Karimov", created.Name())
	assert.False(t, created.IsOnline())
	assert.Nil(t, created.Location())

	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateCourierCommandHandler_Handle_NameIsRequired(t *testing.T) {
	_, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "", "", 4.5)

	require.ErrorIs(t, err, commands.ErrCourierNameIsRequired)
}

func TestCreateCourierCommandHandler_Handle_ValidationError(t *testing.T) {
	handler := commands.NewCreateCourierCommandHandler(new(MockCourierUoWFactory))

	err := handler.Handle(t.Context(), commands.CreateCourierCommand{})

	require.ErrorIs(t, err, commands.ErrCreateCourierCommandIsNotConstructed)
}
