package bus

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"graphstore/pkg/errors"
)

type fakeCommand struct {
	Value string
}

func (c fakeCommand) Validate() error {
	if c.Value == "" {
		return errors.NewInvalidArgumentError("value cannot be empty")
	}
	return nil
}

type otherCommand struct{}

func (otherCommand) Validate() error { return nil }

func TestCommandBus_DispatchesToRegisteredHandler(t *testing.T) {
	b := NewCommandBus()

	require.NoError(t, b.Register(fakeCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		return cmd.(fakeCommand).Value + "-handled", nil
	})))

	result, err := b.Send(context.Background(), fakeCommand{Value: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x-handled", result)
}

func TestCommandBus_ValidatesBeforeDispatch(t *testing.T) {
	b := NewCommandBus()

	var reached bool
	require.NoError(t, b.Register(fakeCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		reached = true
		return nil, nil
	})))

	_, err := b.Send(context.Background(), fakeCommand{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.False(t, reached, "invalid commands never reach their handler")
}

func TestCommandBus_UnregisteredCommandFails(t *testing.T) {
	b := NewCommandBus()

	_, err := b.Send(context.Background(), otherCommand{})
	assert.Error(t, err)
}

func TestCommandBus_DuplicateRegistrationFails(t *testing.T) {
	b := NewCommandBus()
	handler := CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		return nil, nil
	})

	require.NoError(t, b.Register(fakeCommand{}, handler))
	assert.Error(t, b.Register(fakeCommand{}, handler))
}

func TestPipeline_WrapsOutermostFirst(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
				order = append(order, name)
				return next.Handle(ctx, cmd)
			})
		}
	}

	pipeline := NewPipeline(mw("outer"), mw("inner"))
	handler := pipeline.Execute(CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		order = append(order, "handler")
		return nil, nil
	}))

	_, err := handler.Handle(context.Background(), otherCommand{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestLoggingMiddleware_PassesResultsAndErrors(t *testing.T) {
	mw := LoggingMiddleware(zap.NewNop())

	ok := mw(CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		return 42, nil
	}))
	result, err := ok.Handle(context.Background(), otherCommand{})
	require.NoError(t, err)
	assert.Equal(t, 42, result)

	boom := fmt.Errorf("handler failed")
	failing := mw(CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		return nil, boom
	}))
	_, err = failing.Handle(context.Background(), otherCommand{})
	assert.Equal(t, boom, err)
}
