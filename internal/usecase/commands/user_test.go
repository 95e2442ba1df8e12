//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/DanSBol/shareit/internal/domain/user"
	"github.com/DanSBol/shareit/internal/pkg/errs"
	"github.com/DanSBol/shareit/internal/usecase/commands"
	"github.com/DanSBol/shareit/internal/usecase/queries"

	"github.com/stretchr/testify/require"
)

type fakeUserViews struct{}

func (f *fakeUserViews) Exists(context.Context, int64) (bool, error) {
	return false, nil
}

func (f *fakeUserViews) FindByID(context.Context, int64) (*queries.UserView, error) {
	return nil, errs.New("not reached in validation tests")
}

func (f *fakeUserViews) FindAll(context.Context) ([]queries.UserView, error) {
	return nil, nil
}

// All validation failures surface before a transaction is opened.
func TestUserCommands_Validation(t *testing.T) {
	ctx := context.Background()

	stringPtr := func(s string) *string { return &s }

	t.Run("create rejects a malformed email", func(t *testing.T) {
		cmds := commands.NewUserCommands(&fakeUserRepo{}, &fakeUserViews{}, nil)
		_, err := cmds.Create(ctx, "Alice", "not-an-email")
		require.ErrorIs(t, err, user.ErrInvalidEmail)
	})

	t.Run("create rejects a blank name", func(t *testing.T) {
		cmds := commands.NewUserCommands(&fakeUserRepo{}, &fakeUserViews{}, nil)
		_, err := cmds.Create(ctx, "   ", "alice@example.com")
		require.ErrorIs(t, err, user.ErrEmptyName)
	})

	t.Run("update validates a new email before anything else", func(t *testing.T) {
		cmds := commands.NewUserCommands(&fakeUserRepo{}, &fakeUserViews{}, nil)
		_, err := cmds.Update(ctx, 99, commands.UserPatch{Email: stringPtr("broken")})
		require.ErrorIs(t, err, user.ErrInvalidEmail)
	})

	t.Run("update requires an existing user", func(t *testing.T) {
		cmds := commands.NewUserCommands(&fakeUserRepo{existing: map[int64]bool{}}, &fakeUserViews{}, nil)
		_, err := cmds.Update(ctx, 99, commands.UserPatch{Name: stringPtr("Bob")})
		require.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("delete requires an existing user", func(t *testing.T) {
		cmds := commands.NewUserCommands(&fakeUserRepo{existing: map[int64]bool{}}, &fakeUserViews{}, nil)
		err := cmds.Delete(ctx, 99)
		require.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}
