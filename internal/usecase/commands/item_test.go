//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/DanSBol/shareit/internal/domain/request"
	"github.com/DanSBol/shareit/internal/infra/db"
	"github.com/DanSBol/shareit/internal/pkg/clock"
	"github.com/DanSBol/shareit/internal/pkg/errs"
	"github.com/DanSBol/shareit/internal/usecase/commands"
	"github.com/DanSBol/shareit/internal/usecase/queries"

	"github.com/stretchr/testify/require"
)

type fakeRequestRepo struct {
	existing map[int64]bool
}

func (f *fakeRequestRepo) Create(context.Context, db.DBTX, *request.Request, time.Time) (int64, error) {
	return 0, errs.New("not reached in validation tests")
}

func (f *fakeRequestRepo) Exists(_ context.Context, id int64) (bool, error) {
	return f.existing[id], nil
}

type fakeCommentRepo struct{}

func (f *fakeCommentRepo) Create(context.Context, db.DBTX, int64, int64, string, time.Time) (*queries.CommentView, error) {
	return nil, errs.New("not reached in validation tests")
}

type fakeItemViews struct{}

func (f *fakeItemViews) FindByID(context.Context, int64) (*queries.ItemView, error) {
	return nil, errs.New("not reached in validation tests")
}

func (f *fakeItemViews) FindByOwner(context.Context, int64, queries.Page) ([]queries.ItemView, error) {
	return nil, nil
}

func (f *fakeItemViews) Search(context.Context, string, queries.Page) ([]queries.ItemView, error) {
	return nil, nil
}

func newItemCommandsFixture(bookings *fakeBookingRepo) commands.ItemCommands {
	items := &fakeItemRepo{snapshots: map[int64]*commands.ItemSnapshot{
		10: {ID: 10, OwnerID: 1, Name: "drill", Available: true},
	}}
	users := &fakeUserRepo{existing: map[int64]bool{1: true, 2: true}}
	requests := &fakeRequestRepo{existing: map[int64]bool{}}
	return commands.NewItemCommands(
		items, users, requests, bookings, &fakeCommentRepo{}, &fakeItemViews{},
		nil, clock.NewMockClock(cmdNow),
	)
}

func TestItemCommands_Create_Validation(t *testing.T) {
	ctx := context.Background()
	cmds := newItemCommandsFixture(&fakeBookingRepo{})

	t.Run("unknown owner", func(t *testing.T) {
		_, err := cmds.Create(ctx, 99, commands.CreateItemParams{Name: "drill", Description: "cordless", Available: true})
		require.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("unknown request reference", func(t *testing.T) {
		missing := int64(55)
		_, err := cmds.Create(ctx, 1, commands.CreateItemParams{
			Name: "drill", Description: "cordless", Available: true, RequestID: &missing,
		})
		require.ErrorIs(t, err, errs.ErrRequestNotFound)
	})
}

func TestItemCommands_OwnerGuard(t *testing.T) {
	ctx := context.Background()
	cmds := newItemCommandsFixture(&fakeBookingRepo{})

	name := "renamed"

	t.Run("update by a non-owner", func(t *testing.T) {
		_, err := cmds.Update(ctx, 2, 10, commands.ItemPatch{Name: &name})
		require.ErrorIs(t, err, errs.ErrNotOwner)
	})

	t.Run("update of a missing item", func(t *testing.T) {
		_, err := cmds.Update(ctx, 1, 55, commands.ItemPatch{Name: &name})
		require.ErrorIs(t, err, errs.ErrItemNotFound)
	})

	t.Run("delete by a non-owner", func(t *testing.T) {
		err := cmds.Delete(ctx, 2, 10)
		require.ErrorIs(t, err, errs.ErrNotOwner)
	})
}

func TestItemCommands_AddComment_Gate(t *testing.T) {
	ctx := context.Background()

	t.Run("blank text", func(t *testing.T) {
		cmds := newItemCommandsFixture(&fakeBookingRepo{})
		_, err := cmds.AddComment(ctx, 2, 10, "   ")
		require.ErrorIs(t, err, commands.ErrEmptyComment)
	})

	t.Run("unknown author", func(t *testing.T) {
		cmds := newItemCommandsFixture(&fakeBookingRepo{})
		_, err := cmds.AddComment(ctx, 99, 10, "nice")
		require.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("missing item", func(t *testing.T) {
		cmds := newItemCommandsFixture(&fakeBookingRepo{})
		_, err := cmds.AddComment(ctx, 2, 55, "nice")
		require.ErrorIs(t, err, errs.ErrItemNotFound)
	})

	t.Run("no finished approved booking", func(t *testing.T) {
		cmds := newItemCommandsFixture(&fakeBookingRepo{finished: false})
		_, err := cmds.AddComment(ctx, 2, 10, "nice")
		require.ErrorIs(t, err, errs.ErrNoFinishedBooking)
	})
}
