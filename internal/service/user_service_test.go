package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, created, err := f.users.CreateUser(ctx, &CreateUserRequest{ID: "user_new", Email: "new@shop.test", Name: "New"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "user_new", user.ID)

	again, created, err := f.users.CreateUser(ctx, &CreateUserRequest{ID: "user_new", Email: "new@shop.test", Name: "Renamed"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "New", again.Name)
}

func TestCreateUserRejectsEmailOfAnotherUser(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.users.CreateUser(context.Background(), &CreateUserRequest{ID: "user_dup", Email: owner + "@shop.test", Name: "Dup"})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)

	_, err = f.users.Me(context.Background(), "user_dup")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture(t)
	var verr *ValidationError

	_, _, err := f.users.CreateUser(context.Background(), &CreateUserRequest{ID: "user_x", Name: "X"})
	assert.ErrorAs(t, err, &verr)

	_, _, err = f.users.CreateUser(context.Background(), &CreateUserRequest{ID: " ", Email: "x@shop.test", Name: "X"})
	assert.ErrorAs(t, err, &verr)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.DeleteUser(ctx, stranger))

	_, err := f.users.Me(ctx, stranger)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var nf *NotFoundError
	assert.ErrorAs(t, f.users.DeleteUser(ctx, stranger), &nf)

	var verr *ValidationError
	assert.ErrorAs(t, f.users.DeleteUser(ctx, ""), &verr)
}

func TestMe(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.Me(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, owner+"@shop.test", user.Email)
}
