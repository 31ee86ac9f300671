package postgres

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"task-manager-api/internal/domain/user"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Migrate the schema
	err = db.AutoMigrate(&UserSchema{}, &TaskSchema{})
	require.NoError(t, err)

	return db
}

func TestUserRepoPG_CreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, &user.User{
		Name:         "John Doe",
		Email:        "john@example.com",
		PasswordHash: "$2a$10$fakehash",
	})
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "John Doe", got.Name)
	assert.Equal(t, "john@example.com", got.Email)
	assert.Equal(t, "$2a$10$fakehash", got.PasswordHash)
}

func TestUserRepoPG_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))

	got, err := repo.GetByID(context.Background(), 999)

	// Missing rows are not an error at the repository layer
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepoPG_GetByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &user.User{
		Name:         "Jane Smith",
		Email:        "jane@example.com",
		PasswordHash: "$2a$10$fakehash",
	})
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jane Smith", got.Name)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepoPG_Create_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &user.User{
		Name:         "John Doe",
		Email:        "john@example.com",
		PasswordHash: "hash1",
	})
	require.NoError(t, err)

	// The unique index rejects a second row with the same email
	_, err = repo.Create(ctx, &user.User{
		Name:         "John Clone",
		Email:        "john@example.com",
		PasswordHash: "hash2",
	})
	assert.Error(t, err)
}

func TestUserRepoPG_Create_NilUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))

	_, err := repo.Create(context.Background(), nil)
	assert.Error(t, err)
}

func TestUserRepoPG_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))
	ctx := context.Background()

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, email := range emails {
		_, err := repo.Create(ctx, &user.User{Name: "User", Email: email, PasswordHash: "hash"})
		require.NoError(t, err)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}
