package credential

import (
	"context"
	"fmt"

	"reset-password/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const updatePasswordSQL = `UPDATE auth.users
	SET encrypted_password = $1, updated_at = now()
	WHERE id = $2`

// 測試可覆寫
var generateFromPassword = bcrypt.GenerateFromPassword

// PostgresStore 自架部署時直接寫入 auth.users.encrypted_password (bcrypt)
type PostgresStore struct {
	db   database.DB
	cost int
}

func NewPostgresStore(db database.DB, cost int) *PostgresStore {
	return &PostgresStore{db: db, cost: cost}
}

func (s *PostgresStore) SetPassword(ctx context.Context, userID, newPassword string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return ErrUserNotFound()
	}

	hash, err := generateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return fmt.Errorf("SetPassword: hash: %w", err)
	}

	tag, err := s.db.Exec(ctx, updatePasswordSQL, string(hash), id.String())
	if err != nil {
		return fmt.Errorf("SetPassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound()
	}
	return nil
}
