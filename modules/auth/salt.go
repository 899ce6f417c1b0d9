package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/codingraft/FlowHaven/pkg/fieldcrypt"
	"github.com/codingraft/FlowHaven/pkg/pg"
)

// ErrSaltUnavailable indicates the user's encryption salt could not be read
// or provisioned.
var ErrSaltUnavailable = errors.New("auth.salt_unavailable")

// DB is the subset of pgxpool.Pool the salt provider needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SaltProvider manages the per-user encryption salt stored on the profile
// row. The salt is generated exactly once at signup and is immutable
// afterwards; it is not secret, it only makes key derivation unique per
// user. The single canonical column is users.encryption_salt.
type SaltProvider struct {
	db DB
}

// NewSaltProvider creates a salt provider over the users table.
func NewSaltProvider(db DB) *SaltProvider {
	return &SaltProvider{db: db}
}

// EnsureSalt returns the user's encryption salt, generating and persisting
// one if the profile does not have it yet. Concurrent callers converge on
// the same stored value: the update only lands when the column is still
// NULL, and the winning row is read back either way.
func (p *SaltProvider) EnsureSalt(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	encoded, err := p.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	if encoded != "" {
		salt, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: stored salt is not base64: %v", ErrSaltUnavailable, err)
		}
		return salt, nil
	}

	salt, err := fieldcrypt.GenerateSalt()
	if err != nil {
		return nil, errors.Join(ErrSaltUnavailable, err)
	}

	var stored string
	err = p.db.QueryRow(ctx, `
		UPDATE users
		SET encryption_salt = COALESCE(encryption_salt, $2)
		WHERE id = $1
		RETURNING encryption_salt`,
		userID, base64.StdEncoding.EncodeToString(salt),
	).Scan(&stored)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: unknown user %s", ErrSaltUnavailable, userID)
		}
		return nil, err
	}

	winner, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return nil, fmt.Errorf("%w: stored salt is not base64: %v", ErrSaltUnavailable, err)
	}
	return winner, nil
}

func (p *SaltProvider) fetch(ctx context.Context, userID uuid.UUID) (string, error) {
	var encoded *string
	err := p.db.QueryRow(ctx,
		`SELECT encryption_salt FROM users WHERE id = $1`, userID,
	).Scan(&encoded)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return "", fmt.Errorf("%w: unknown user %s", ErrSaltUnavailable, userID)
		}
		return "", err
	}
	if encoded == nil {
		return "", nil
	}
	return *encoded, nil
}
