package adminsetting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hangwa-be/internal/logger"

	"go.uber.org/zap"
)

const singletonID = 1

type Repository interface {
	Get(ctx context.Context) (*AdminSettings, error)
	Save(ctx context.Context, s AdminSettings) (*AdminSettings, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Get returns empty defaults when the row has never been written.
func (r *repository) Get(ctx context.Context) (*AdminSettings, error) {
	var s AdminSettings
	err := r.db.QueryRowContext(ctx, `
		SELECT sms_sender_phone, business_name, bank_name, bank_account, account_holder, updated_at
		FROM admin_settings WHERE id = $1
	`, singletonID).Scan(
		&s.SMSSenderPhone, &s.BusinessName, &s.BankName, &s.BankAccount, &s.AccountHolder, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &AdminSettings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get admin settings: %w", err)
	}
	return &s, nil
}

func (r *repository) Save(ctx context.Context, s AdminSettings) (*AdminSettings, error) {
	var saved AdminSettings
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO admin_settings (id, sms_sender_phone, business_name, bank_name, bank_account, account_holder, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO UPDATE
		SET sms_sender_phone = EXCLUDED.sms_sender_phone,
		    business_name = EXCLUDED.business_name,
		    bank_name = EXCLUDED.bank_name,
		    bank_account = EXCLUDED.bank_account,
		    account_holder = EXCLUDED.account_holder,
		    updated_at = NOW()
		RETURNING sms_sender_phone, business_name, bank_name, bank_account, account_holder, updated_at
	`,
		singletonID,
		strings.TrimSpace(s.SMSSenderPhone),
		strings.TrimSpace(s.BusinessName),
		strings.TrimSpace(s.BankName),
		strings.TrimSpace(s.BankAccount),
		strings.TrimSpace(s.AccountHolder),
	).Scan(
		&saved.SMSSenderPhone, &saved.BusinessName, &saved.BankName, &saved.BankAccount, &saved.AccountHolder, &saved.UpdatedAt,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to save admin settings", zap.Error(err))
		return nil, fmt.Errorf("save admin settings: %w", err)
	}

	logger.FromCtx(ctx).Info("admin settings saved")
	return &saved, nil
}
