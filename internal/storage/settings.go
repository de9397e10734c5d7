package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// Preference keys. Settings live in a small key-value table so they share
// the same durable store as the ledger.
const (
	settingCurrency = "currency_symbol"
	settingTheme    = "theme_mode"

	DefaultCurrencySymbol = "$"
	DefaultThemeMode      = "SYSTEM"
)

// CurrencySymbol returns the stored currency symbol, defaulting to "$".
func (r *SQLiteRepository) CurrencySymbol(ctx context.Context) (string, error) {
	return r.setting(ctx, settingCurrency, DefaultCurrencySymbol)
}

// ThemeMode returns the stored theme mode, defaulting to "SYSTEM".
func (r *SQLiteRepository) ThemeMode(ctx context.Context) (string, error) {
	return r.setting(ctx, settingTheme, DefaultThemeMode)
}

func (r *SQLiteRepository) SaveCurrency(ctx context.Context, symbol string) error {
	return r.saveSetting(ctx, settingCurrency, symbol)
}

func (r *SQLiteRepository) SaveTheme(ctx context.Context, mode string) error {
	return r.saveSetting(ctx, settingTheme, mode)
}

func (r *SQLiteRepository) setting(ctx context.Context, key, fallback string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) saveSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	slog.InfoContext(ctx, "Setting saved", "key", key)
	return nil
}
