package dictionary

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/destinyelysse/A-Word-Game/internal/game"
)

// DefaultTimeout bounds a single lookup when none is configured.
const DefaultTimeout = 2 * time.Second

// SQLite is a dictionary stored in the dictionary table (see assets/sql).
// Lookups that fail or time out are logged and treated as unknown words.
type SQLite struct {
	db       *sql.DB
	language string
	timeout  time.Duration
}

// NewSQLite wraps an already migrated database.
func NewSQLite(db *sql.DB, lang string, timeout time.Duration) *SQLite {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &SQLite{db: db, language: baseLanguage(lang), timeout: timeout}
}

// Import loads words for the dictionary's language in a single transaction.
// A list with the same checksum as a previous import is skipped.
// It returns the number of newly inserted words.
func (d *SQLite) Import(ctx context.Context, words []string) (int, error) {
	sum := checksum(words)
	var seen int
	err := d.db.QueryRowContext(ctx,
		`SELECT 1 FROM dictionary_imports WHERE language=? AND checksum=?`, d.language, sum,
	).Scan(&seen)
	if err == nil {
		log.Info().Str("language", d.language).Msg("dictionary already imported")
		return 0, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("query dictionary_imports: %w", err)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO dictionary (language, word) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, w := range words {
		w = game.Normalize(w)
		if w == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, d.language, w)
		if err != nil {
			return 0, fmt.Errorf("insert %q: %w", w, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO dictionary_imports (language, checksum, words) VALUES (?, ?, ?)`,
		d.language, sum, len(words),
	); err != nil {
		return 0, fmt.Errorf("record import: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	log.Info().Str("language", d.language).Int("inserted", inserted).Msg("dictionary imported")
	return inserted, nil
}

// IsKnownWord looks word up for lang, bounded by the configured timeout.
func (d *SQLite) IsKnownWord(word, lang string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	var one int
	err := d.db.QueryRowContext(ctx,
		`SELECT 1 FROM dictionary WHERE language=? AND word=?`,
		baseLanguage(lang), game.Normalize(word),
	).Scan(&one)
	switch {
	case err == nil:
		return true
	case errors.Is(err, sql.ErrNoRows):
		return false
	default:
		log.Warn().Err(err).Str("word", word).Msg("dictionary lookup failed")
		return false
	}
}

// Size returns the number of words stored for the dictionary's language.
func (d *SQLite) Size(ctx context.Context) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM dictionary WHERE language=?`, d.language).Scan(&n)
	return n, err
}

// checksum identifies an exact word list, order included.
func checksum(words []string) string {
	h := sha256.New()
	for _, w := range words {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
