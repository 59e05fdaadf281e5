package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Code sequence scopes.
const (
	ScopeQuestion = "question"
	ScopePaper    = "paper"
)

var codePrefixes = map[string]string{
	ScopeQuestion: "Q",
	ScopePaper:    "PAP",
}

// NextCode claims the next per-school, per-month sequence value for the
// given scope and formats it as a human-readable code (Q2509001,
// PAP2509014, ...). The claim happens inside the caller's transaction via
// an upsert, so two concurrent inserts can never see the same value. The
// COUNT(*)+1 approach this replaces could.
func NextCode(tx *sql.Tx, schoolID, scope string, now time.Time) (string, error) {
	prefix, ok := codePrefixes[scope]
	if !ok {
		return "", fmt.Errorf("unknown code scope %q", scope)
	}

	year, month := now.Year(), int(now.Month())

	var seq int
	query := `INSERT INTO code_sequences (school_id, scope, year, month, seq)
			  VALUES ($1, $2, $3, $4, 1)
			  ON CONFLICT (school_id, scope, year, month)
			  DO UPDATE SET seq = code_sequences.seq + 1
			  RETURNING seq`
	err := tx.QueryRow(query, schoolID, scope, year, month).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("failed to claim code sequence: %v", err)
	}

	return FormatCode(prefix, year, month, seq), nil
}

// FormatCode renders a business code as <prefix><YY><MM><seq>, with the
// sequence zero-padded to three digits.
func FormatCode(prefix string, year, month, seq int) string {
	return fmt.Sprintf("%s%02d%02d%03d", prefix, year%100, month, seq)
}
