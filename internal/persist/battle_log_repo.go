package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BattleLogEntry is one recorded battle event. Seq orders entries within a
// battle; Kind names the event type ("damage", "killed", …).
type BattleLogEntry struct {
	BattleID  uuid.UUID
	Round     int
	Seq       int
	Kind      string
	Actor     string
	Target    string
	Amount    int
	Detail    string
	CreatedAt time.Time
}

type BattleLogRepo struct {
	db *DB
}

func NewBattleLogRepo(db *DB) *BattleLogRepo {
	return &BattleLogRepo{db: db}
}

// WriteBatch inserts all entries in a single transaction. Either every entry
// is stored or none is.
func (r *BattleLogRepo) WriteBatch(ctx context.Context, entries []BattleLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("battle log begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO battle_log (battle_id, round, seq, kind, actor, target, amount, detail)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			e.BattleID.String(), e.Round, e.Seq, e.Kind, e.Actor, e.Target, e.Amount, e.Detail,
		); err != nil {
			return fmt.Errorf("battle log insert: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("battle log commit: %w", err)
	}
	return nil
}

// LoadBattle returns every entry of one battle in sequence order.
func (r *BattleLogRepo) LoadBattle(ctx context.Context, battleID uuid.UUID) ([]BattleLogEntry, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT battle_id::text, round, seq, kind, actor, target, amount, detail, created_at
		 FROM battle_log
		 WHERE battle_id = $1
		 ORDER BY seq`, battleID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("battle log query: %w", err)
	}
	defer rows.Close()

	var result []BattleLogEntry
	for rows.Next() {
		var (
			e  BattleLogEntry
			id string
		)
		if err := rows.Scan(&id, &e.Round, &e.Seq, &e.Kind, &e.Actor, &e.Target, &e.Amount, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("battle log scan: %w", err)
		}
		if e.BattleID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("battle log id %q: %w", id, err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// DeleteBefore prunes entries older than cutoff and returns how many went.
func (r *BattleLogRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM battle_log WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("battle log prune: %w", err)
	}
	return tag.RowsAffected(), nil
}
