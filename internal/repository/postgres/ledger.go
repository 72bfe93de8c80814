package postgres

import (
	"context"
	"time"

	"reuse-loop-backend/internal/domain"
)

type ledgerRepository struct {
	db dbtx
}

func (r *ledgerRepository) CreateTransaction(ctx context.Context, tx *domain.PointsTransaction) error {
	query := `INSERT INTO points_transactions (user_id, amount, type, reference, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	if err := r.db.QueryRowContext(ctx, query, tx.UserID, tx.Amount, tx.Type, tx.Reference, tx.Description, now).Scan(&tx.ID); err != nil {
		return err
	}
	tx.CreatedOn = now
	return nil
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, userID domain.UserID, page, pageSize int32) ([]domain.PointsTransaction, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, user_id, amount, type, reference, description, created_on
	          FROM points_transactions WHERE user_id = $1 ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`

	var count int32
	countQuery := `SELECT count(*) FROM points_transactions WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.PointsTransaction
	for rows.Next() {
		var tx domain.PointsTransaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Type, &tx.Reference, &tx.Description, &tx.CreatedOn); err != nil {
			return nil, 0, err
		}
		txs = append(txs, tx)
	}
	return txs, count, rows.Err()
}
