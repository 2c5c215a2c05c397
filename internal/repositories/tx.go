package repositories

import "context"

// WithTx runs fn in a transaction opened on b. The transaction is committed
// when fn succeeds and rolled back when fn fails or panics; a panic is
// re-raised afterwards. Exactly one of Commit or Rollback is attempted, and
// the session is released once on every path. A failed commit is returned
// as is. Rollback failures are dropped so they never mask the original error.
func WithTx(ctx context.Context, b TxBeginner, fn func(tx ProductTx) error) (err error) {
	tx, err := b.Begin(ctx)
	if err != nil {
		return err
	}

	committing := false
	defer func() {
		if p := recover(); p != nil {
			if !committing {
				_ = tx.Rollback()
			}
			_ = tx.Release()
			panic(p)
		}
		if err != nil && !committing {
			_ = tx.Rollback()
		}
		_ = tx.Release()
	}()

	if err = fn(tx); err != nil {
		return err
	}
	committing = true
	return tx.Commit()
}
