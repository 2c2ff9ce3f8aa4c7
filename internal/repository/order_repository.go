package repository

import (
	"context"
	"fmt"

	"copyshop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// Create persists a new order with its lines and initial history in a
// single transaction.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, customer_id, created_at, discount_percent, state, correction_reason, note, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, orderQuery,
		order.ID,
		order.CustomerID,
		order.CreatedAt,
		order.DiscountPercent,
		string(order.State),
		order.CorrectionReason,
		order.Note,
		order.Version,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to insert order")
		return fmt.Errorf("failed to insert order: %w", err)
	}

	lineQuery := `
		INSERT INTO order_lines (id, order_id, position, kind, quantity, unit_price, product_id, name, page_count, format, color, file_ref, file_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	batch := &pgx.Batch{}
	for i, line := range order.Lines {
		batch.Queue(lineQuery,
			line.ID,
			order.ID,
			i,
			string(line.Kind),
			line.Quantity,
			line.UnitPrice.String(),
			line.ProductID,
			line.Name,
			line.PageCount,
			string(line.Format),
			line.Color,
			line.FileRef,
			line.FileName,
		)
	}
	for i, change := range order.History {
		batch.Queue(
			`INSERT INTO order_history (order_id, seq, at, state, reason) VALUES ($1, $2, $3, $4, $5)`,
			order.ID, i, change.At, string(change.State), change.Reason,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			r.logger.Error().
				Err(err).
				Str("order_id", order.ID.String()).
				Msg("failed to insert order lines or history")
			return fmt.Errorf("failed to insert order details: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Int("line_count", len(order.Lines)).
		Msg("order created successfully")

	return nil
}

// GetByID rehydrates an order with its lines and ordered history.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	orderQuery := `
		SELECT id, customer_id, created_at, discount_percent, state, correction_reason, note, version
		FROM orders
		WHERE id = $1
	`

	var (
		order model.Order
		state string
	)
	err := r.pool.QueryRow(ctx, orderQuery, id).Scan(
		&order.ID,
		&order.CustomerID,
		&order.CreatedAt,
		&order.DiscountPercent,
		&state,
		&order.CorrectionReason,
		&order.Note,
		&order.Version,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	order.State = model.OrderState(state)

	if order.Lines, err = r.loadLines(ctx, id); err != nil {
		return nil, err
	}
	if order.History, err = r.loadHistory(ctx, id); err != nil {
		return nil, err
	}

	return &order, nil
}

// ListByCustomer returns a customer's orders, newest first.
func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	query := `
		SELECT id, customer_id, created_at, discount_percent, state, correction_reason, note, version
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to query customer orders")
		return nil, fmt.Errorf("failed to query customer orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var (
			order model.Order
			state string
		)
		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.CreatedAt,
			&order.DiscountPercent,
			&state,
			&order.CorrectionReason,
			&order.Note,
			&order.Version,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.State = model.OrderState(state)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	for i := range orders {
		if orders[i].Lines, err = r.loadLines(ctx, orders[i].ID); err != nil {
			return nil, err
		}
		if orders[i].History, err = r.loadHistory(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// UpdateState writes the order's state fields and newest history entry,
// guarded by the version the caller read.
func (r *orderRepository) UpdateState(ctx context.Context, order *model.Order, expectedVersion int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	updateQuery := `
		UPDATE orders
		SET state = $1, correction_reason = $2, version = version + 1
		WHERE id = $3 AND version = $4
	`

	tag, err := tx.Exec(ctx, updateQuery,
		string(order.State),
		order.CorrectionReason,
		order.ID,
		expectedVersion,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to update order state")
		return fmt.Errorf("failed to update order state: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, order.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check order existence: %w", err)
		}
		if !exists {
			return model.ErrOrderNotFound
		}
		r.logger.Warn().
			Str("order_id", order.ID.String()).
			Int64("expected_version", expectedVersion).
			Msg("lost state update race")
		return model.ErrConflict
	}

	newest := order.History[len(order.History)-1]
	_, err = tx.Exec(ctx,
		`INSERT INTO order_history (order_id, seq, at, state, reason) VALUES ($1, $2, $3, $4, $5)`,
		order.ID, len(order.History)-1, newest.At, string(newest.State), newest.Reason,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to append history entry")
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit state update: %w", err)
	}

	order.Version = expectedVersion + 1

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("state", string(order.State)).
		Msg("order state updated")

	return nil
}

// loadLines fetches an order's lines in their original cart order.
func (r *orderRepository) loadLines(ctx context.Context, orderID uuid.UUID) ([]model.LineItem, error) {
	query := `
		SELECT id, kind, quantity, unit_price::text, product_id, name, page_count, format, color, file_ref, file_name
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query order lines")
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	var lines []model.LineItem
	for rows.Next() {
		var (
			line     model.LineItem
			kind     string
			format   string
			rawPrice string
		)
		err := rows.Scan(
			&line.ID,
			&kind,
			&line.Quantity,
			&rawPrice,
			&line.ProductID,
			&line.Name,
			&line.PageCount,
			&format,
			&line.Color,
			&line.FileRef,
			&line.FileName,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order line row")
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}

		line.Kind = model.LineKind(kind)
		line.Format = model.PrintFormat(format)
		if line.UnitPrice, err = decimal.NewFromString(rawPrice); err != nil {
			return nil, fmt.Errorf("failed to parse line unit price %q: %w", rawPrice, err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order lines: %w", err)
	}
	return lines, nil
}

// loadHistory fetches an order's state history in transition order.
func (r *orderRepository) loadHistory(ctx context.Context, orderID uuid.UUID) ([]model.StateChange, error) {
	query := `
		SELECT at, state, reason
		FROM order_history
		WHERE order_id = $1
		ORDER BY seq, at
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query order history")
		return nil, fmt.Errorf("failed to query order history: %w", err)
	}
	defer rows.Close()

	var history []model.StateChange
	for rows.Next() {
		var (
			change model.StateChange
			state  string
		)
		if err := rows.Scan(&change.At, &state, &change.Reason); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan history row")
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		change.State = model.OrderState(state)
		history = append(history, change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order history: %w", err)
	}
	return history, nil
}
