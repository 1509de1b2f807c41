package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vendaboard/models"
)

// PostgresStore implements every store interface on one pgx pool. The rows
// it reads are deposited by the external-system sync pipeline.
type PostgresStore struct {
	db       *pgxpool.Pool
	pageSize int
}

// NewPostgresStore wraps a pool. pageSize bounds each history page; values
// below 1 fall back to 1000.
func NewPostgresStore(db *pgxpool.Pool, pageSize int) *PostgresStore {
	if pageSize < 1 {
		pageSize = 1000
	}
	return &PostgresStore{db: db, pageSize: pageSize}
}

// Query returns one page of history rows, oldest first. hasMore is true when
// a full page came back, so callers keep paginating.
func (s *PostgresStore) Query(ctx context.Context, q HistoryQuery, page int) ([]models.HistoryRow, bool, error) {
	if len(q.EntityIDs) == 0 {
		return nil, false, nil
	}

	query := `
		SELECT record_date, amount, entity_id
		FROM sale_history
		WHERE entity_id = ANY($1) AND record_date BETWEEN $2 AND $3
		ORDER BY record_date, entity_id
		LIMIT $4 OFFSET $5
	`
	rows, err := s.db.Query(ctx, query, q.EntityIDs, q.Start, q.End, s.pageSize, page*s.pageSize)
	if err != nil {
		return nil, false, fmt.Errorf("querying sale history: %w", err)
	}
	defer rows.Close()

	out := make([]models.HistoryRow, 0, s.pageSize)
	for rows.Next() {
		var r models.HistoryRow
		if err := rows.Scan(&r.Date, &r.Amount, &r.EntityID); err != nil {
			return nil, false, fmt.Errorf("scanning sale history row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return out, len(out) == s.pageSize, nil
}

// LatestDate returns the newest record date among the entities, zero time
// if the store has nothing for them.
func (s *PostgresStore) LatestDate(ctx context.Context, entityIDs []string) (time.Time, error) {
	if len(entityIDs) == 0 {
		return time.Time{}, nil
	}
	var latest *time.Time
	err := s.db.QueryRow(ctx,
		`SELECT MAX(record_date) FROM sale_history WHERE entity_id = ANY($1)`,
		entityIDs,
	).Scan(&latest)
	if err != nil {
		return time.Time{}, fmt.Errorf("querying latest record date: %w", err)
	}
	if latest == nil {
		return time.Time{}, nil
	}
	return *latest, nil
}

// MonthlyTotal reads the pre-aggregated official total for a month.
func (s *PostgresStore) MonthlyTotal(ctx context.Context, entityIDs []string, year int, month time.Month) (float64, error) {
	if len(entityIDs) == 0 {
		return 0, nil
	}
	var total float64
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0)
		FROM monthly_summaries
		WHERE entity_id = ANY($1) AND year = $2 AND month = $3
	`, entityIDs, year, int(month)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("querying monthly summary: %w", err)
	}
	return total, nil
}

// StockFor reads all stock records of an item, optionally narrowed to one
// company.
func (s *PostgresStore) StockFor(ctx context.Context, itemID string, companyID string) ([]models.StockRow, error) {
	query := `
		SELECT quantity, min_quantity, COALESCE(conversion_factor, 1), COALESCE(purchase_unit, '')
		FROM stock_records
		WHERE item_id = $1
	`
	args := []interface{}{itemID}
	if companyID != "" {
		query += " AND company_id = $2"
		args = append(args, companyID)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying stock records: %w", err)
	}
	defer rows.Close()

	out := []models.StockRow{}
	for rows.Next() {
		var r models.StockRow
		if err := rows.Scan(&r.Quantity, &r.MinQuantity, &r.ConversionFactor, &r.PurchaseUnit); err != nil {
			return nil, fmt.Errorf("scanning stock row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetCompany fetches one company.
func (s *PostgresStore) GetCompany(ctx context.Context, companyID string) (*models.Company, error) {
	var c models.Company
	err := s.db.QueryRow(ctx, `
		SELECT id, group_id, name, is_active, created_at, updated_at
		FROM companies WHERE id = $1
	`, companyID).Scan(&c.ID, &c.GroupID, &c.Name, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying company: %w", err)
	}
	return &c, nil
}

// GroupExists reports whether a group id is known.
func (s *PostgresStore) GroupExists(ctx context.Context, groupID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM groups WHERE id = $1)`, groupID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("querying group: %w", err)
	}
	return exists, nil
}

// SaleProductIDs maps a company to its synced sale-product ids.
func (s *PostgresStore) SaleProductIDs(ctx context.Context, companyID string) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT sale_product_id FROM company_sale_products WHERE company_id = $1`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sale product mapping: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RawMaterials lists a group's raw materials with their sale-product links.
func (s *PostgresStore) RawMaterials(ctx context.Context, groupID string) ([]models.TrackableItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, group_id, name, unit, COALESCE(loss_factor, 0)
		FROM raw_materials
		WHERE group_id = $1
		ORDER BY name
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("querying raw materials: %w", err)
	}
	defer rows.Close()

	items := []models.TrackableItem{}
	for rows.Next() {
		var it models.TrackableItem
		it.Kind = models.ItemRawMaterial
		if err := rows.Scan(&it.ID, &it.GroupID, &it.Name, &it.Unit, &it.LossFactor); err != nil {
			return nil, fmt.Errorf("scanning raw material: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		links, err := s.itemLinks(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Links = links
	}
	return items, nil
}

func (s *PostgresStore) itemLinks(ctx context.Context, itemID string) ([]models.ProductLink, error) {
	rows, err := s.db.Query(ctx, `
		SELECT sale_product_id, COALESCE(quantity_per_unit, 1)
		FROM raw_material_links
		WHERE raw_material_id = $1
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("querying material links: %w", err)
	}
	defer rows.Close()

	links := []models.ProductLink{}
	for rows.Next() {
		var l models.ProductLink
		if err := rows.Scan(&l.SaleProductID, &l.QuantityPerUnit); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// ResaleProducts lists a group's resale products. Each maps 1:1 to a synced
// sale product.
func (s *PostgresStore) ResaleProducts(ctx context.Context, groupID string) ([]models.TrackableItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, group_id, name, unit, sale_product_id
		FROM resale_products
		WHERE group_id = $1
		ORDER BY name
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("querying resale products: %w", err)
	}
	defer rows.Close()

	items := []models.TrackableItem{}
	for rows.Next() {
		var it models.TrackableItem
		var saleProductID string
		it.Kind = models.ItemResale
		if err := rows.Scan(&it.ID, &it.GroupID, &it.Name, &it.Unit, &saleProductID); err != nil {
			return nil, fmt.Errorf("scanning resale product: %w", err)
		}
		it.Links = []models.ProductLink{{SaleProductID: saleProductID, QuantityPerUnit: 1}}
		items = append(items, it)
	}
	return items, rows.Err()
}
