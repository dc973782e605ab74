package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/storage"
)

const productsTable = "products"

var productColumns = []string{
	"id", "name", "description", "price", "discount_price", "stock",
	"images", "category_ids", "attributes", "is_active", "created_at", "updated_at",
}

// ProductFilter фильтр выборки каталога. Пустые поля не ограничивают.
type ProductFilter struct {
	ActiveOnly bool
	CategoryID string
	IDs        []string
	Limit      uint64
}

type ProductRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ProductRepo) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	const op = "repository.product_repository.CreateProduct"

	now := time.Now().UTC()
	query, args, err := r.sb.Insert(productsTable).
		Columns(productColumns...).
		Values(
			uuid.NewString(), p.Name, p.Description, p.Price, p.DiscountPrice, p.Stock,
			pq.Array(nonNilStrings(p.Images)), pq.Array(nonNilStrings(p.CategoryIDs)), p.Attributes,
			p.IsActive, now, now,
		).
		Suffix("RETURNING " + strings.Join(productColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *ProductRepo) UpdateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	const op = "repository.product_repository.UpdateProduct"

	query, args, err := r.sb.Update(productsTable).
		Set("name", p.Name).
		Set("description", p.Description).
		Set("price", p.Price).
		Set("discount_price", p.DiscountPrice).
		Set("stock", p.Stock).
		Set("images", pq.Array(nonNilStrings(p.Images))).
		Set("category_ids", pq.Array(nonNilStrings(p.CategoryIDs))).
		Set("attributes", p.Attributes).
		Set("is_active", p.IsActive).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": p.ID}).
		Suffix("RETURNING " + strings.Join(productColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
		}
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *ProductRepo) GetProductByID(ctx context.Context, id string) (models.Product, error) {
	const op = "repository.product_repository.GetProductByID"

	query, args, err := r.sb.Select(productColumns...).
		From(productsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
		}
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (r *ProductRepo) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	const op = "repository.product_repository.ListProducts"

	builder := r.sb.Select(productColumns...).From(productsTable)
	if filter.ActiveOnly {
		builder = builder.Where(sq.Eq{"is_active": true})
	}
	if filter.CategoryID != "" {
		builder = builder.Where("? = ANY(category_ids)", filter.CategoryID)
	}
	if len(filter.IDs) > 0 {
		builder = builder.Where("id = ANY(?)", pq.Array(filter.IDs))
	}
	builder = builder.OrderBy("created_at DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

func (r *ProductRepo) DeleteProduct(ctx context.Context, id string) error {
	const op = "repository.product_repository.DeleteProduct"

	query, args, err := r.sb.Delete(productsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
	}

	return nil
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var (
		p        models.Product
		discount sql.NullFloat64
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&discount,
		&p.Stock,
		pq.Array(&p.Images),
		pq.Array(&p.CategoryIDs),
		&p.Attributes,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return models.Product{}, err
	}

	if discount.Valid {
		v := discount.Float64
		p.DiscountPrice = &v
	}

	return p, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
