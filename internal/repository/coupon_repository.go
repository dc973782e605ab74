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
	"videepat_foods/internal/storage/postgresql"
)

const couponsTable = "coupons"

var couponColumns = []string{
	"id", "code", "discount_type", "discount_value", "min_cart_value", "expiry_date",
	"usage_limit", "usage_count", "is_active", "applied_to_type", "applied_to_ids",
	"created_at", "updated_at",
}

type CouponRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewCouponRepository(db *pgxpool.Pool) *CouponRepo {
	return &CouponRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *CouponRepo) CreateCoupon(ctx context.Context, c models.Coupon) (models.Coupon, error) {
	const op = "repository.coupon_repository.CreateCoupon"

	scope := c.AppliedTo.Type
	if scope == "" {
		scope = models.ScopeAll
	}

	now := time.Now().UTC()
	query, args, err := r.sb.Insert(couponsTable).
		Columns(couponColumns...).
		Values(
			uuid.NewString(), models.NormalizeCode(c.Code), c.DiscountType, c.DiscountValue, c.MinCartValue,
			c.ExpiryDate, c.UsageLimit, c.UsageCount, c.IsActive, scope,
			pq.Array(nonNilStrings(c.AppliedTo.IDs)), now, now,
		).
		Suffix("RETURNING " + strings.Join(couponColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Coupon{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanCoupon(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgresql.IsUniqueViolation(err) {
			return models.Coupon{}, fmt.Errorf("%s: %w", op, storage.ErrCouponCodeExists)
		}
		return models.Coupon{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// GetCouponByCode ищет купон без учёта регистра кода.
func (r *CouponRepo) GetCouponByCode(ctx context.Context, code string) (models.Coupon, error) {
	const op = "repository.coupon_repository.GetCouponByCode"

	query, args, err := r.sb.Select(couponColumns...).
		From(couponsTable).
		Where(sq.Eq{"code": models.NormalizeCode(code)}).
		ToSql()
	if err != nil {
		return models.Coupon{}, fmt.Errorf("%s: %w", op, err)
	}

	c, err := scanCoupon(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Coupon{}, fmt.Errorf("%s: %w", op, storage.ErrCouponNotFound)
		}
		return models.Coupon{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (r *CouponRepo) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	const op = "repository.coupon_repository.ListCoupons"

	query, args, err := r.sb.Select(couponColumns...).
		From(couponsTable).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	coupons := make([]models.Coupon, 0)
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		coupons = append(coupons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return coupons, nil
}

// IncrementUsage увеличивает счётчик, только если лимит ещё не исчерпан.
func (r *CouponRepo) IncrementUsage(ctx context.Context, id string) error {
	const op = "repository.coupon_repository.IncrementUsage"

	query, args, err := r.sb.Update(couponsTable).
		Set("usage_count", sq.Expr("usage_count + 1")).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Where(sq.Or{sq.Eq{"usage_limit": nil}, sq.Expr("usage_count < usage_limit")}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrCouponExhausted)
	}

	return nil
}

func scanCoupon(row pgx.Row) (models.Coupon, error) {
	var (
		c      models.Coupon
		expiry sql.NullTime
		limit  sql.NullInt32
	)

	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.DiscountType,
		&c.DiscountValue,
		&c.MinCartValue,
		&expiry,
		&limit,
		&c.UsageCount,
		&c.IsActive,
		&c.AppliedTo.Type,
		pq.Array(&c.AppliedTo.IDs),
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return models.Coupon{}, err
	}

	if expiry.Valid {
		t := expiry.Time
		c.ExpiryDate = &t
	}
	if limit.Valid {
		v := int(limit.Int32)
		c.UsageLimit = &v
	}

	return c, nil
}
