package dashboard

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	MembersByStatus(ctx context.Context) ([]MemberStatusCount, error)
	MemberVisitCount(ctx context.Context, memberID int, from, to time.Time) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) MembersByStatus(ctx context.Context) ([]MemberStatusCount, error) {
	var counts []MemberStatusCount
	query := `
		SELECT membership_status AS status, COUNT(*) AS count
		FROM members
		GROUP BY membership_status
		ORDER BY membership_status
	`
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *repository) MemberVisitCount(ctx context.Context, memberID int, from, to time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM visits
		WHERE member_id = $1 AND visit_date >= $2 AND visit_date <= $3
	`
	if err := r.db.GetContext(ctx, &count, query, memberID, from, to); err != nil {
		return 0, err
	}
	return count, nil
}
