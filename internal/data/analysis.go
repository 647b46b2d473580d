package data

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/lib/pq"

	"github.com/iWorld-y/press_radar/internal/biz"
)

type analysisRepo struct {
	data    *Data
	builder sq.StatementBuilderType
	log     *log.Helper
}

func NewAnalysisRepo(data *Data, logger log.Logger) biz.AnalysisRepo {
	return &analysisRepo{
		data:    data,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		log:     log.NewHelper(logger),
	}
}

func (r *analysisRepo) SaveAnalysis(ctx context.Context, rec *biz.AnalysisRecord) error {
	query, args, err := r.builder.
		Insert("analyses").
		Columns("title", "suggestions", "missing_count").
		Values(rec.Title, pq.Array(rec.Suggestions), rec.MissingCount).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return r.data.db.QueryRowContext(ctx, query, args...).Scan(&rec.ID)
}

func (r *analysisRepo) ListAnalyses(ctx context.Context, limit int) ([]*biz.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query, args, err := r.builder.
		Select("id", "title", "suggestions", "missing_count", "to_char(created_at, 'YYYY-MM-DD HH24:MI:SS')").
		From("analyses").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.data.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*biz.AnalysisRecord{}
	for rows.Next() {
		rec := &biz.AnalysisRecord{}
		var suggestions pq.StringArray
		if err := rows.Scan(&rec.ID, &rec.Title, &suggestions, &rec.MissingCount, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Suggestions = suggestions
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *analysisRepo) SimilarTitles(ctx context.Context, title string, limit int) ([]string, error) {
	if title == "" {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = 5
	}

	query, args, err := r.builder.
		Select("title").
		From("analyses").
		Where(sq.Expr("title % ?", title)).
		OrderByClause("similarity(title, ?) DESC", title).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.data.db.QueryContext(ctx, query, args...)
	if err != nil {
		// Most likely pg_trgm is unavailable; degrade to no matches.
		r.log.Warnf("similar-title query failed: %v", err)
		return []string{}, nil
	}
	defer rows.Close()

	titles := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}
