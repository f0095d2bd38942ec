package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/go-content-portal/internal/storage"
)

// Find выполняет запрос к одной коллекции и возвращает сырые записи.
//
// Особенности:
//   - имена коллекции и колонок экранируются как идентификаторы;
//   - значения передаются только плейсхолдерами;
//   - некорректный формат значения (например, не-UUID в колонке id)
//     трактуется как «нет такой записи» -> storage.ErrNotFound;
//   - несуществующая колонка/таблица -> storage.ErrInvalidQuery.
func (s *Storage) Find(ctx context.Context, q storage.Query) ([]storage.Record, error) {
	const op = "storage.postgres.Find"

	sql, args, err := buildSelect(q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapPgError(err))
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, mapPgError(err))
	}

	out := make([]storage.Record, 0, len(maps))
	for _, m := range maps {
		out = append(out, storage.Record(m))
	}

	return out, nil
}

// buildSelect собирает SQL и аргументы для storage.Query.
//
//	SELECT * FROM "news"
//	WHERE "status" = $1 AND "region" = $2
//	  AND ("title"::text ILIKE $3 OR "summary"::text ILIKE $3)
//	ORDER BY "publish_date" DESC NULLS LAST
//	LIMIT $4
func buildSelect(q storage.Query) (string, []any, error) {
	if strings.TrimSpace(q.Collection) == "" {
		return "", nil, fmt.Errorf("empty collection: %w", storage.ErrInvalidQuery)
	}

	var (
		sb    strings.Builder
		args  []any
		conds []string
	)

	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	sb.WriteString("SELECT * FROM ")
	sb.WriteString(ident(q.Collection))

	for _, f := range q.Filters {
		if f.Column == "" {
			return "", nil, fmt.Errorf("empty filter column: %w", storage.ErrInvalidQuery)
		}

		switch f.Op {
		case storage.OpEq:
			conds = append(conds, ident(f.Column)+" = "+next(f.Value))
		case storage.OpNeq:
			conds = append(conds, ident(f.Column)+" IS DISTINCT FROM "+next(f.Value))
		default:
			return "", nil, fmt.Errorf("unsupported operator %d: %w", f.Op, storage.ErrInvalidQuery)
		}
	}

	if q.Match != nil {
		if len(q.Match.Columns) == 0 {
			return "", nil, fmt.Errorf("match without columns: %w", storage.ErrInvalidQuery)
		}

		ph := next(q.Match.Pattern)
		ors := make([]string, 0, len(q.Match.Columns))
		for _, c := range q.Match.Columns {
			ors = append(ors, ident(c)+"::text ILIKE "+ph)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	if q.Order != nil && q.Order.Column != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(ident(q.Order.Column))
		if q.Order.Desc {
			sb.WriteString(" DESC NULLS LAST")
		} else {
			sb.WriteString(" ASC NULLS LAST")
		}
	}

	if q.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(next(q.Limit))
	}

	return sb.String(), args, nil
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// mapPgError переводит коды PostgreSQL в ошибки контракта storage.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.InvalidTextRepresentation:
		return storage.ErrNotFound
	case pgerrcode.UndefinedColumn, pgerrcode.UndefinedTable:
		return fmt.Errorf("%s: %w", pgErr.Message, storage.ErrInvalidQuery)
	default:
		return err
	}
}
