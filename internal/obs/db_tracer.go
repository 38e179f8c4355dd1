package obs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const maxStatementLen = 300

type queryStartKey struct{}

type queryStart struct {
	span trace.Span
	at   time.Time
	sql  string
}

// DBTracer is a pgx.QueryTracer that opens a span per statement and logs
// statements slower than SlowQuery. A zero SlowQuery disables the log.
type DBTracer struct {
	Logger    zerolog.Logger
	SlowQuery time.Duration
	now       func() time.Time
}

var _ pgx.QueryTracer = (*DBTracer)(nil)

// TraceQueryStart implements pgx.QueryTracer.
func (t *DBTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	stmt := statement(data.SQL)
	name, op := describe(stmt)
	ctx, span := StartSpan(ctx, "db."+name,
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", op),
		attribute.String("db.statement", stmt),
	)
	return context.WithValue(ctx, queryStartKey{}, &queryStart{span: span, at: t.clock(), sql: stmt})
}

// TraceQueryEnd implements pgx.QueryTracer. A missing row is how catalog
// misses surface, so pgx.ErrNoRows leaves the span status unset.
func (t *DBTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(*queryStart)
	if !ok {
		return
	}
	defer start.span.End()

	start.span.SetAttributes(attribute.Int64("db.rows_affected", data.CommandTag.RowsAffected()))
	if data.Err != nil && !errors.Is(data.Err, pgx.ErrNoRows) {
		Fail(start.span, data.Err, "")
	}

	elapsed := t.clock().Sub(start.at)
	if t.SlowQuery <= 0 || elapsed < t.SlowQuery {
		return
	}
	t.Logger.Warn().
		Str("statement", start.sql).
		Int64("duration_ms", elapsed.Milliseconds()).
		Str("trace_id", start.span.SpanContext().TraceID().String()).
		Msg("slow query")
}

func (t *DBTracer) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

func statement(sql string) string {
	stmt := strings.Join(strings.Fields(sql), " ")
	if len(stmt) > maxStatementLen {
		return stmt[:maxStatementLen] + "..."
	}
	return stmt
}

// describe returns the span name and SQL verb. sqlc statements start with a
// "-- name: GetPaperStock :one" comment, which statement() folds onto the
// same line, and are named after the query.
func describe(stmt string) (name, op string) {
	fields := strings.Fields(stmt)
	if len(fields) > 4 && fields[0] == "--" && fields[1] == "name:" {
		return fields[2], strings.ToUpper(fields[4])
	}
	if len(fields) > 0 {
		op = strings.ToUpper(fields[0])
		return strings.ToLower(op), op
	}
	return "unknown", "UNKNOWN"
}
