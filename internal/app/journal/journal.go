// Package journal 将连通性状态变更持久化到 SQLite
//
// Journal 订阅事件总线上的 types.EvtStatusChanged，每次状态变更写入一行，
// 超出保留数量的旧记录在写入时裁剪。
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// 注册 "sqlite" 驱动
	_ "modernc.org/sqlite"

	"github.com/dep2p/go-connectivity/pkg/lib/log"
	"github.com/dep2p/go-connectivity/pkg/types"
)

var logger = log.Logger("app/journal")

// ErrClosed 日志已关闭
var ErrClosed = errors.New("journal closed")

const schema = `
CREATE TABLE IF NOT EXISTS transitions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    round_id TEXT NOT NULL,
    previous TEXT NOT NULL,
    current TEXT NOT NULL,
    successes INTEGER NOT NULL,
    total INTEGER NOT NULL,
    ratio REAL NOT NULL,
    timestamp INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transitions_timestamp ON transitions(timestamp);
`

// Entry 一条状态变更记录
type Entry struct {
	ID        int64        `json:"id"`
	RoundID   string       `json:"round_id"`
	Previous  types.Status `json:"previous"`
	Current   types.Status `json:"current"`
	Successes int          `json:"successes"`
	Total     int          `json:"total"`

	// Ratio 成功占比（0-100）
	Ratio     float64   `json:"ratio"`
	Timestamp time.Time `json:"timestamp"`
}

// Journal SQLite 状态变更日志
type Journal struct {
	db     *sql.DB
	retain int
}

// Open 打开（必要时创建）数据库
//
// retain 为最多保留的记录数，0 表示不裁剪。
func Open(path string, retain int) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal %q: %w", path, err)
	}
	// 单连接，避免 SQLITE_BUSY 与内存库各连接互不可见
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		logger.Debug("启用 WAL 失败", "err", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}

	if retain < 0 {
		retain = 0
	}
	return &Journal{db: db, retain: retain}, nil
}

// Record 写入一次状态变更
func (j *Journal) Record(ctx context.Context, evt types.EvtStatusChanged) error {
	ts := evt.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	ratio := types.PercentageOf(evt.Successes, evt.Total).Value()

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO transitions (round_id, previous, current, successes, total, ratio, timestamp)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		evt.RoundID, evt.Previous.String(), evt.Current.String(),
		evt.Successes, evt.Total, ratio, ts.UnixNano())
	if err != nil {
		return j.wrap("insert transition", err)
	}

	if j.retain > 0 {
		_, err = j.db.ExecContext(ctx,
			`DELETE FROM transitions WHERE id <= (
                 SELECT id FROM transitions ORDER BY id DESC LIMIT 1 OFFSET ?)`,
			j.retain)
		if err != nil {
			return j.wrap("prune transitions", err)
		}
	}
	return nil
}

// Recent 返回最近 n 条记录，新的在前
func (j *Journal) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, round_id, previous, current, successes, total, ratio, timestamp
         FROM transitions ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, j.wrap("query transitions", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e         Entry
			prev, cur string
			ts        int64
		)
		if err := rows.Scan(&e.ID, &e.RoundID, &prev, &cur, &e.Successes, &e.Total, &e.Ratio, &ts); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		if err := e.Previous.UnmarshalText([]byte(prev)); err != nil {
			return nil, err
		}
		if err := e.Current.UnmarshalText([]byte(cur)); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(0, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count 当前记录数
func (j *Journal) Count(ctx context.Context) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transitions`).Scan(&n); err != nil {
		return 0, j.wrap("count transitions", err)
	}
	return n, nil
}

// Close 关闭数据库
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) wrap(op string, err error) error {
	if errors.Is(err, sql.ErrConnDone) {
		return ErrClosed
	}
	return fmt.Errorf("%s: %w", op, err)
}
