// File: internal/store/login_event.go
package store

import (
	"context"
	"fmt"

	"book-auth/internal/database"
	"book-auth/internal/model"
)

// InsertLoginEvent 新增一筆登入稽核紀錄，回填 ID 與 CreatedAt
func InsertLoginEvent(ctx context.Context, db database.DB, e *model.LoginEvent) error {
	row := db.QueryRow(ctx,
		`INSERT INTO login_events (username, token_type, source)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		e.Username,
		e.TokenType,
		e.Source,
	)
	if err := row.Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("InsertLoginEvent: %w", err)
	}
	return nil
}

// ListLoginEvents 依時間由新到舊列出指定使用者的登入紀錄
func ListLoginEvents(ctx context.Context, db database.DB, username string, limit int) ([]model.LoginEvent, error) {
	rows, err := db.Query(ctx,
		`SELECT id, username, token_type, source, created_at
		 FROM login_events
		 WHERE username = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		username,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListLoginEvents: %w", err)
	}
	defer rows.Close()

	events := []model.LoginEvent{}
	for rows.Next() {
		var e model.LoginEvent
		if err := rows.Scan(
			&e.ID,
			&e.Username,
			&e.TokenType,
			&e.Source,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListLoginEvents: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListLoginEvents: %w", err)
	}
	return events, nil
}
