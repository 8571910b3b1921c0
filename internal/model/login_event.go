// File: internal/model/login_event.go
package model

import "time"

// 登入事件來源
const (
	SourceUpstream = "upstream"
	SourceCache    = "cache"
)

// LoginEvent 代理登入的稽核紀錄，不保存存取令牌本身
type LoginEvent struct {
	ID        int       `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	TokenType string    `db:"token_type" json:"token_type"`
	Source    string    `db:"source" json:"source"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
