// Package entity はユーザー一覧機能のドメインモデルを定義します。
package entity

// User is the public view of an account. The password hash is handled only by
// the auth feature and never appears here.
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TableName maps the read model onto the same table the auth feature writes.
func (User) TableName() string {
	return "users"
}
