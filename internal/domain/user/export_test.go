package user

import "golang.org/x/crypto/bcrypt"

// NewServiceWithMinCost 测试中使用最低bcrypt成本
func NewServiceWithMinCost(repo Repository) Service {
	return &service{repo: repo, cost: bcrypt.MinCost}
}
