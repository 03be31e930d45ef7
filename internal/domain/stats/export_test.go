package stats

import "time"

func NewServiceAt(repo Repository, now func() time.Time) Service {
	return &service{repo: repo, now: now}
}
