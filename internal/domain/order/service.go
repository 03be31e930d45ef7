package order

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// Service 订单领域服务（查询与状态流转，下单流程在应用层的事务里完成）
type Service interface {
	// GetForUser 只能查看自己的订单
	GetForUser(ctx context.Context, userID, orderID uint) (*Order, error)
	ListForUser(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)

	// ConfirmDelivery 买家确认收货，返回变更前的状态
	ConfirmDelivery(ctx context.Context, userID, orderID uint) (*Order, Status, error)

	// UpdateStatus 管理员推进或取消订单，返回变更前的状态
	UpdateStatus(ctx context.Context, orderID uint, target Status) (*Order, Status, error)

	Get(ctx context.Context, orderID uint) (*Order, error)
	List(ctx context.Context, params ListParams) ([]*Order, int64, error)
	Delete(ctx context.Context, orderID uint) error
}

type service struct {
	repo Repository
}

// NewService 创建订单服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetForUser(ctx context.Context, userID, orderID uint) (*Order, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, ErrNotOrderOwner
	}
	return o, nil
}

func (s *service) ListForUser(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error) {
	return s.repo.ListByUserID(ctx, userID, page, pageSize)
}

func (s *service) ConfirmDelivery(ctx context.Context, userID, orderID uint) (*Order, Status, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, 0, err
	}
	prev := o.Status
	if err := o.ConfirmDelivery(userID); err != nil {
		return nil, prev, err
	}
	if err := s.repo.UpdateStatus(ctx, o); err != nil {
		return nil, prev, err
	}
	return o, prev, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID uint, target Status) (*Order, Status, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, 0, err
	}
	prev := o.Status
	if err := o.TransitionTo(target); err != nil {
		return nil, prev, err
	}
	if err := s.repo.UpdateStatus(ctx, o); err != nil {
		return nil, prev, err
	}
	return o, prev, nil
}

func (s *service) Get(ctx context.Context, orderID uint) (*Order, error) {
	return s.repo.FindByID(ctx, orderID)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Order, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *service) Delete(ctx context.Context, orderID uint) error {
	if _, err := s.repo.FindByID(ctx, orderID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, orderID)
}
