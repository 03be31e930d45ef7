package order

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/xiebiao/leafside/internal/application"
	"github.com/xiebiao/leafside/internal/application/event"
	"github.com/xiebiao/leafside/internal/domain/book"
	"github.com/xiebiao/leafside/internal/domain/cart"
	"github.com/xiebiao/leafside/internal/domain/order"
	"github.com/xiebiao/leafside/internal/domain/user"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
	"github.com/xiebiao/leafside/pkg/logger"
	"github.com/xiebiao/leafside/pkg/metrics"
	"github.com/xiebiao/leafside/pkg/money"
	"github.com/xiebiao/leafside/pkg/tracing"
)

// 订单来源（指标和事件的source标签）
const (
	SourceDirect = "direct"
	SourceCart   = "cart"
)

// CreateOrderUseCase 下单用例
//
// 两种下单方式都在一个事务中完成：
//   - Execute：客户端提交明细和预期金额，价格以 SELECT ... FOR UPDATE 锁定的图书为准
//   - Checkout：从购物车下单，创建订单和清空购物车同时提交或同时回滚
type CreateOrderUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	cartRepo  cart.Repository
	userRepo  user.Repository
	txManager application.TxManager
	publisher application.EventPublisher
}

func NewCreateOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	cartRepo cart.Repository,
	userRepo user.Repository,
	txManager application.TxManager,
	publisher application.EventPublisher,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		txManager: txManager,
		publisher: publisher,
	}
}

// CreateOrderRequest 直接下单
type CreateOrderRequest struct {
	UserID        uint
	Items         []CreateOrderItem
	ExpectedTotal decimal.Decimal // 客户端计算的总金额（元）
	Shipping      ShippingRequest
}

type CreateOrderItem struct {
	BookID   uint
	Quantity int
}

// CheckoutRequest 购物车下单
type CheckoutRequest struct {
	UserID   uint
	Shipping ShippingRequest
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "CreateOrderUseCase.Execute")
	defer span.End()
	span.SetAttributes(attribute.Int("user.id", int(req.UserID)), attribute.Int("order.lines", len(req.Items)))

	start := time.Now()

	lines, err := mergeItems(req.Items)
	if err != nil {
		return nil, uc.fail(ctx, err)
	}

	var created *order.Order
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		items := make([]order.Item, 0, len(lines))
		for _, line := range lines {
			// 锁定图书行，事务提交前价格不会被修改
			b, err := uc.bookRepo.LockByID(txCtx, line.BookID)
			if err != nil {
				return err
			}
			items = append(items, order.NewItem(b.ID, b.Title, line.Quantity, b.Price))
		}

		shipping, err := uc.shipping(txCtx, req.UserID, req.Shipping)
		if err != nil {
			return err
		}

		o := order.NewOrder(order.GenerateOrderNo(), req.UserID, items, shipping)
		if !money.WithinTolerance(req.ExpectedTotal, o.Total) {
			logger.FromContext(ctx).Info("订单金额不一致",
				zap.String("expected", req.ExpectedTotal.String()),
				zap.String("computed", money.Format(o.Total)),
			)
			return order.ErrTotalMismatch
		}

		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, uc.fail(ctx, err)
	}

	uc.succeed(ctx, created, SourceDirect, start)
	return ToOrderResponse(created), nil
}

// Checkout 从购物车下单
// 单价取加入购物车时的快照，没有快照用当前价格；已删除的图书跳过
func (uc *CreateOrderUseCase) Checkout(ctx context.Context, req CheckoutRequest) (*OrderResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "CreateOrderUseCase.Checkout")
	defer span.End()
	span.SetAttributes(attribute.Int("user.id", int(req.UserID)))

	start := time.Now()

	var created *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 锁住购物车，同一用户的并发结算排队执行，后到的看到的是已清空的购物车
		c, err := uc.cartRepo.LockByUserID(txCtx, req.UserID)
		if errors.Is(err, cart.ErrCartNotFound) {
			return cart.ErrCartEmpty
		}
		if err != nil {
			return err
		}
		if c.IsEmpty() {
			return cart.ErrCartEmpty
		}

		books, err := uc.bookRepo.FindByIDs(txCtx, c.BookIDs())
		if err != nil {
			return err
		}
		byID := make(map[uint]*book.Book, len(books))
		for _, b := range books {
			byID[b.ID] = b
		}

		items := make([]order.Item, 0, len(c.Items))
		for _, it := range c.Items {
			b, ok := byID[it.BookID]
			if !ok {
				logger.FromContext(ctx).Info("购物车中的图书已删除，跳过", zap.Uint("book_id", it.BookID))
				continue
			}
			items = append(items, order.NewItem(b.ID, b.Title, it.Quantity, it.UnitPrice(&b.Price)))
		}
		if len(items) == 0 {
			return order.ErrNoPurchasableItems
		}

		shipping, err := uc.shipping(txCtx, req.UserID, req.Shipping)
		if err != nil {
			return err
		}

		o := order.NewOrder(order.GenerateOrderNo(), req.UserID, items, shipping)
		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}
		cleared, err := uc.cartRepo.ClearItems(txCtx, c.ID)
		if err != nil {
			return err
		}
		if cleared < int64(len(c.Items)) {
			// 条目已被其他事务清空，回滚本次下单
			return cart.ErrCartEmpty
		}
		created = o
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, uc.fail(ctx, err)
	}

	uc.succeed(ctx, created, SourceCart, start)
	return ToOrderResponse(created), nil
}

// shipping 收货人、邮箱、电话默认取用户资料
func (uc *CreateOrderUseCase) shipping(ctx context.Context, userID uint, req ShippingRequest) (order.ShippingInfo, error) {
	info := order.ShippingInfo{
		ShippingAddress: req.ShippingAddress,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Notes:           req.Notes,
	}
	if info.CustomerName != "" && info.CustomerEmail != "" && info.CustomerPhone != "" {
		return info, nil
	}

	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return info, err
	}
	if info.CustomerName == "" {
		info.CustomerName = u.FullName()
	}
	if info.CustomerEmail == "" {
		info.CustomerEmail = u.Email
	}
	if info.CustomerPhone == "" {
		info.CustomerPhone = u.PhoneNumber
	}
	return info, nil
}

func (uc *CreateOrderUseCase) succeed(ctx context.Context, o *order.Order, source string, start time.Time) {
	metrics.OrdersCreatedTotal.WithLabelValues(source).Inc()
	metrics.OrderCreationDuration.Observe(time.Since(start).Seconds())

	logger.FromContext(ctx).Info("订单创建成功",
		zap.Uint("order_id", o.ID),
		zap.String("order_no", o.OrderNo),
		zap.String("total", money.Format(o.Total)),
		zap.String("source", source),
	)

	application.PublishEvent(ctx, uc.publisher, event.OrderCreated, event.OrderCreatedPayload{
		OrderID:   o.ID,
		OrderNo:   o.OrderNo,
		UserID:    o.UserID,
		Total:     money.Format(o.Total),
		ItemCount: o.TotalQuantity(),
		Source:    source,
		CreatedAt: o.CreatedAt,
	})
}

// fail 按错误码统计失败原因
func (uc *CreateOrderUseCase) fail(ctx context.Context, err error) error {
	reason := "internal"
	if appErr := apperrors.GetAppError(err); appErr != nil && !apperrors.IsInternal(appErr) {
		reason = strconv.Itoa(appErr.Code)
	} else {
		logger.FromContext(ctx).Error("订单创建失败", zap.Error(err))
	}
	metrics.OrdersFailedTotal.WithLabelValues(reason).Inc()
	return err
}

// mergeItems 校验明细并合并同一本书的数量
func mergeItems(items []CreateOrderItem) ([]CreateOrderItem, error) {
	if len(items) == 0 {
		return nil, order.ErrInvalidOrderItems
	}
	merged := make([]CreateOrderItem, 0, len(items))
	index := make(map[uint]int, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, order.ErrInvalidQuantity
		}
		if i, ok := index[it.BookID]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		index[it.BookID] = len(merged)
		merged = append(merged, it)
	}
	return merged, nil
}
