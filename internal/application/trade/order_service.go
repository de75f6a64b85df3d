package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/shopmall/backend/internal/application/integrity"
	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/catalog"
	"github.com/shopmall/backend/internal/domain/member"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/store"
	"github.com/shopmall/backend/internal/domain/trade"
	"go.uber.org/zap"
)

const (
	entityOrder   = "order"
	entityUser    = "user"
	entityShop    = "shop"
	entityAddress = "user address"
	entityProduct = "product"
	entityCoupon  = "coupon"
)

// OrderService handles order placement and queries
type OrderService struct {
	orders    trade.OrderRepository
	users     member.UserRepository
	shops     store.ShopRepository
	scope     uow.TransactionScope
	publisher shared.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orders trade.OrderRepository,
	users member.UserRepository,
	shops store.ShopRepository,
	scope uow.TransactionScope,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	if publisher == nil {
		publisher = shared.NoopEventPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:    orders,
		users:     users,
		shops:     shops,
		scope:     scope,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// GetAll returns every order
func (s *OrderService) GetAll(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(ctx context.Context, id int64) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityOrder, id)
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetByUser lists the orders placed by a user
func (s *OrderService) GetByUser(ctx context.Context, userID int64) ([]OrderResponse, error) {
	if err := integrity.RequireFound(ctx, s.users.ExistsByID, entityUser, userID); err != nil {
		return nil, err
	}
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// GetByShop lists the orders received by a shop
func (s *OrderService) GetByShop(ctx context.Context, shopID int64) ([]OrderResponse, error) {
	if err := integrity.RequireFound(ctx, s.shops.ExistsByID, entityShop, shopID); err != nil {
		return nil, err
	}
	orders, err := s.orders.FindByShopID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// Create places an order. Prices are captured from the products, stock is
// reserved and the coupon, if any, is redeemed in the same transaction.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	var order *trade.Order
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireReference(ctx, repos.Users().ExistsByID, entityUser, req.UserID); err != nil {
			return err
		}
		if err := integrity.RequireReference(ctx, repos.Shops().ExistsByID, entityShop, req.ShopID); err != nil {
			return err
		}

		address, err := repos.UserAddresses().FindByID(ctx, req.AddressID)
		if err != nil {
			return integrity.MissingReference(err, entityAddress, req.AddressID)
		}
		if address.UserID != req.UserID {
			return shared.NewInvalidReferenceError(fmt.Sprintf("user address %d does not belong to user %d", address.ID, req.UserID))
		}

		items, products, err := s.priceItems(ctx, repos, req)
		if err != nil {
			return err
		}

		order, err = trade.NewOrder(req.UserID, req.ShopID, req.AddressID, items, req.Note)
		if err != nil {
			return err
		}

		if req.CouponID != nil {
			if err := s.redeemCoupon(ctx, repos, order, *req.CouponID); err != nil {
				return err
			}
		}

		for _, product := range products {
			if err := repos.Products().Save(ctx, product); err != nil {
				return err
			}
		}
		return repos.Orders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, trade.NewOrderCreatedEvent(order))

	s.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserID),
		zap.Int64("shop_id", order.ShopID),
		zap.String("total", order.Total.StringFixed(2)))

	resp := ToOrderResponse(order)
	return &resp, nil
}

// priceItems resolves the products, checks they belong to the shop and reserves stock.
// Repeated products are merged into one line.
func (s *OrderService) priceItems(ctx context.Context, repos uow.Repositories, req CreateOrderRequest) ([]trade.OrderItem, map[int64]*catalog.Product, error) {
	quantities := make(map[int64]int, len(req.Items))
	ids := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, nil, shared.NewValidationError("item quantity must be positive")
		}
		if _, seen := quantities[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}
	if len(ids) == 0 {
		return nil, nil, shared.NewValidationError("order must contain at least one item")
	}

	found, err := repos.Products().FindAllByIDForUpdate(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if err := integrity.ResolveAll(entityProduct, ids, integrity.IDs(found)); err != nil {
		return nil, nil, err
	}

	products := make(map[int64]*catalog.Product, len(found))
	for i := range found {
		products[found[i].ID] = &found[i]
	}

	items := make([]trade.OrderItem, 0, len(ids))
	for _, id := range ids {
		product := products[id]
		if product.ShopID != req.ShopID {
			return nil, nil, shared.NewInvalidReferenceError(fmt.Sprintf("product %d does not belong to shop %d", id, req.ShopID))
		}
		if err := product.Reserve(quantities[id]); err != nil {
			return nil, nil, err
		}
		items = append(items, trade.OrderItem{
			ProductID: id,
			Quantity:  quantities[id],
			UnitPrice: product.Price,
		})
	}
	return items, products, nil
}

func (s *OrderService) redeemCoupon(ctx context.Context, repos uow.Repositories, order *trade.Order, couponID int64) error {
	coupon, err := repos.Coupons().FindByIDForUpdate(ctx, couponID)
	if err != nil {
		return integrity.MissingReference(err, entityCoupon, couponID)
	}
	if coupon.ShopID != order.ShopID {
		return shared.NewInvalidReferenceError(fmt.Sprintf("coupon %d does not belong to shop %d", couponID, order.ShopID))
	}
	if err := order.ApplyCoupon(coupon.ID, coupon.Discount, coupon.MinSpend); err != nil {
		return err
	}
	if err := coupon.Redeem(s.now()); err != nil {
		return err
	}
	return repos.Coupons().Save(ctx, coupon)
}

// Update changes the note of an order
func (s *OrderService) Update(ctx context.Context, id int64, req UpdateOrderRequest) (*OrderResponse, error) {
	var order *trade.Order
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		order, err = repos.Orders().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityOrder, id)
		}
		req.Note.ApplyOrClear(&order.Note)
		return repos.Orders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Delete removes an order that has neither shipments nor payments
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.Orders().ExistsByID, entityOrder, id); err != nil {
			return err
		}
		if err := integrity.Guard(ctx, id,
			integrity.Dependent{Exists: repos.Shipments().ExistsByOrderID, Message: "shipment exists"},
			integrity.Dependent{Exists: repos.Payments().ExistsByOrderID, Message: "payment exists"},
		); err != nil {
			return err
		}
		return repos.Orders().Delete(ctx, id)
	})
}

func (s *OrderService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish order events", zap.Error(err))
	}
}
