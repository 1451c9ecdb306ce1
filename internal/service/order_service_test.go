package service

import (
	"context"
	"testing"

	"github.com/dsaslb/restaurant-management-system/internal/apierror"
	"github.com/dsaslb/restaurant-management-system/internal/dto"
	"github.com/dsaslb/restaurant-management-system/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubMenuRepo struct {
	items map[uuid.UUID]*model.MenuItem
}

func (r *stubMenuRepo) Create(_ context.Context, m *model.MenuItem) error {
	m.ID = uuid.New()
	r.items[m.ID] = m
	return nil
}

func (r *stubMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MenuItem, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMenuRepo) List(_ context.Context, onlyAvailable bool) ([]model.MenuItem, error) {
	var out []model.MenuItem
	for _, m := range r.items {
		if !onlyAvailable || m.Available {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) Update(_ context.Context, m *model.MenuItem) error {
	r.items[m.ID] = m
	return nil
}

func (r *stubMenuRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func (r *stubOrderRepo) Create(_ context.Context, o *model.Order) error {
	o.ID = uuid.New()
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) List(_ context.Context, status string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatusLocked(_ context.Context, id uuid.UUID, fn func(o *model.Order) error) error {
	o, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	return fn(o)
}

func newOrderFixture(t *testing.T) (OrderService, *stubOrderRepo, *model.MenuItem, *model.MenuItem) {
	t.Helper()
	menu := &stubMenuRepo{items: make(map[uuid.UUID]*model.MenuItem)}
	bibimbap := &model.MenuItem{Name: "비빔밥", Category: "식사", Price: decimal.NewFromInt(9000), Available: true}
	soup := &model.MenuItem{Name: "된장찌개", Category: "식사", Price: decimal.NewFromInt(8000), Available: true}
	require.NoError(t, menu.Create(context.Background(), bibimbap))
	require.NoError(t, menu.Create(context.Background(), soup))

	orders := &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
	return NewOrderService(orders, menu), orders, bibimbap, soup
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	svc, _, bibimbap, soup := newOrderFixture(t)

	order, err := svc.Create(context.Background(), "waiter1", dto.CreateOrderRequest{
		TableNo: 3,
		Items: []dto.CreateOrderItemRequest{
			{MenuItemID: bibimbap.ID.String(), Quantity: 2},
			{MenuItemID: soup.ID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderOpen, order.Status)
	assert.Equal(t, "waiter1", order.CreatedBy)
	require.Len(t, order.Items, 2)
	// 2×9000 + 1×8000 — prices come from the menu, not the client
	assert.True(t, order.Total.Equal(decimal.NewFromInt(26000)), "got %s", order.Total)
	assert.True(t, order.Items[0].Subtotal.Equal(decimal.NewFromInt(18000)))
}

func TestCreateOrderRejectsUnavailableItem(t *testing.T) {
	svc, _, bibimbap, _ := newOrderFixture(t)
	bibimbap.Available = false

	_, err := svc.Create(context.Background(), "waiter1", dto.CreateOrderRequest{
		TableNo: 1,
		Items:   []dto.CreateOrderItemRequest{{MenuItemID: bibimbap.ID.String(), Quantity: 1}},
	})
	assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))
}

func TestCreateOrderRejectsUnknownItem(t *testing.T) {
	svc, _, _, _ := newOrderFixture(t)

	_, err := svc.Create(context.Background(), "waiter1", dto.CreateOrderRequest{
		TableNo: 1,
		Items:   []dto.CreateOrderItemRequest{{MenuItemID: uuid.NewString(), Quantity: 1}},
	})
	assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))
}

func TestOrderStatusTransitions(t *testing.T) {
	svc, repo, bibimbap, _ := newOrderFixture(t)
	created, err := svc.Create(context.Background(), "waiter1", dto.CreateOrderRequest{
		TableNo: 1,
		Items:   []dto.CreateOrderItemRequest{{MenuItemID: bibimbap.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	// open → paid skips served
	err = svc.UpdateStatus(context.Background(), id, model.OrderPaid)
	assert.Equal(t, apierror.KindInvalidState, apierror.KindOf(err))

	require.NoError(t, svc.UpdateStatus(context.Background(), id, model.OrderServed))
	require.NoError(t, svc.UpdateStatus(context.Background(), id, model.OrderPaid))
	assert.Equal(t, model.OrderPaid, repo.orders[id].Status)

	// paid is terminal
	err = svc.UpdateStatus(context.Background(), id, model.OrderServed)
	assert.Equal(t, apierror.KindInvalidState, apierror.KindOf(err))
}

func TestUpdateStatusUnknownOrderNotFound(t *testing.T) {
	svc, _, _, _ := newOrderFixture(t)

	err := svc.UpdateStatus(context.Background(), uuid.New(), model.OrderServed)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}
