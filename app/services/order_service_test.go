package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/apperr"
)

func newOrderService(t *testing.T) (*services.OrderService, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	return services.NewOrderService(repositories.NewOrderRepository(db)), db
}

func TestPlaceAttributesOrderToCaller(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "jona", "s3cret-pass", false)

	order, err := svc.Place(user, 2, models.SizeMedium)
	require.NoError(t, err)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, models.StatusPending, order.OrderStatus)
	assert.Equal(t, models.SizeMedium, order.PizzaSize)
}

func TestPlaceDefaultsToSmall(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "jona", "s3cret-pass", false)

	order, err := svc.Place(user, 1, "")
	require.NoError(t, err)
	assert.Equal(t, models.SizeSmall, order.PizzaSize)
}

func TestGetOwnByIDOwnershipGate(t *testing.T) {
	svc, db := newOrderService(t)
	owner := seedUser(t, db, "owner", "s3cret-pass", false)
	stranger := seedUser(t, db, "stranger", "s3cret-pass", false)
	staff := seedUser(t, db, "staff", "s3cret-pass", true)

	order, err := svc.Place(owner, 1, models.SizeSmall)
	require.NoError(t, err)

	_, err = svc.GetOwnByID(owner, order.ID)
	assert.NoError(t, err)

	_, err = svc.GetOwnByID(staff, order.ID)
	assert.NoError(t, err, "staff may read any order")

	_, err = svc.GetOwnByID(stranger, order.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
	assert.Equal(t, "Not allowed", apperr.Detail(err))
}

func TestGetOwnByIDMissing(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "jona", "s3cret-pass", false)

	_, err := svc.GetOwnByID(user, 999)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "No order with such id", apperr.Detail(err))
}

func TestListOwnEmptyIsNotAnError(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "jona", "s3cret-pass", false)

	summaries, err := svc.ListOwn(user)
	require.NoError(t, err)
	assert.NotNil(t, summaries)
	assert.Len(t, summaries, 0)
}

func TestListOwnProjections(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "jona", "s3cret-pass", false)
	other := seedUser(t, db, "other", "s3cret-pass", false)

	_, err := svc.Place(user, 2, models.SizeLarge)
	require.NoError(t, err)
	_, err = svc.Place(other, 1, models.SizeSmall)
	require.NoError(t, err)

	summaries, err := svc.ListOwn(user)
	require.NoError(t, err)
	require.Len(t, summaries, 1, "only the caller's orders")
	assert.Equal(t, "LARGE", summaries[0].PizzaSize.Code)
	assert.Equal(t, "Large", summaries[0].PizzaSize.Label)
	assert.Equal(t, "PENDING", summaries[0].OrderStatus.Code)
}

func TestUpdateFieldsNeverTouchesStatus(t *testing.T) {
	svc, db := newOrderService(t)
	staff := seedUser(t, db, "staff", "s3cret-pass", true)
	user := seedUser(t, db, "jona", "s3cret-pass", false)

	order, err := svc.Place(user, 1, models.SizeSmall)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, models.StatusInTransit)
	require.NoError(t, err)

	updated, err := svc.UpdateFields(staff, order.ID, 5, models.SizeLarge)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, models.SizeLarge, updated.PizzaSize)
	assert.Equal(t, models.StatusInTransit, updated.OrderStatus, "field update must not reset status")
}

func TestUpdateFieldsOwnershipGate(t *testing.T) {
	svc, db := newOrderService(t)
	owner := seedUser(t, db, "owner", "s3cret-pass", false)
	stranger := seedUser(t, db, "stranger", "s3cret-pass", false)

	order, err := svc.Place(owner, 1, models.SizeSmall)
	require.NoError(t, err)

	_, err = svc.UpdateFields(stranger, order.ID, 9, models.SizeLarge)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	fresh, err := svc.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Quantity, "rejected update must not mutate")
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "jona", "s3cret-pass", false)

	order, err := svc.Place(user, 1, models.SizeSmall)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(order.ID, models.StatusInTransit)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInTransit, updated.OrderStatus)

	updated, err = svc.UpdateStatus(order.ID, models.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, updated.OrderStatus)
}

func TestUpdateStatusRejectsIllegalEdges(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "jona", "s3cret-pass", false)

	order, err := svc.Place(user, 1, models.SizeSmall)
	require.NoError(t, err)

	// PENDING cannot jump straight to DELIVERED.
	_, err = svc.UpdateStatus(order.ID, models.StatusDelivered)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	fresh, err := svc.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, fresh.OrderStatus, "row untouched on rejection")

	// Terminal states absorb.
	_, err = svc.UpdateStatus(order.ID, models.StatusCancelled)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(order.ID, models.StatusInTransit)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.UpdateStatus(999, models.StatusInTransit)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDelete(t *testing.T) {
	svc, db := newOrderService(t)
	owner := seedUser(t, db, "owner", "s3cret-pass", false)
	stranger := seedUser(t, db, "stranger", "s3cret-pass", false)

	order, err := svc.Place(owner, 1, models.SizeSmall)
	require.NoError(t, err)

	err = svc.Delete(stranger, order.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	require.NoError(t, svc.Delete(owner, order.ID))

	_, err = svc.GetByID(order.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDeleteMissingOrder(t *testing.T) {
	svc, db := newOrderService(t)
	user := seedUser(t, db, "jona", "s3cret-pass", false)

	err := svc.Delete(user, 424242)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Order with id=424242 not found", apperr.Detail(err))
}

func TestListAllReturnsEverything(t *testing.T) {
	svc, db := newOrderService(t)
	a := seedUser(t, db, "a", "s3cret-pass", false)
	b := seedUser(t, db, "b", "s3cret-pass", false)

	_, err := svc.Place(a, 1, models.SizeSmall)
	require.NoError(t, err)
	_, err = svc.Place(b, 2, models.SizeLarge)
	require.NoError(t, err)

	orders, err := svc.ListAll()
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
