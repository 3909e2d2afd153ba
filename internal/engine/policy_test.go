package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func TestIsManagerOf(t *testing.T) {
	manager := &model.User{ID: 1, Role: model.RoleManager}
	client := &model.User{ID: 2, Role: model.RoleClient}
	r := &model.Restaurant{ID: 7, ManagerID: 1}

	assert.True(t, IsManagerOf(manager, r))
	assert.False(t, IsManagerOf(client, r))
	assert.False(t, IsManagerOf(&model.User{ID: 3, Role: model.RoleManager}, r))
	assert.False(t, IsManagerOf(nil, r))
	assert.False(t, IsManagerOf(manager, nil))
	// A client whose id happens to match ManagerID is still not a manager.
	assert.False(t, IsManagerOf(&model.User{ID: 1, Role: model.RoleClient}, r))
}

func TestIsOwnerOrManager(t *testing.T) {
	manager := &model.User{ID: 1, Role: model.RoleManager}
	owner := &model.User{ID: 2, Role: model.RoleClient}
	stranger := &model.User{ID: 3, Role: model.RoleClient}
	r := &model.Restaurant{ID: 7, ManagerID: 1}
	res := &model.Reservation{Number: "n1", UserID: 2, RestaurantID: 7}

	assert.True(t, IsOwnerOrManager(owner, res, r))
	assert.True(t, IsOwnerOrManager(manager, res, r))
	assert.False(t, IsOwnerOrManager(stranger, res, r))
	assert.False(t, IsOwnerOrManager(nil, res, r))
	assert.False(t, IsOwnerOrManager(owner, nil, r))
	assert.True(t, IsOwnerOrManager(owner, res, nil))
	assert.False(t, IsOwnerOrManager(manager, res, nil))
}

func TestIsSelf(t *testing.T) {
	u := &model.User{ID: 5}
	assert.True(t, IsSelf(u, 5))
	assert.False(t, IsSelf(u, 6))
	assert.False(t, IsSelf(nil, 5))
}
