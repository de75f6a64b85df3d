package catalog

import (
	"context"
	"testing"

	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	parents := NewParentCategoryService(store.Repos.ParentCategories(), store.Scope)
	children := NewChildCategoryService(store.Repos.ChildCategories(), store.Repos.ParentCategories(), store.Scope)

	electronics, err := parents.Create(ctx, CreateParentCategoryRequest{Name: "Electronics"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), electronics.ID)

	phones, err := children.Create(ctx, CreateChildCategoryRequest{Name: "Phones", Category1IDs: []int64{electronics.ID}})
	require.NoError(t, err)
	assert.Equal(t, []int64{electronics.ID}, phones.Category1IDs)

	err = parents.Delete(ctx, electronics.ID)
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))
	assert.EqualError(t, err, "child category exists")

	require.NoError(t, children.Delete(ctx, phones.ID))
	require.NoError(t, parents.Delete(ctx, electronics.ID))

	_, err = parents.GetByID(ctx, electronics.ID)
	assert.Equal(t, shared.KindNotFound, shared.KindOf(err))
}

func TestChildCategoryWithUnknownParent(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	children := NewChildCategoryService(store.Repos.ChildCategories(), store.Repos.ParentCategories(), store.Scope)

	_, err := children.Create(ctx, CreateChildCategoryRequest{Name: "Phones", Category1IDs: []int64{999}})

	assert.Equal(t, shared.KindInvalidReference, shared.KindOf(err))
	assert.Equal(t, int64(0), store.Count(t, "child_categories"))
	assert.Equal(t, int64(0), store.Count(t, "child_category_parents"))
}

func TestGetAllIsStable(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	parents := NewParentCategoryService(store.Repos.ParentCategories(), store.Scope)
	for _, name := range []string{"Books", "Garden", "Toys"} {
		_, err := parents.Create(ctx, CreateParentCategoryRequest{Name: name})
		require.NoError(t, err)
	}

	first, err := parents.GetAll(ctx)
	require.NoError(t, err)
	second, err := parents.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestProductLifecycle(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	user := store.SeedUser(t)
	addr := store.SeedAddress(t, user.ID)
	shop := store.SeedShop(t, user.ID)
	parent := store.SeedParentCategory(t, "Electronics")
	child := store.SeedChildCategory(t, "Phones", parent.ID)
	products := NewProductService(store.Repos.Products(), store.Repos.Shops(), store.Repos.ChildCategories(), store.Scope, nil)

	created, err := products.Create(ctx, CreateProductRequest{
		ShopID: shop.ID, Name: "Pixel", Price: mustDecimal("499.00"), Stock: 3, Category2IDs: []int64{child.ID},
	})
	require.NoError(t, err)

	byCategory, err := products.GetByCategory2(ctx, child.ID)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, created.ID, byCategory[0].ID)

	children := NewChildCategoryService(store.Repos.ChildCategories(), store.Repos.ParentCategories(), store.Scope)
	assert.EqualError(t, children.Delete(ctx, child.ID), "product exists")

	store.SeedOrder(t, user.ID, shop.ID, addr.ID, created.ID)
	assert.EqualError(t, products.Delete(ctx, created.ID), "order item exists")
}
