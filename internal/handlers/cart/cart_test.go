package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"furnirent_backend/internal/database"
	"furnirent_backend/internal/models"
)

// cartRouter stands in for the auth middleware by trusting the path's
// userId, which is all the handlers read from the context.
func cartRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	asUser := func(c *gin.Context) {
		c.Set("user_id", c.Param("userId"))
		c.Next()
	}
	r := gin.New()
	r.POST("/api/cart/:userId", asUser, AddToCart)
	r.PUT("/api/cart/:userId/:itemId", asUser, UpdateCartItem)
	return r
}

func TestAddToCartRejectsZeroQuantity(t *testing.T) {
	w := httptest.NewRecorder()
	body := `{"productId":"` + primitive.NewObjectID().Hex() + `","tenureMonths":6,"quantity":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/user-1", strings.NewReader(body))
	cartRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartItemRejectsZeroQuantity(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/cart/user-1/item-1", strings.NewReader(`{"quantity":0}`))
	cartRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartRejectsOtherUsersCart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/cart/:userId", func(c *gin.Context) {
		c.Set("user_id", "someone-else")
		c.Next()
	}, AddToCart)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cart/user-1", strings.NewReader(`{"quantity":1}`))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// A tenure change must land on exactly the chosen option's price, taken from
// the product document, never interpolated or kept from the old line.
func TestUpdateCartItemTenureChangeUsesOptionPrice(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("tenure change", func(mt *mtest.T) {
		prevDB := database.DB
		database.DB = mt.Client.Database("furnirent_test")
		defer func() { database.DB = prevDB }()

		productID := primitive.NewObjectID()
		cartDoc := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "user_id", Value: "user-1"},
			{Key: "items", Value: bson.A{bson.D{
				{Key: "item_id", Value: "li-1"},
				{Key: "product_id", Value: productID},
				{Key: "name", Value: "Fabric Sofa"},
				{Key: "tenure_months", Value: 3},
				{Key: "price", Value: 700.0},
				{Key: "quantity", Value: 1},
			}}},
			{Key: "updated_at", Value: time.Now()},
		}
		productDoc := bson.D{
			{Key: "_id", Value: productID},
			{Key: "name", Value: "Fabric Sofa"},
			{Key: "isActive", Value: true},
			{Key: "tenureOptions", Value: bson.A{
				bson.D{{Key: "months", Value: 3}, {Key: "price", Value: 700.0}},
				bson.D{{Key: "months", Value: 6}, {Key: "price", Value: 550.0}},
			}},
		}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "furnirent_test.carts", mtest.FirstBatch, cartDoc),
			mtest.CreateCursorResponse(0, "furnirent_test.products", mtest.FirstBatch, productDoc),
			mtest.CreateSuccessResponse(),
		)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/cart/user-1/li-1", strings.NewReader(`{"tenureMonths":6}`))
		cartRouter().ServeHTTP(w, req)
		require.Equal(mt, http.StatusOK, w.Code, w.Body.String())

		var items []models.CartItem
		require.NoError(mt, json.Unmarshal(w.Body.Bytes(), &items))
		require.Len(mt, items, 1)
		assert.Equal(mt, 6, items[0].TenureMonths)
		assert.Equal(mt, 550.0, items[0].Price)
	})
}

// An undefined tenure is rejected instead of being priced from thin air.
func TestUpdateCartItemRejectsUndefinedTenure(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown tenure", func(mt *mtest.T) {
		prevDB := database.DB
		database.DB = mt.Client.Database("furnirent_test")
		defer func() { database.DB = prevDB }()

		productID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "furnirent_test.carts", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "user_id", Value: "user-1"},
				{Key: "items", Value: bson.A{bson.D{
					{Key: "item_id", Value: "li-1"},
					{Key: "product_id", Value: productID},
					{Key: "name", Value: "Fabric Sofa"},
					{Key: "tenure_months", Value: 3},
					{Key: "price", Value: 700.0},
					{Key: "quantity", Value: 1},
				}}},
			}),
			mtest.CreateCursorResponse(0, "furnirent_test.products", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: productID},
				{Key: "name", Value: "Fabric Sofa"},
				{Key: "isActive", Value: true},
				{Key: "tenureOptions", Value: bson.A{
					bson.D{{Key: "months", Value: 3}, {Key: "price", Value: 700.0}},
				}},
			}),
		)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/cart/user-1/li-1", strings.NewReader(`{"tenureMonths":9}`))
		cartRouter().ServeHTTP(w, req)
		assert.Equal(mt, http.StatusBadRequest, w.Code)
	})
}
