package docs

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag/v2"
)

type swaggerDoc struct {
	Info struct {
		Title string `json:"title"`
	} `json:"info"`
	BasePath    string                                `json:"basePath"`
	Paths       map[string]map[string]swaggerOp       `json:"paths"`
	Definitions map[string]map[string]json.RawMessage `json:"definitions"`
}

type swaggerOp struct {
	Security   []map[string][]string `json:"security"`
	Parameters []struct {
		In     string `json:"in"`
		Schema struct {
			Ref string `json:"$ref"`
		} `json:"schema"`
	} `json:"parameters"`
	Responses map[string]struct {
		Schema struct {
			Ref   string `json:"$ref"`
			Type  string `json:"type"`
			Items struct {
				Ref string `json:"$ref"`
			} `json:"items"`
		} `json:"schema"`
	} `json:"responses"`
}

func readDoc(t *testing.T) swaggerDoc {
	t.Helper()
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestSwaggerDocument_Routes(t *testing.T) {
	doc := readDoc(t)
	assert.Equal(t, "Shop Backend API", doc.Info.Title)
	assert.Equal(t, "/", doc.BasePath)

	for path, methods := range map[string][]string{
		"/api/products/byCategory2":   {"get"},
		"/api/chats/byShopAndUser":    {"get"},
		"/api/category1/{id}":         {"get", "put", "delete"},
		"/api/payments/{id}/checkout": {"post"},
		"/payment/notify":             {"post"},
		"/health":                     {"get"},
		"/api/shipment-statuses":      {"post"},
	} {
		require.Contains(t, doc.Paths, path)
		for _, m := range methods {
			assert.Contains(t, doc.Paths[path], m, path)
		}
	}
}

func TestSwaggerDocument_Schemas(t *testing.T) {
	doc := readDoc(t)

	create := doc.Paths["/api/orders"]["post"]
	require.Len(t, create.Parameters, 1)
	assert.Equal(t, "body", create.Parameters[0].In)
	assert.Equal(t, "#/definitions/trade.CreateOrderRequest", create.Parameters[0].Schema.Ref)
	assert.Equal(t, "#/definitions/trade.OrderResponse", create.Responses["201"].Schema.Ref)
	assert.Equal(t, "#/definitions/dto.ErrorResponse", create.Responses["400"].Schema.Ref)
	assert.NotEmpty(t, create.Security)

	list := doc.Paths["/api/products/all"]["get"]
	assert.Equal(t, "array", list.Responses["200"].Schema.Type)
	assert.Equal(t, "#/definitions/catalog.ProductResponse", list.Responses["200"].Schema.Items.Ref)
	assert.Empty(t, list.Security)

	assert.Empty(t, doc.Paths["/api/users"]["post"].Security, "registration is public")
	assert.Equal(t, "string", doc.Paths["/payment/notify"]["post"].Responses["200"].Schema.Type)

	for _, name := range []string{"trade.OrderItemRequest", "trade.OrderItemResponse", "member.UserResponse", "dto.ValidationDetail"} {
		assert.Contains(t, doc.Definitions, name)
	}

	var required []string
	require.NoError(t, json.Unmarshal(doc.Definitions["trade.CreateOrderRequest"]["required"], &required))
	assert.ElementsMatch(t, []string{"userId", "shopId", "addressId", "items"}, required)
}

func TestSwaggerJSON_MatchesTemplate(t *testing.T) {
	raw, err := os.ReadFile("swagger.json")
	require.NoError(t, err)

	var file swaggerDoc
	require.NoError(t, json.Unmarshal(raw, &file))
	served := readDoc(t)
	assert.Equal(t, len(served.Paths), len(file.Paths))
	assert.Equal(t, len(served.Definitions), len(file.Definitions))
}
