package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/MichalMitros/catalog-stock-monitor/internal/decoder"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contentType = "Content-Type"
	jsonType    = "application/json"
)

// Catalog is mocked catalog API state.
type Catalog struct {
	mu       sync.Mutex
	products []decoder.Product
	stock    map[string]map[string]int
}

// SetProducts replaces listed products.
func (c *Catalog) SetProducts(products []decoder.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = products
}

// SetStock sets stock levels per size of product.
func (c *Catalog) SetStock(code string, sizes map[string]int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stock == nil {
		c.stock = make(map[string]map[string]int)
	}
	c.stock[code] = sizes
}

func (c *Catalog) page() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	return map[string]any{
		"products":   c.products,
		"pagination": map[string]int{"totalPages": 1, "totalResults": len(c.products)},
	}
}

func (c *Catalog) detail(code string) map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	variants := lo.MapToSlice(c.stock[code], func(size string, level int) map[string]any {
		return map[string]any{"size": size, "stock": map[string]int{"stockLevel": level}}
	})

	return map[string]any{
		"baseOptions": []any{
			map[string]any{"options": []any{map[string]any{"variantOptions": variants}}},
		},
	}
}

// PrepareMockedCatalogServer returns http server serving single page category listing and product details.
func PrepareMockedCatalogServer(t *testing.T, category string) (*httptest.Server, *Catalog) {
	t.Helper()

	cat := &Catalog{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/category/"+category, func(wrt http.ResponseWriter, _ *http.Request) {
		writeJSON(t, wrt, cat.page())
	})
	mux.HandleFunc("/api/p/", func(wrt http.ResponseWriter, req *http.Request) {
		writeJSON(t, wrt, cat.detail(strings.TrimPrefix(req.URL.Path, "/api/p/")))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, cat
}

// Telegram is mocked Telegram Bot API recording sent messages.
type Telegram struct {
	mu       sync.Mutex
	messages []string
}

// Messages returns texts of messages sent so far.
func (tg *Telegram) Messages() []string {
	tg.mu.Lock()
	defer tg.mu.Unlock()

	return append([]string(nil), tg.messages...)
}

// PrepareMockedTelegramServer returns http server answering getMe and sendMessage bot methods.
// Returned endpoint is format accepted by tgbotapi.NewBotAPIWithClient.
func PrepareMockedTelegramServer(t *testing.T, chatID string) (*httptest.Server, string, *Telegram) {
	t.Helper()

	tg := &Telegram{}
	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		switch {
		case strings.HasSuffix(req.URL.Path, "/getMe"):
			writeRaw(wrt, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"monitor","username":"monitor_bot"}}`)
		case strings.HasSuffix(req.URL.Path, "/sendMessage"):
			assert.NoError(t, req.ParseForm())
			assert.Equal(t, chatID, req.PostForm.Get("chat_id"), "should send message to configured chat")
			assert.Equal(t, "HTML", req.PostForm.Get("parse_mode"), "should send HTML message")

			tg.mu.Lock()
			tg.messages = append(tg.messages, req.PostForm.Get("text"))
			tg.mu.Unlock()

			writeRaw(wrt, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`)
		default:
			wrt.WriteHeader(http.StatusNotFound)
			writeRaw(wrt, `{"ok":false,"error_code":404,"description":"Not Found"}`)
		}
	}))
	t.Cleanup(srv.Close)

	return srv, srv.URL + "/bot%s/%s", tg
}

// Products returns n catalog products with integer codes starting at from.
func Products(from, n int) []decoder.Product {
	return lo.Times(n, func(ix int) decoder.Product {
		code := fmt.Sprintf("%d", from+ix)
		return decoder.Product{
			Code:  decoder.Code(code),
			Name:  lo.ToPtr("Product " + code),
			Price: &decoder.Price{Value: lo.ToPtr(1000.0), FormattedValue: lo.ToPtr("Rs.1000.00")},
			OfferPrice: &decoder.Price{
				Value:                 lo.ToPtr(750.0),
				DisplayFormattedValue: lo.ToPtr("₹750"),
			},
			BrickNameText:   lo.ToPtr("Tops"),
			SegmentNameText: lo.ToPtr("Women"),
			URL:             lo.ToPtr("/product-" + code + "/p/" + code),
		}
	})
}

// CleanupRMQQueue is helper function which deletes RMQ queue after test is finished.
func CleanupRMQQueue(t *testing.T, channel *amqp.Channel, queue string) {
	t.Helper()

	t.Cleanup(func() {
		_, err := channel.QueueDelete(queue, false, false, false)
		require.NoError(t, err, "can't delete queue")
	})
}

func writeJSON(t *testing.T, wrt http.ResponseWriter, body any) {
	wrt.Header().Set(contentType, jsonType)
	assert.NoError(t, json.NewEncoder(wrt).Encode(body))
}

func writeRaw(wrt http.ResponseWriter, body string) {
	wrt.Header().Set(contentType, jsonType)
	_, _ = wrt.Write([]byte(body))
}
