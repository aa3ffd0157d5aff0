package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/infra/memory"
	"storefront/internal/server"
)

type cli struct {
	t     *testing.T
	store *memory.Store
}

// スタブAPIを立て、セッションはtmpのファイルに保存する
func newCLI(t *testing.T) *cli {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, store.Seed())

	srv := httptest.NewServer(server.New("cli-secret", store, nil))
	t.Cleanup(srv.Close)

	t.Setenv("STOREFRONT_API_URL", srv.URL)
	t.Setenv("SESSION_DRIVER", "file")
	t.Setenv("SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("GO_ENV", "prod")
	t.Setenv("LOG_LEVEL", "error")

	return &cli{t: t, store: store}
}

func (c *cli) run(args ...string) (int, string, string) {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func (c *cli) productID(name string) string {
	c.t.Helper()
	items, _ := c.store.Products(memory.ProductFilter{Search: name}, "")
	require.NotEmpty(c.t, items)
	return items[0].ID
}

func TestCLI_LoginPersistsAcrossRuns(t *testing.T) {
	c := newCLI(t)

	code, out, _ := c.run("-cmd", "whoami")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Not logged in")

	code, out, errOut := c.run("-cmd", "login", "-email", memory.DemoEmail, "-password", memory.DemoPassword)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Logged in as")
	assert.Contains(t, out, "Cart: 0 items, payable $0.00")
	assert.Contains(t, out, "Wishlist: 0 items")

	code, out, _ = c.run("-cmd", "whoami")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, memory.DemoEmail)

	code, _, _ = c.run("-cmd", "logout")
	assert.Equal(t, 0, code)

	code, out, _ = c.run("-cmd", "whoami")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Not logged in")
}

func TestCLI_CartFlow(t *testing.T) {
	c := newCLI(t)
	tee := c.productID("Classic Tee")

	code, _, errOut := c.run("-cmd", "login", "-email", memory.DemoEmail, "-password", memory.DemoPassword)
	require.Equal(t, 0, code, errOut)

	code, out, errOut := c.run("-cmd", "add", "-product", tee, "-qty", "2")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Payable: $39.98")
	assert.Contains(t, errOut, "[success] Product added to cart!")

	code, out, _ = c.run("-cmd", "inc", "-product", tee)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Payable: $59.97")

	code, out, _ = c.run("-cmd", "set", "-product", tee, "-qty", "0")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Cart is empty")
}

func TestCLI_OutOfStockReportsOnce(t *testing.T) {
	c := newCLI(t)
	beanie := c.productID("Wool Beanie")

	code, _, _ := c.run("-cmd", "login", "-email", memory.DemoEmail, "-password", memory.DemoPassword)
	require.Equal(t, 0, code)

	code, _, errOut := c.run("-cmd", "add", "-product", beanie, "-qty", "10")
	assert.Equal(t, 1, code)
	assert.Equal(t, "[error] Not enough stock\n", errOut)
}

func TestCLI_NotLoggedIn_AsksToLogin(t *testing.T) {
	c := newCLI(t)

	code, _, errOut := c.run("-cmd", "cart")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Please login again.")
}

func TestCLI_WishlistToggle(t *testing.T) {
	c := newCLI(t)
	tee := c.productID("Classic Tee")

	code, _, _ := c.run("-cmd", "login", "-email", memory.DemoEmail, "-password", memory.DemoPassword)
	require.Equal(t, 0, code)

	code, out, _ := c.run("-cmd", "toggle", "-product", tee)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "In wishlist")

	code, out, _ = c.run("-cmd", "wishlist")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Classic Tee")

	code, out, _ = c.run("-cmd", "toggle", "-product", tee)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Not in wishlist")
}

func TestCLI_ProductsAndUsage(t *testing.T) {
	c := newCLI(t)

	code, out, _ := c.run("-cmd", "products", "-sort", "asc", "-limit", "2")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Canvas Tote")
	assert.Contains(t, out, "page 1/3 (5 items)")

	code, _, errOut := c.run("-cmd", "nope")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown command")

	code, _, _ = c.run("-cmd", "product")
	assert.Equal(t, 2, code)

	code, _, errOut = c.run("-cmd", "login", "-email", memory.DemoEmail, "-password", "wrong")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Invalid email or password")
}

func TestCLI_HomeLoadsCartAndWishlist(t *testing.T) {
	c := newCLI(t)
	tee := c.productID("Classic Tee")

	code, _, errOut := c.run("-cmd", "home")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Please login again.")

	code, _, errOut = c.run("-cmd", "login", "-email", memory.DemoEmail, "-password", memory.DemoPassword)
	require.Equal(t, 0, code, errOut)

	code, _, errOut = c.run("-cmd", "add", "-product", tee, "-qty", "2")
	require.Equal(t, 0, code, errOut)
	code, _, errOut = c.run("-cmd", "toggle", "-product", tee)
	require.Equal(t, 0, code, errOut)

	code, out, errOut := c.run("-cmd", "home")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Cart: 2 items, payable $39.98")
	assert.Contains(t, out, "Wishlist: 1 items")
}
