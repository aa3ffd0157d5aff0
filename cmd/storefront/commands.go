package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

var errUsage = errors.New("usage error")

func usage(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func dispatch(ctx context.Context, a *app, o options, out io.Writer) error {
	switch o.cmd {
	case "login":
		u, err := a.auth.Login(ctx, o.email, o.password)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Logged in as %s\n", displayName(u))
		//ログイン自体は成功しているので、読み込み失敗は通知だけにする
		if err := printHome(ctx, a, out); err != nil {
			a.log.Warn("load storefront after login failed", zap.Error(err))
		}
		return nil

	case "home":
		return printHome(ctx, a, out)

	case "logout":
		if err := a.auth.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Logged out")
		return nil

	case "whoami":
		u, ok, err := a.auth.CurrentUser(ctx)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Not logged in")
			return nil
		}
		fmt.Fprintf(out, "%s <%s> role=%s\n", displayName(u), u.Email, u.Role)
		return nil

	case "register":
		in := repo.RegisterInput{
			Name:        o.name,
			Email:       o.email,
			Gender:      o.gender,
			Phone:       o.phone,
			Password:    o.password,
			DateOfBirth: o.dob,
		}
		if o.address != "" {
			in.Address = []repo.RegisterAddress{{Street: o.address, City: o.city, State: o.state, Pin: o.pin}}
		}
		msg, err := a.auth.Register(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
		return nil

	case "products":
		page, err := a.products.List(ctx, repo.ProductQuery{
			Page:       o.page,
			Limit:      o.limit,
			Search:     o.search,
			PriceOrder: o.sort,
			Brand:      o.brand,
			Rating:     o.rating,
			Category:   o.category,
		})
		if err != nil {
			return err
		}
		printProducts(out, page)
		return nil

	case "product":
		if o.product == "" {
			return usage("-product required")
		}
		p, err := a.products.Get(ctx, o.product)
		if err != nil {
			return err
		}
		printProduct(out, p)
		return nil

	case "cart":
		cart, err := a.cart.Refresh(ctx)
		if err != nil {
			return err
		}
		printCart(out, cart)
		return nil

	case "add":
		cart, err := a.cart.AddItem(ctx, o.product, o.qty)
		if err != nil {
			return err
		}
		printCart(out, cart)
		return nil

	case "set":
		cart, err := a.cart.SetQuantity(ctx, o.product, o.qty)
		if err != nil {
			return err
		}
		printCart(out, cart)
		return nil

	case "remove":
		cart, err := a.cart.RemoveItem(ctx, o.product)
		if err != nil {
			return err
		}
		printCart(out, cart)
		return nil

	case "inc", "dec":
		delta := int64(1)
		if o.cmd == "dec" {
			delta = -1
		}
		//確定済みの数量から±1する
		if _, err := a.cart.Refresh(ctx); err != nil {
			return err
		}
		cart, err := a.cart.Step(ctx, o.product, delta)
		if err != nil {
			return err
		}
		printCart(out, cart)
		return nil

	case "wishlist":
		if _, err := a.wishlist.Refresh(ctx); err != nil {
			return err
		}
		items := a.wishlist.Products()
		if len(items) == 0 {
			fmt.Fprintln(out, "Wishlist is empty")
			return nil
		}
		for _, p := range items {
			fmt.Fprintf(out, "%s  %-24s %10s\n", p.ID, p.Name, model.FormatMoney(p.Price))
		}
		return nil

	case "toggle":
		if _, err := a.wishlist.Refresh(ctx); err != nil {
			return err
		}
		on, err := a.wishlist.Toggle(ctx, o.product, a.wishlist.IsWishlisted(o.product))
		if err != nil {
			return err
		}
		if on {
			fmt.Fprintln(out, "In wishlist")
		} else {
			fmt.Fprintln(out, "Not in wishlist")
		}
		return nil

	case "addresses":
		book, err := a.address.List(ctx)
		if err != nil {
			return err
		}
		if len(book.AllAddress) == 0 {
			fmt.Fprintln(out, "No addresses")
			return nil
		}
		for _, ad := range book.AllAddress {
			fmt.Fprintf(out, "%s  %s, %s, %s %d\n", ad.ID, ad.FullAddress, ad.City, ad.State, ad.Pin)
		}
		return nil

	case "address-add":
		msg, err := a.address.Add(ctx, []repo.AddressInput{addressInput(o)})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
		return nil

	case "address-update":
		msg, err := a.address.Update(ctx, o.id, addressInput(o))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
		return nil

	case "address-delete":
		msg, err := a.address.Delete(ctx, o.id)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
		return nil

	case "send-otp":
		otp, err := a.auth.SendOTP(ctx, o.email)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "OTP sent: %s\n", otp)
		return nil

	case "verify-otp":
		msg, err := a.auth.VerifyOTP(ctx, o.email, o.otp)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
		return nil

	case "reset-password":
		msg, err := a.auth.ResetPassword(ctx, o.email, o.password, o.confirm)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
		return nil

	case "change-password":
		msg, err := a.auth.ChangePassword(ctx, o.old, o.password, o.confirm)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
		fmt.Fprintln(out, "Please login again.")
		return nil

	default:
		return usage("unknown command %q (want %s)", o.cmd, commands)
	}
}

func addressInput(o options) repo.AddressInput {
	return repo.AddressInput{FullAddress: o.address, City: o.city, State: o.state, Pin: o.pin}
}

func displayName(u model.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func printProducts(out io.Writer, page model.ProductPage) {
	if len(page.Items) == 0 {
		fmt.Fprintln(out, "No products")
		return
	}
	for _, p := range page.Items {
		mark := " "
		if p.InWishlist {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %s  %-24s %10s  stock=%d\n", mark, p.ID, p.Name, model.FormatMoney(p.Price), p.Stock)
	}
	if pg := page.Pagination; pg != nil {
		fmt.Fprintf(out, "page %d/%d (%d items)\n", pg.Page, pg.TotalPages, pg.TotalDocuments)
	}
}

func printProduct(out io.Writer, p model.Product) {
	fmt.Fprintf(out, "%s\n", p.Name)
	fmt.Fprintf(out, "  id:       %s\n", p.ID)
	fmt.Fprintf(out, "  price:    %s\n", model.FormatMoney(p.Price))
	fmt.Fprintf(out, "  stock:    %d\n", p.Stock)
	if p.Brand != "" {
		fmt.Fprintf(out, "  brand:    %s\n", p.Brand)
	}
	if p.Category != "" {
		fmt.Fprintf(out, "  category: %s\n", p.Category)
	}
	fmt.Fprintf(out, "  rating:   %s\n", strconv.FormatFloat(p.AvgRating, 'f', 1, 64))
	if p.Description != "" {
		fmt.Fprintf(out, "  %s\n", p.Description)
	}
}

// カートとウィッシュリストを並行で読み、件数をまとめて出す
func printHome(ctx context.Context, a *app, out io.Writer) error {
	cart, entries, err := a.front.Refresh(ctx)
	if err != nil {
		return err
	}
	var qty int64
	for _, l := range cart.Lines() {
		qty += l.Quantity
	}
	fmt.Fprintf(out, "Cart: %d items, payable %s\n", qty, model.FormatMoney(cart.PayableAmount))
	fmt.Fprintf(out, "Wishlist: %d items\n", len(entries))
	return nil
}

// 金額はサーバーの値をそのまま出す
func printCart(out io.Writer, cart model.CartAggregate) {
	if cart.IsEmpty() {
		fmt.Fprintln(out, "Cart is empty")
		return
	}
	for _, l := range cart.Lines() {
		fmt.Fprintf(out, "%s  %-24s x%-3d %10s\n", l.ProductID, l.Name, l.Quantity, model.FormatMoney(l.UnitPrice))
	}
	fmt.Fprintf(out, "Total:   %s\n", model.FormatMoney(cart.TotalPrice))
	if cart.AppliedCoupon != "" {
		fmt.Fprintf(out, "Coupon:  %s\n", cart.AppliedCoupon)
	}
	fmt.Fprintf(out, "Payable: %s\n", model.FormatMoney(cart.PayableAmount))
}
