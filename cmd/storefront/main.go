package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"storefront/internal/apiclient"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/usecase"
)

const commands = "login|logout|whoami|home|register|products|product|cart|add|set|remove|inc|dec|" +
	"wishlist|toggle|addresses|address-add|address-update|address-delete|" +
	"send-otp|verify-otp|reset-password|change-password"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// コマンドラインの値
type options struct {
	cmd string
	api string

	email    string
	password string
	confirm  string
	old      string

	name   string
	gender string
	phone  int64
	dob    string

	product string
	qty     int64

	search   string
	page     int
	limit    int
	sort     string
	brand    string
	category string
	rating   string

	id      string
	address string
	city    string
	state   string
	pin     int
	otp     int
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.cmd, "cmd", "products", "Command: "+commands)
	fs.StringVar(&o.api, "api", "", "Override API base URL (e.g. http://localhost:4001)")

	fs.StringVar(&o.email, "email", "", "Email")
	fs.StringVar(&o.password, "password", "", "Password (new password for reset/change)")
	fs.StringVar(&o.confirm, "confirm", "", "Confirm password")
	fs.StringVar(&o.old, "old", "", "Current password (change-password)")

	fs.StringVar(&o.name, "name", "", "Name (register)")
	fs.StringVar(&o.gender, "gender", "", "Gender (register)")
	fs.Int64Var(&o.phone, "phone", 0, "Phone number (register)")
	fs.StringVar(&o.dob, "dob", "", "Date of birth (register)")

	fs.StringVar(&o.product, "product", "", "Product ID")
	fs.Int64Var(&o.qty, "qty", 1, "Quantity")

	fs.StringVar(&o.search, "search", "", "Search text")
	fs.IntVar(&o.page, "page", 1, "Page")
	fs.IntVar(&o.limit, "limit", 10, "Page size")
	fs.StringVar(&o.sort, "sort", "", "Price order: asc|desc")
	fs.StringVar(&o.brand, "brand", "", "Brand filter")
	fs.StringVar(&o.category, "category", "", "Category filter")
	fs.StringVar(&o.rating, "rating", "", "Minimum rating")

	fs.StringVar(&o.id, "id", "", "Address ID")
	fs.StringVar(&o.address, "address", "", "Full address")
	fs.StringVar(&o.city, "city", "", "City")
	fs.StringVar(&o.state, "state", "", "State")
	fs.IntVar(&o.pin, "pin", 0, "Pin code")
	fs.IntVar(&o.otp, "otp", 0, "OTP")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return o, nil
}

// run は終了コードを返す（0:成功 1:失敗 2:使い方の誤り）
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	if o.api != "" {
		cfg.APIBaseURL = strings.TrimRight(o.api, "/")
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 2
		}
	}

	log, err := logger.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	a, err := newApp(ctx, cfg, log, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	defer a.Close()

	err = dispatch(ctx, a, o, stdout)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		return 2
	case errors.Is(err, apiclient.ErrUnauthorized):
		fmt.Fprintln(stderr, "Session expired. Please login again.")
		return 1
	case a.hadError():
		//通知で既に出ている
		return 1
	case errors.Is(err, usecase.ErrValidation):
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	default:
		fmt.Fprintln(stderr, "Error:", apiclient.UserMessage(err, err.Error()))
		return 1
	}
}
