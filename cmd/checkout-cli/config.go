package main

import (
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"

	"github.com/xenking/storefront-checkout/internal/checkout"
	"github.com/xenking/storefront-checkout/internal/storefront"
)

// Config is read from CHECKOUT_* environment variables, flags and
// checkout.yaml.
type Config struct {
	BaseURL       string        `default:"http://localhost:8080" usage:"Storefront base URL" flag:"base-url"`
	Session       string        `usage:"Existing session cookie to check out with (its cart is ordered)" flag:"session"`
	SessionCookie string        `default:"sessionid" usage:"Session cookie name" flag:"session-cookie"`
	Timeout       time.Duration `default:"30s" usage:"Deadline for the whole checkout" flag:"timeout"`

	Shopper  Shopper
	Routes   storefront.Routes
	Checkout checkout.Config
}

// Shopper is what gets typed into the checkout form. Country, Region and City
// match option labels case-insensitively; empty Region or City picks the
// first offered option.
type Shopper struct {
	FirstName   string `default:"Aya" usage:"Shipping first name"`
	LastName    string `default:"Kouassi" usage:"Shipping last name"`
	Phone       string `default:"0700000000" usage:"Shipping phone"`
	Address     string `default:"Rue des Jardins" usage:"Shipping address"`
	Country     string `usage:"Destination country (page default when empty)"`
	Region      string `usage:"Domestic region name"`
	City        string `usage:"Domestic city name"`
	ForeignCity string `usage:"City abroad"`
	Payment     string `default:"orangemoney" usage:"Payment method value"`
	Notes       string `usage:"Order notes"`
}

func loadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "CHECKOUT",
		Files:     []string{"checkout.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("base url is required")
	}
	return &cfg, nil
}
