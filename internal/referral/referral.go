// Package referral builds the shareable links sellers send to buyers and
// decodes them again on the checkout side.
package referral

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"reseller/internal/models"
	"reseller/internal/pricing"

	"github.com/shopspring/decimal"
)

// Query parameter names used by buy links.
const (
	ParamProduct       = "product"
	ParamSeller        = "seller"
	ParamSellerName    = "sellerName"
	ParamPrice         = "price"
	ParamOriginalPrice = "originalPrice"
)

// BuyParams is the typed payload carried from the catalog to the checkout.
type BuyParams struct {
	ProductID     string          `json:"product_id"`
	SellerID      string          `json:"seller_id"`
	SellerName    string          `json:"seller_name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
}

// Values encodes p as query parameters. The product id goes in the path.
func (p BuyParams) Values() url.Values {
	v := url.Values{}
	v.Set(ParamSeller, p.SellerID)
	v.Set(ParamSellerName, p.SellerName)
	v.Set(ParamPrice, p.Price.String())
	v.Set(ParamOriginalPrice, p.OriginalPrice.String())
	return v
}

// Profit is the seller's profit on one unit at these prices.
func (p BuyParams) Profit() decimal.Decimal {
	return pricing.Profit(p.Price, p.OriginalPrice)
}

// ParseBuyParams validates the route parameters of a buy link. Every field is
// required; prices must be non-negative numbers below pricing.MaxPrice.
func ParseBuyParams(productID string, q url.Values) (BuyParams, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return BuyParams{}, &models.ParamError{Name: ParamProduct, Reason: models.ParamMissing}
	}
	p := BuyParams{ProductID: productID}

	var err error
	if p.SellerID, err = required(q, ParamSeller); err != nil {
		return BuyParams{}, err
	}
	if p.SellerName, err = required(q, ParamSellerName); err != nil {
		return BuyParams{}, err
	}
	if p.Price, err = price(q, ParamPrice); err != nil {
		return BuyParams{}, err
	}
	if p.OriginalPrice, err = price(q, ParamOriginalPrice); err != nil {
		return BuyParams{}, err
	}
	return p, nil
}

func required(q url.Values, name string) (string, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return "", &models.ParamError{Name: name, Reason: models.ParamMissing}
	}
	return v, nil
}

func price(q url.Values, name string) (decimal.Decimal, error) {
	raw, err := required(q, name)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := pricing.Parse(raw)
	if errors.Is(err, pricing.ErrPriceOutOfRange) {
		return decimal.Zero, &models.ParamError{Name: name, Reason: models.ParamOutOfRange}
	}
	if err != nil {
		return decimal.Zero, &models.ParamError{Name: name, Value: raw, Reason: models.ParamMalformed}
	}
	return d, nil
}

// Link is a shareable referral artifact for one product and seller.
type Link struct {
	URL    string    `json:"url"`
	Params BuyParams `json:"params"`
}

// Generator produces referral links. Implementations may call out to a
// shortener or deep-link service.
type Generator interface {
	Generate(ctx context.Context, product *models.Product, sellerID, sellerName string) (Link, error)
}

// URLGenerator builds plain links of the form <base>/buy/<product>?<params>.
type URLGenerator struct {
	base *url.URL
}

// NewURLGenerator parses baseURL once. It must be absolute.
func NewURLGenerator(baseURL string) (*URLGenerator, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid link base URL %q: %w", baseURL, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("link base URL %q must be absolute", baseURL)
	}
	return &URLGenerator{base: u}, nil
}

// Generate implements Generator.
func (g *URLGenerator) Generate(_ context.Context, product *models.Product, sellerID, sellerName string) (Link, error) {
	if product == nil {
		return Link{}, models.ErrProductNotFound
	}
	if sellerID == "" || sellerName == "" {
		return Link{}, errors.New("seller identity is required to generate a link")
	}
	params := BuyParams{
		ProductID:     product.ID,
		SellerID:      sellerID,
		SellerName:    sellerName,
		Price:         product.SellerPrice,
		OriginalPrice: product.OriginalPrice,
	}
	u := *g.base
	u.Path = u.Path + "/buy/" + url.PathEscape(product.ID)
	u.RawQuery = params.Values().Encode()
	return Link{URL: u.String(), Params: params}, nil
}
