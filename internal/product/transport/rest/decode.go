package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/HumayunBA/QA-API-Testing/internal/product/service"
	"github.com/shopspring/decimal"
)

const contentTypeForm = "application/x-www-form-urlencoded"

// isForm reports whether the body is an HTML form post. Anything else is read as JSON.
func isForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == contentTypeForm
}

// decodeCreate reads a create body. An empty form value counts as missing.
func decodeCreate(r *http.Request) (service.ProductCreateDto, error) {
	var dto service.ProductCreateDto
	if !isForm(r) {
		err := json.NewDecoder(r.Body).Decode(&dto)
		return dto, err
	}
	if err := r.ParseForm(); err != nil {
		return dto, fmt.Errorf("failed to parse form: %w", err)
	}
	form := r.PostForm

	var err error
	if dto.ID, err = formInt(form, "id"); err != nil {
		return dto, err
	}
	if dto.Price, err = formDecimal(form, "price"); err != nil {
		return dto, err
	}
	if dto.Quantity, err = formInt(form, "quantity"); err != nil {
		return dto, err
	}
	dto.Name = form.Get("name")
	dto.Description = form.Get("description")
	dto.Category = form.Get("category")
	return dto, nil
}

// decodeUpdate reads an update body. Fields missing from the body stay nil.
// An empty JSON body carries no fields at all.
func decodeUpdate(r *http.Request) (service.ProductUpdateDto, error) {
	var dto service.ProductUpdateDto
	if !isForm(r) {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
			return dto, err
		}
		return dto, nil
	}
	if err := r.ParseForm(); err != nil {
		return dto, fmt.Errorf("failed to parse form: %w", err)
	}
	form := r.PostForm

	dto.Name = formString(form, "name")
	dto.Description = formString(form, "description")
	dto.Category = formString(form, "category")
	if form.Has("price") {
		price, err := formDecimal(form, "price")
		if err != nil {
			return dto, err
		}
		dto.Price = decimal.NewNullDecimal(price)
	}
	if form.Has("quantity") {
		quantity, err := formInt(form, "quantity")
		if err != nil {
			return dto, err
		}
		dto.Quantity = &quantity
	}
	return dto, nil
}

func formString(form url.Values, key string) *string {
	if !form.Has(key) {
		return nil
	}
	v := form.Get(key)
	return &v
}

func formInt(form url.Values, key string) (int64, error) {
	raw := form.Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s form value %q: %w", key, raw, err)
	}
	return v, nil
}

func formDecimal(form url.Values, key string) (decimal.Decimal, error) {
	raw := form.Get(key)
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s form value %q: %w", key, raw, err)
	}
	return v, nil
}
