package validation

import (
	"errors"
	"reflect"
	"strings"

	"katalog/internal/apperrors"
	"katalog/internal/models"

	"github.com/go-playground/validator/v10"
)

// Messages reported for each field.
const (
	MsgNameRequired        = "Name is required"
	MsgDescriptionRequired = "Description is required"
	MsgPriceRequired       = "Price is required"
	MsgPriceInvalid        = "Price must be a positive number"
	MsgCategoryRequired    = "Category is required"
	MsgInStockInvalid      = "inStock must be a boolean"
)

// productPayload is the typed form of a request body. Pointer fields distinguish
// absent values from zero values.
type productPayload struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gt=0"`
	Category    string   `json:"category" validate:"required"`
	InStock     *bool    `json:"inStock" validate:"required"`
}

// ProductValidator checks loosely-typed product payloads.
type ProductValidator struct {
	validate *validator.Validate
}

// NewProductValidator creates a ProductValidator that reports fields by their JSON names.
func NewProductValidator() *ProductValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ProductValidator{validate: v}
}

// Validate evaluates every rule independently and returns either the typed input
// or a *apperrors.ValidationError holding all violations.
func (pv *ProductValidator) Validate(raw map[string]interface{}) (models.ProductInput, error) {
	errs := make(map[string]string)
	var payload productPayload

	// Wire types are checked first. A value of the wrong type is reported as-is
	// and never coerced.
	payload.Name = stringField(raw, "name", MsgNameRequired, errs)
	payload.Description = stringField(raw, "description", MsgDescriptionRequired, errs)
	payload.Category = stringField(raw, "category", MsgCategoryRequired, errs)

	if v, ok := raw["price"]; ok && v != nil {
		if price, isNumber := v.(float64); isNumber {
			payload.Price = &price
		} else {
			errs["price"] = MsgPriceInvalid
		}
	}

	if v, ok := raw["inStock"]; ok && v != nil {
		if inStock, isBool := v.(bool); isBool {
			payload.InStock = &inStock
		} else {
			errs["inStock"] = MsgInStockInvalid
		}
	}

	if err := pv.validate.Struct(payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return models.ProductInput{}, err
		}
		for _, fe := range fieldErrs {
			if _, seen := errs[fe.Field()]; seen {
				continue
			}
			errs[fe.Field()] = messageFor(fe)
		}
	}

	if len(errs) > 0 {
		return models.ProductInput{}, apperrors.NewValidationError(errs)
	}

	return models.ProductInput{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       *payload.Price,
		Category:    payload.Category,
		InStock:     *payload.InStock,
	}, nil
}

// stringField returns raw[key] when it is a JSON string. Any other type is
// recorded as a violation with msg.
func stringField(raw map[string]interface{}, key, msg string, errs map[string]string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	s, isString := v.(string)
	if !isString {
		errs[key] = msg
		return ""
	}
	return s
}

func messageFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "name":
		return MsgNameRequired
	case "description":
		return MsgDescriptionRequired
	case "category":
		return MsgCategoryRequired
	case "inStock":
		return MsgInStockInvalid
	case "price":
		if fe.Tag() == "required" {
			return MsgPriceRequired
		}
		return MsgPriceInvalid
	}
	return "Field '" + fe.Field() + "' failed on the '" + fe.Tag() + "' tag"
}
