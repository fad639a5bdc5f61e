package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/magadrive/pricing-core/internal/domain"
	"github.com/magadrive/pricing-core/internal/http/response"
)

const maxRequestBodyBytes = 1 << 20

// priceRequest is the wire shape of POST /price. Pointers distinguish a
// missing field from an explicit zero. Upper bounds are 100,000 km and
// 100 days.
type priceRequest struct {
	DistanceM *float64 `json:"distanceM" validate:"required,gt=0,lte=100000000"`
	EtaSec    *float64 `json:"etaSec"    validate:"required,gt=0,lte=8640000"`
	Class     string   `json:"class"`
	BasePrice *int64   `json:"basePrice" validate:"omitempty,gt=0"`
}

// requestError is a caller-fixable failure mapped to a 400 envelope.
type requestError struct {
	code    string
	message string
}

func (e *requestError) Error() string {
	return e.message
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodePriceRequest parses and validates the request body.
func decodePriceRequest(
	w http.ResponseWriter,
	r *http.Request,
	validate *validator.Validate,
) (domain.PricingRequest, error) {
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	var wire priceRequest
	if err := decodeJSON(body, &wire); err != nil {
		return domain.PricingRequest{}, err
	}

	if err := validate.Struct(&wire); err != nil {
		return domain.PricingRequest{}, validationError(err)
	}

	class := domain.VehicleClass(strings.ToLower(strings.TrimSpace(wire.Class)))
	if class == "" {
		class = domain.ClassComfort
	}

	return domain.PricingRequest{
		DistanceM: *wire.DistanceM,
		EtaSec:    *wire.EtaSec,
		Class:     class,
		BasePrice: wire.BasePrice,
	}, nil
}

func decodeJSON(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)

	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var maxBytesErr *http.MaxBytesError

		switch {
		case errors.As(err, &typeErr):
			field := typeErr.Field
			if field == "" {
				return &requestError{
					code:    response.CodeInvalidRequest,
					message: "request body must be a JSON object",
				}
			}
			return &requestError{
				code:    response.CodeInvalidRequest,
				message: fmt.Sprintf("field %s must be of type %s", field, typeErr.Type),
			}
		case errors.As(err, &maxBytesErr):
			return &requestError{
				code:    response.CodeJSONParseError,
				message: fmt.Sprintf("request body exceeds %d bytes", maxBytesErr.Limit),
			}
		case errors.Is(err, io.EOF):
			return &requestError{
				code:    response.CodeJSONParseError,
				message: "request body is empty",
			}
		default:
			return &requestError{
				code:    response.CodeJSONParseError,
				message: "malformed JSON body",
			}
		}
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &requestError{
			code:    response.CodeJSONParseError,
			message: "unexpected data after JSON body",
		}
	}

	return nil
}

// validationError maps validator failures to envelope codes. Missing fields
// take precedence over out-of-range values.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &requestError{
			code:    response.CodeInvalidRequest,
			message: "invalid request",
		}
	}

	var missing, invalid []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fe.Field())
	}

	if len(missing) > 0 {
		return &requestError{
			code:    response.CodeInvalidRequest,
			message: "missing required fields: " + strings.Join(missing, ", "),
		}
	}

	return &requestError{
		code:    response.CodeInvalidParameters,
		message: "fields out of range: " + strings.Join(invalid, ", "),
	}
}
