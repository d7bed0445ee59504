package chi

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/usecase/images"
	"github.com/kailas-cloud/arttinder/internal/usecase/recommend"
	"github.com/kailas-cloud/arttinder/internal/usecase/suggest"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the shared validator. Field errors are reported by query parameter name.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("query"), ",")
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

type searchParams struct {
	Q       string `query:"q" validate:"required"`
	PerPage int    `query:"per_page" validate:"min=1,max=80"`
	Page    int    `query:"page" validate:"min=1"`
	APIKey  string `query:"api_key"`
}

type recommendParams struct {
	PerPage int    `query:"per_page" validate:"min=1,max=30"`
	Page    int    `query:"page" validate:"min=1"`
	APIKey  string `query:"api_key"`
}

type suggestParams struct {
	Q     string `query:"q" validate:"required"`
	Limit int    `query:"limit" validate:"min=1,max=10"`
}

type handleParams struct {
	Handle string `query:"handle" validate:"required"`
}

type keyParams struct {
	APIKey string `query:"api_key"`
}

func parseSearchParams(r *http.Request) (searchParams, error) {
	p := searchParams{PerPage: images.DefaultPerPage, Page: 1}
	err := bindQuery(r, &p)
	return p, err
}

func parseRecommendParams(r *http.Request) (recommendParams, error) {
	p := recommendParams{PerPage: recommend.DefaultPerPage, Page: 1}
	err := bindQuery(r, &p)
	return p, err
}

func parseSuggestParams(r *http.Request) (suggestParams, error) {
	p := suggestParams{Limit: suggest.DefaultLimit}
	err := bindQuery(r, &p)
	return p, err
}

func parseHandleParams(r *http.Request) (handleParams, error) {
	var p handleParams
	err := bindQuery(r, &p)
	return p, err
}

func parseKeyParams(r *http.Request) (keyParams, error) {
	var p keyParams
	err := bindQuery(r, &p)
	return p, err
}

// errBadParameter marks a query value that could not be converted to its field type.
var errBadParameter = errors.New("bad query parameter")

// bindQuery fills the query-tagged fields of dest that are present in the URL, keeping
// preset defaults for absent ones, then validates the result.
func bindQuery(r *http.Request, dest any) error {
	query := r.URL.Query()
	v := reflect.ValueOf(dest).Elem()
	t := v.Type()

	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("query"), ",")
		if name == "" {
			continue
		}
		if err := runtime.BindQueryParameter("form", true, false, name, query, v.Field(i).Addr().Interface()); err != nil {
			return fmt.Errorf("invalid %s: %w", name, errBadParameter)
		}
	}

	if err := getValidator().Struct(dest); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError converts validator field errors into a single invalid-request error.
func validationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidRequest)
	}
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		msgs = append(msgs, translateError(fe))
	}
	return fmt.Errorf("%s: %w", strings.Join(msgs, "; "), domain.ErrInvalidRequest)
}

func translateError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
