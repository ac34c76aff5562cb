package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"

	"vedacart/internal/apierror"
	"vedacart/internal/media"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
// Field-rule validation (presence, variant dispatch) happens later in the
// service layer; this only rejects malformed JSON and bad enum values.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var violations []string
		for _, fe := range err.(validator.ValidationErrors) {
			violations = append(violations, fe.Field()+": "+fe.Tag())
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(violations))
		return false
	}
	return true
}

// respondError maps service-layer errors to status codes. Unrecognized errors
// fall through to the ErrorHandler middleware as opaque 500s.
func respondError(c *gin.Context, err error) {
	var verr *apierror.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, verr)
	case errors.Is(err, apierror.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Product not found"))
	case errors.Is(err, apierror.ErrDuplicate):
		c.JSON(http.StatusConflict, apierror.New("A product with this name already exists"))
	case errors.Is(err, apierror.ErrUpload):
		c.JSON(http.StatusBadGateway, apierror.New("Image upload failed"))
	default:
		_ = c.Error(err)
	}
}

// readFormFile loads one multipart file into memory for save-time upload.
func readFormFile(fh *multipart.FileHeader) (media.File, error) {
	f, err := fh.Open()
	if err != nil {
		return media.File{}, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return media.File{}, err
	}
	return media.File{Name: fh.Filename, Content: content}, nil
}
