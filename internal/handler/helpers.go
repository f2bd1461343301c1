package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"energen/internal/apierror"
	"energen/internal/finanzas"
	"energen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
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

	// Report fields by their JSON name.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service errors to status codes. Anything unknown goes
// to c.Errors and ErrorHandler answers with a generic 500.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidacionError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidationDetail(verr.Mensaje, verr.Campos))
	case errors.Is(err, service.ErrClienteNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(service.ErrClienteNoEncontrado.Error()))
	case errors.Is(err, service.ErrCargaDatos):
		c.JSON(http.StatusServiceUnavailable, apierror.New(service.ErrCargaDatos.Error()))
	case errors.Is(err, service.ErrGuardar):
		c.JSON(http.StatusInternalServerError, apierror.New(service.ErrGuardar.Error()))
	case errors.Is(err, service.ErrEliminar):
		c.JSON(http.StatusInternalServerError, apierror.New(service.ErrEliminar.Error()))
	case errors.Is(err, service.ErrEmailRegistrado):
		c.JSON(http.StatusConflict, apierror.New(service.ErrEmailRegistrado.Error()))
	case errors.Is(err, service.ErrCredenciales),
		errors.Is(err, service.ErrTokenInvalido),
		errors.Is(err, service.ErrUsuarioNoEncontrado):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// ventanaQuery reads ?ventana=, defaulting to MONTH.
func ventanaQuery(c *gin.Context) (finanzas.Ventana, bool) {
	raw := c.Query("ventana")
	if raw == "" {
		return finanzas.VentanaMes, true
	}
	v, ok := finanzas.ParseVentana(raw)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{"ventana": "oneof=WEEK MONTH ALL"}))
		return "", false
	}
	return v, true
}
