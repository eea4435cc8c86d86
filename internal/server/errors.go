package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/maderas/backend/internal/audit/domain"
	authdomain "github.com/maderas/backend/internal/auth/domain"
	"github.com/maderas/backend/internal/authorization"
	carrierdomain "github.com/maderas/backend/internal/carrier/domain"
	clientdomain "github.com/maderas/backend/internal/client/domain"
	freightdomain "github.com/maderas/backend/internal/freight/domain"
	invoicedomain "github.com/maderas/backend/internal/invoice/domain"
	packingdomain "github.com/maderas/backend/internal/packing/domain"
	purchasedomain "github.com/maderas/backend/internal/purchase/domain"
	"github.com/maderas/backend/internal/ratelimit"
	supplierdomain "github.com/maderas/backend/internal/supplier/domain"
	"github.com/maderas/backend/pkg/db"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorResponse struct {
	Error  string            `json:"error"`
	Detail string            `json:"detail,omitempty"`
	Errors []ValidationError `json:"errors,omitempty"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

const (
	typeValidation   = "validation_error"
	typeConflict     = "conflict"
	typeNotFound     = "not_found"
	typeUnauthorized = "unauthorized"
	typeForbidden    = "forbidden"
	typeDuplicate    = "duplicate_email"
	typeRateLimited  = "rate_limited"
	typeUnavailable  = "unavailable"
	typeInternal     = "internal_error"
)

type apiError struct {
	target  error
	status  int
	kind    string
	message string
}

// knownErrors is matched in order; domain sentinels come before the store
// classifications they may wrap.
var knownErrors = []apiError{
	{ErrInvalidRequest, http.StatusBadRequest, typeValidation, "Solicitud inválida"},
	{ErrUnauthorized, http.StatusUnauthorized, typeUnauthorized, "No autorizado"},
	{authdomain.ErrInvalidToken, http.StatusUnauthorized, typeUnauthorized, "No autorizado"},
	{authdomain.ErrTokenExpired, http.StatusUnauthorized, typeUnauthorized, "Sesión expirada"},
	{authdomain.ErrInvalidCredentials, http.StatusUnauthorized, typeUnauthorized, "Credenciales inválidas"},
	{ErrForbidden, http.StatusForbidden, typeForbidden, "Acceso denegado"},
	{authorization.ErrForbidden, http.StatusForbidden, typeForbidden, "Acceso denegado"},
	{authorization.ErrInvalidRole, http.StatusForbidden, typeForbidden, "Acceso denegado"},
	{ratelimit.ErrTooManyRequests, http.StatusTooManyRequests, typeRateLimited, "Demasiados intentos, intente nuevamente más tarde"},
	{ErrNotFound, http.StatusNotFound, typeNotFound, "Recurso no encontrado"},

	// Clientes
	{clientdomain.ErrNotFound, http.StatusNotFound, typeNotFound, "Cliente no encontrado"},
	{clientdomain.ErrInvalidID, http.StatusBadRequest, typeValidation, "ID de cliente inválido"},
	{clientdomain.ErrInvalidRazonSocial, http.StatusBadRequest, typeValidation, "Razón Social es obligatoria"},
	{clientdomain.ErrHasDependents, http.StatusBadRequest, typeConflict, "No se puede eliminar: El cliente tiene facturas o historial asociado."},

	// Proveedores
	{supplierdomain.ErrNotFound, http.StatusNotFound, typeNotFound, "Proveedor no encontrado"},
	{supplierdomain.ErrInvalidID, http.StatusBadRequest, typeValidation, "ID de proveedor inválido"},
	{supplierdomain.ErrInvalidNombre, http.StatusBadRequest, typeValidation, "El nombre es obligatorio"},
	{supplierdomain.ErrHasDependents, http.StatusBadRequest, typeConflict, "No se puede eliminar: El proveedor tiene compras asociadas."},

	// Transportistas
	{carrierdomain.ErrNotFound, http.StatusNotFound, typeNotFound, "Transportista no encontrado"},
	{carrierdomain.ErrInvalidID, http.StatusBadRequest, typeValidation, "ID de transportista inválido"},
	{carrierdomain.ErrInvalidNombre, http.StatusBadRequest, typeValidation, "El nombre es obligatorio"},
	{carrierdomain.ErrHasDependents, http.StatusBadRequest, typeConflict, "No se puede eliminar: El transportista tiene fletes asociados."},

	// Compras
	{purchasedomain.ErrNotFound, http.StatusNotFound, typeNotFound, "Compra no encontrada"},
	{purchasedomain.ErrInvalidID, http.StatusBadRequest, typeValidation, "ID de compra inválido"},
	{purchasedomain.ErrInvalidProveedor, http.StatusBadRequest, typeValidation, "Faltan datos obligatorios (proveedor, fecha)"},
	{purchasedomain.ErrInvalidFecha, http.StatusBadRequest, typeValidation, "Faltan datos obligatorios (proveedor, fecha)"},
	{purchasedomain.ErrInvalidAmount, http.StatusBadRequest, typeValidation, "Monto inválido"},
	{purchasedomain.ErrInvalidExpense, http.StatusBadRequest, typeValidation, "Gasto inválido: concepto y monto son obligatorios"},
	{purchasedomain.ErrInvalidCompra, http.StatusBadRequest, typeValidation, "La compra indicada no existe"},

	// Facturas
	{invoicedomain.ErrNotFound, http.StatusNotFound, typeNotFound, "Factura no encontrada"},
	{invoicedomain.ErrItemNotFound, http.StatusNotFound, typeNotFound, "Item no encontrado"},
	{invoicedomain.ErrInvalidID, http.StatusBadRequest, typeValidation, "ID de factura inválido"},
	{invoicedomain.ErrInvalidCliente, http.StatusBadRequest, typeValidation, "El cliente indicado no existe"},
	{invoicedomain.ErrInvalidFecha, http.StatusBadRequest, typeValidation, "La fecha es obligatoria"},
	{invoicedomain.ErrInvalidFacturaNro, http.StatusBadRequest, typeValidation, "El número de factura es obligatorio"},
	{invoicedomain.ErrInvalidRate, http.StatusBadRequest, typeValidation, "Porcentaje de IGV o detracción inválido"},
	{invoicedomain.ErrInvalidItem, http.StatusBadRequest, typeValidation, "Item inválido: producto, cantidad y precio son obligatorios"},
	{invoicedomain.ErrInvalidCollection, http.StatusBadRequest, typeValidation, "Cobranza inválida"},
	{invoicedomain.ErrInvalidFactura, http.StatusBadRequest, typeValidation, "La factura indicada no existe"},

	// Fletes
	{freightdomain.ErrNotFound, http.StatusNotFound, typeNotFound, "Flete no encontrado"},
	{freightdomain.ErrInvalidID, http.StatusBadRequest, typeValidation, "ID de flete inválido"},
	{freightdomain.ErrInvalidTransportista, http.StatusBadRequest, typeValidation, "El transportista indicado no existe"},
	{freightdomain.ErrInvalidFecha, http.StatusBadRequest, typeValidation, "La fecha es obligatoria"},
	{freightdomain.ErrInvalidAmount, http.StatusBadRequest, typeValidation, "Monto inválido"},

	// Packing
	{packingdomain.ErrNotFound, http.StatusNotFound, typeNotFound, "Packing no encontrado"},
	{packingdomain.ErrItemNotFound, http.StatusNotFound, typeNotFound, "Item no encontrado"},
	{packingdomain.ErrInvalidID, http.StatusBadRequest, typeValidation, "ID de packing inválido"},
	{packingdomain.ErrInvalidCliente, http.StatusBadRequest, typeValidation, "El cliente indicado no existe"},
	{packingdomain.ErrInvalidFecha, http.StatusBadRequest, typeValidation, "La fecha es obligatoria"},
	{packingdomain.ErrInvalidItem, http.StatusBadRequest, typeValidation, "Item inválido: piezas y medidas son obligatorias"},

	// Usuarios
	{authdomain.ErrNotFound, http.StatusNotFound, typeNotFound, "Usuario no encontrado"},
	{authdomain.ErrInvalidID, http.StatusBadRequest, typeValidation, "ID de usuario inválido"},
	{authdomain.ErrEmailTaken, http.StatusConflict, typeDuplicate, "El email ya se encuentra registrado."},
	{authdomain.ErrInvalidEmail, http.StatusBadRequest, typeValidation, "Formato de email inválido."},
	{authdomain.ErrInvalidNombre, http.StatusBadRequest, typeValidation, "Faltan campos obligatorios: nombre, email y password."},
	{authdomain.ErrInvalidPassword, http.StatusBadRequest, typeValidation, "Faltan campos obligatorios: nombre, email y password."},
	{authdomain.ErrInvalidRole, http.StatusBadRequest, typeValidation, "Rol inválido"},

	// Auditoría
	{auditdomain.ErrInvalidPageToken, http.StatusBadRequest, typeValidation, "page_token inválido"},
	{auditdomain.ErrInvalidTimeRange, http.StatusBadRequest, typeValidation, "Rango de fechas inválido"},

	// Store classifications
	{db.ErrForeignKeyViolation, http.StatusBadRequest, typeConflict, "No se puede completar la operación: existen registros relacionados."},
	{db.ErrDuplicateKey, http.StatusConflict, typeConflict, "El registro ya existe"},
	{db.ErrUnavailable, http.StatusServiceUnavailable, typeUnavailable, "Servicio no disponible, intente nuevamente"},
}

const retryAfterSeconds = "1"

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		if status == http.StatusServiceUnavailable || status == http.StatusTooManyRequests {
			c.Header("Retry-After", retryAfter(c))
		}
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func retryAfter(c *gin.Context) string {
	if v := c.GetString(contextRetryAfterKey); v != "" {
		return v
	}
	return retryAfterSeconds
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "Solicitud inválida")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func lookupError(err error) (apiError, bool) {
	for _, known := range knownErrors {
		if errors.Is(err, known.target) {
			return known, true
		}
	}
	return apiError{}, false
}

func mapError(err error) (int, errorResponse) {
	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorResponse{
			Error:  "Datos inválidos",
			Errors: vErr.Errors,
		}
	}

	if known, ok := lookupError(err); ok {
		resp := errorResponse{Error: known.message}
		if known.kind == typeValidation || known.kind == typeConflict {
			resp.Detail = known.target.Error()
		}
		return known.status, resp
	}

	return http.StatusInternalServerError, errorResponse{Error: "Internal server error"}
}

func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	if asValidationErrors(err) != nil {
		return typeValidation, "invalid_request"
	}
	if known, ok := lookupError(err); ok {
		return known.kind, known.target.Error()
	}
	return typeInternal, "internal_error"
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}
