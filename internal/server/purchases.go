package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	purchasedomain "github.com/maderas/backend/internal/purchase/domain"
)

type listPurchasesQuery struct {
	dateRangeQuery
	Estado      string `form:"estado"`
	ProveedorID string `form:"proveedorId"`
}

type purchaseRequest struct {
	ProveedorID  flexID    `json:"proveedor_id"`
	Fecha        string    `json:"fecha"`
	TipoProducto *string   `json:"tipo_producto"`
	CantidadPT   flexFloat `json:"cantidad_pt"`
	PrecioPT     flexFloat `json:"precio_pt"`
	Anticipo     flexFloat `json:"anticipo"`
	Estado       string    `json:"estado"`
}

func (r purchaseRequest) toDomain() purchasedomain.PurchaseRequest {
	return purchasedomain.PurchaseRequest{
		ProveedorID:  r.ProveedorID.String(),
		Fecha:        strings.TrimSpace(r.Fecha),
		TipoProducto: r.TipoProducto,
		CantidadPT:   r.CantidadPT.ptr(),
		PrecioPT:     r.PrecioPT.ptr(),
		Anticipo:     r.Anticipo.ptr(),
		Estado:       strings.TrimSpace(r.Estado),
	}
}

type expenseRequest struct {
	CompraID flexID    `json:"compra_id"`
	Concepto string    `json:"concepto"`
	Monto    flexFloat `json:"monto"`
	Fecha    *string   `json:"fecha"`
}

func (r expenseRequest) toDomain() purchasedomain.ExpenseRequest {
	return purchasedomain.ExpenseRequest{
		CompraID: r.CompraID.String(),
		Concepto: strings.TrimSpace(r.Concepto),
		Monto:    r.Monto.ptr(),
		Fecha:    r.Fecha,
	}
}

type createPurchaseRequest struct {
	purchaseRequest
	Gastos []expenseRequest `json:"gastos"`
}

func (s *Server) ListPurchases(c *gin.Context) {
	var query listPurchasesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	desde, hasta, err := query.parse()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.purchaseSvc.List(c.Request.Context(), purchasedomain.ListPurchaseRequest{
		Q:           strings.TrimSpace(query.Q),
		Estado:      strings.TrimSpace(query.Estado),
		ProveedorID: strings.TrimSpace(query.ProveedorID),
		Desde:       desde,
		Hasta:       hasta,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp)
}

func (s *Server) GetPurchaseByID(c *gin.Context) {
	resp, err := s.purchaseSvc.GetByID(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListPurchaseExpenses(c *gin.Context) {
	resp, err := s.purchaseSvc.ListExpenses(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp)
}

func (s *Server) CreatePurchase(c *gin.Context) {
	var req createPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	gastos := make([]purchasedomain.ExpenseRequest, 0, len(req.Gastos))
	for _, g := range req.Gastos {
		gastos = append(gastos, g.toDomain())
	}

	resp, err := s.purchaseSvc.Create(c.Request.Context(), purchasedomain.CreatePurchaseRequest{
		PurchaseRequest: req.toDomain(),
		Gastos:          gastos,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "compra", opCreate, resp.ID.String(), map[string]any{
		"proveedor_id": resp.ProveedorID.String(),
		"gastos":       len(gastos),
	})
	respondCreated(c, "Compra creada correctamente", resp.ID, resp)
}

func (s *Server) UpdatePurchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := param(c, "id")
	if _, err := s.purchaseSvc.Update(c.Request.Context(), purchasedomain.UpdatePurchaseRequest{
		ID:              id,
		PurchaseRequest: req.toDomain(),
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "compra", opUpdate, id, nil)
	respondMessage(c, "Compra actualizada")
}

func (s *Server) DeletePurchase(c *gin.Context) {
	id := param(c, "id")
	if err := s.purchaseSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "compra", opDelete, id, nil)
	respondMessage(c, "Compra eliminada correctamente")
}

func (s *Server) AddPurchaseExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.purchaseSvc.AddExpense(c.Request.Context(), req.toDomain())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "compra_gasto", opCreate, resp.ID.String(), map[string]any{
		"compra_id": resp.CompraID.String(),
		"monto":     resp.Monto,
	})
	respondCreated(c, "Gasto registrado", resp.ID, resp)
}
