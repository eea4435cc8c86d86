package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/maderas/backend/internal/invoice/domain"
)

type listInvoicesQuery struct {
	dateRangeQuery
	Estado    string `form:"estado"`
	ClienteID string `form:"clienteId"`
}

type invoiceRequest struct {
	ClienteID     flexID    `json:"cliente_id"`
	Fecha         string    `json:"fecha"`
	FacturaNro    string    `json:"factura_nro"`
	GuiaNro       *string   `json:"guia_nro"`
	Descripcion   *string   `json:"descripcion"`
	IGVPct        flexFloat `json:"igv_pct"`
	DetraccionPct flexFloat `json:"detraccion_pct"`
	Estado        string    `json:"estado"`
}

func (r invoiceRequest) toDomain() invoicedomain.InvoiceRequest {
	return invoicedomain.InvoiceRequest{
		ClienteID:     r.ClienteID.String(),
		Fecha:         strings.TrimSpace(r.Fecha),
		FacturaNro:    strings.TrimSpace(r.FacturaNro),
		GuiaNro:       r.GuiaNro,
		Descripcion:   r.Descripcion,
		IGVPct:        r.IGVPct.ptr(),
		DetraccionPct: r.DetraccionPct.ptr(),
		Estado:        strings.TrimSpace(r.Estado),
	}
}

type invoiceItemRequest struct {
	Producto   string    `json:"producto"`
	Cantidad   flexFloat `json:"cantidad"`
	PrecioUnit flexFloat `json:"precio_unit"`
}

func (r invoiceItemRequest) toDomain() invoicedomain.ItemRequest {
	return invoicedomain.ItemRequest{
		Producto:   strings.TrimSpace(r.Producto),
		Cantidad:   r.Cantidad.ptr(),
		PrecioUnit: r.PrecioUnit.ptr(),
	}
}

type createInvoiceRequest struct {
	invoiceRequest
	Items []invoiceItemRequest `json:"items"`
}

type collectionRequest struct {
	FacturaID flexID    `json:"factura_id"`
	Fecha     string    `json:"fecha"`
	Anticipo  flexFloat `json:"anticipo"`
	Entregado flexFloat `json:"entregado"`
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query listInvoicesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	desde, hasta, err := query.parse()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		Q:         strings.TrimSpace(query.Q),
		Estado:    strings.TrimSpace(query.Estado),
		ClienteID: strings.TrimSpace(query.ClienteID),
		Desde:     desde,
		Hasta:     hasta,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp)
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListInvoiceItems(c *gin.Context) {
	resp, err := s.invoiceSvc.ListItems(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp)
}

func (s *Server) ListInvoiceCollections(c *gin.Context) {
	resp, err := s.invoiceSvc.ListCollections(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp)
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	items := make([]invoicedomain.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, item.toDomain())
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		InvoiceRequest: req.toDomain(),
		Items:          items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "factura", opCreate, resp.ID.String(), map[string]any{
		"factura_nro": resp.FacturaNro,
		"cliente_id":  resp.ClienteID.String(),
		"items":       len(items),
	})
	respondCreated(c, "Factura creada exitosamente", resp.ID, resp)
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := param(c, "id")
	if _, err := s.invoiceSvc.Update(c.Request.Context(), invoicedomain.UpdateInvoiceRequest{
		ID:             id,
		InvoiceRequest: req.toDomain(),
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "factura", opUpdate, id, nil)
	respondMessage(c, "Factura actualizada")
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	id := param(c, "id")
	if err := s.invoiceSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "factura", opDelete, id, nil)
	respondMessage(c, "Factura eliminada")
}

func (s *Server) UpdateInvoiceItem(c *gin.Context) {
	var req invoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := param(c, "itemId")
	if _, err := s.invoiceSvc.UpdateItem(c.Request.Context(), invoicedomain.UpdateItemRequest{
		ID:          id,
		ItemRequest: req.toDomain(),
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "factura_item", opUpdate, id, nil)
	respondMessage(c, "Item actualizado")
}

func (s *Server) DeleteInvoiceItem(c *gin.Context) {
	id := param(c, "itemId")
	if err := s.invoiceSvc.DeleteItem(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "factura_item", opDelete, id, nil)
	respondMessage(c, "Item eliminado")
}

func (s *Server) AddCollection(c *gin.Context) {
	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.AddCollection(c.Request.Context(), invoicedomain.CollectionRequest{
		FacturaID: req.FacturaID.String(),
		Fecha:     strings.TrimSpace(req.Fecha),
		Anticipo:  req.Anticipo.ptr(),
		Entregado: req.Entregado.ptr(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "cobranza", opCreate, resp.ID.String(), map[string]any{
		"factura_id": resp.FacturaID.String(),
		"anticipo":   resp.Anticipo,
		"entregado":  resp.Entregado,
	})
	respondCreated(c, "Cobranza registrada", resp.ID, resp)
}

func (s *Server) RenderInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	invoice, err := s.invoiceSvc.GetByID(ctx, param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	collections, err := s.invoiceSvc.ListCollections(ctx, invoice.ID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdf.Invoice(ctx, invoice, collections)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="factura-%s.pdf"`, sanitizeFilename(invoice.FacturaNro)))
	c.Data(http.StatusOK, "application/pdf", doc)
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
