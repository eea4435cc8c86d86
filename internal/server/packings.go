package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	packingdomain "github.com/maderas/backend/internal/packing/domain"
)

type listPackingsQuery struct {
	dateRangeQuery
	ClienteID string `form:"clienteId"`
}

type packingRequest struct {
	ClienteID     flexID  `json:"cliente_id"`
	Fecha         string  `json:"fecha"`
	Especie       *string `json:"especie"`
	TipoMadera    *string `json:"tipo_madera"`
	Observaciones *string `json:"observaciones"`
}

func (r packingRequest) toDomain() packingdomain.PackingRequest {
	return packingdomain.PackingRequest{
		ClienteID:     r.ClienteID.String(),
		Fecha:         strings.TrimSpace(r.Fecha),
		Especie:       r.Especie,
		TipoMadera:    r.TipoMadera,
		Observaciones: r.Observaciones,
	}
}

type packingItemRequest struct {
	CantidadPiezas flexFloat `json:"cantidad_piezas"`
	E              flexFloat `json:"e"`
	A              flexFloat `json:"a"`
	L              flexFloat `json:"l"`
	VolumenPT      flexFloat `json:"volumen_pt"`
	Categoria      *string   `json:"categoria"`
}

func (r packingItemRequest) toDomain() (packingdomain.ItemRequest, error) {
	piezas, ok := r.CantidadPiezas.intPtr()
	if !ok {
		return packingdomain.ItemRequest{}, newValidationError("cantidad_piezas", "invalid_item", "cantidad_piezas must be a whole number")
	}
	return packingdomain.ItemRequest{
		CantidadPiezas: piezas,
		E:              r.E.ptr(),
		A:              r.A.ptr(),
		L:              r.L.ptr(),
		VolumenPT:      r.VolumenPT.ptr(),
		Categoria:      r.Categoria,
	}, nil
}

type createPackingRequest struct {
	packingRequest
	Items []packingItemRequest `json:"items"`
}

func (s *Server) ListPackings(c *gin.Context) {
	var query listPackingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	desde, hasta, err := query.parse()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.packingSvc.List(c.Request.Context(), packingdomain.ListPackingRequest{
		Q:         strings.TrimSpace(query.Q),
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

func (s *Server) GetPackingByID(c *gin.Context) {
	resp, err := s.packingSvc.GetByID(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListPackingItems(c *gin.Context) {
	resp, err := s.packingSvc.ListItems(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp)
}

func (s *Server) CreatePacking(c *gin.Context) {
	var req createPackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	items := make([]packingdomain.ItemRequest, 0, len(req.Items))
	for _, raw := range req.Items {
		item, err := raw.toDomain()
		if err != nil {
			AbortWithError(c, err)
			return
		}
		items = append(items, item)
	}

	resp, err := s.packingSvc.Create(c.Request.Context(), packingdomain.CreatePackingRequest{
		PackingRequest: req.toDomain(),
		Items:          items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "packing", opCreate, resp.ID.String(), map[string]any{
		"cliente_id": resp.ClienteID.String(),
		"items":      len(items),
	})
	respondCreated(c, "Packing creado correctamente", resp.ID, resp)
}

func (s *Server) UpdatePacking(c *gin.Context) {
	var req packingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := param(c, "id")
	if _, err := s.packingSvc.Update(c.Request.Context(), packingdomain.UpdatePackingRequest{
		ID:             id,
		PackingRequest: req.toDomain(),
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "packing", opUpdate, id, nil)
	respondMessage(c, "Packing actualizado")
}

func (s *Server) DeletePacking(c *gin.Context) {
	id := param(c, "id")
	if err := s.packingSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "packing", opDelete, id, nil)
	respondMessage(c, "Packing eliminado")
}

func (s *Server) UpdatePackingItem(c *gin.Context) {
	var raw packingItemRequest
	if err := c.ShouldBindJSON(&raw); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	item, err := raw.toDomain()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	id := param(c, "itemId")
	if _, err := s.packingSvc.UpdateItem(c.Request.Context(), packingdomain.UpdateItemRequest{
		ID:          id,
		ItemRequest: item,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "packing_item", opUpdate, id, nil)
	respondMessage(c, "Item actualizado")
}

func (s *Server) DeletePackingItem(c *gin.Context) {
	id := param(c, "itemId")
	if err := s.packingSvc.DeleteItem(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "packing_item", opDelete, id, nil)
	respondMessage(c, "Item eliminado")
}

func (s *Server) RenderPacking(c *gin.Context) {
	ctx := c.Request.Context()
	packing, err := s.packingSvc.GetByID(ctx, param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdf.PackingList(ctx, packing)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="packing-%s.pdf"`, packing.ID.String()))
	c.Data(http.StatusOK, "application/pdf", doc)
}
