package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	freightdomain "github.com/maderas/backend/internal/freight/domain"
)

type listFreightsQuery struct {
	dateRangeQuery
	Estado          string `form:"estado"`
	TransportistaID string `form:"transportistaId"`
}

type freightRequest struct {
	TransportistaID   flexID    `json:"transportista_id"`
	Fecha             string    `json:"fecha"`
	GuiaRemitente     *string   `json:"guia_remitente"`
	GuiaTransportista *string   `json:"guia_transportista"`
	DetalleCarga      *string   `json:"detalle_carga"`
	ValorFlete        flexFloat `json:"valor_flete"`
	Adelanto          flexFloat `json:"adelanto"`
	Pago              flexFloat `json:"pago"`
	Observacion       *string   `json:"observacion"`
	FechaCancelacion  *string   `json:"fecha_cancelacion"`
	Estado            string    `json:"estado"`
}

func (r freightRequest) toDomain() freightdomain.FreightRequest {
	return freightdomain.FreightRequest{
		TransportistaID:   r.TransportistaID.String(),
		Fecha:             strings.TrimSpace(r.Fecha),
		GuiaRemitente:     r.GuiaRemitente,
		GuiaTransportista: r.GuiaTransportista,
		DetalleCarga:      r.DetalleCarga,
		ValorFlete:        r.ValorFlete.ptr(),
		Adelanto:          r.Adelanto.ptr(),
		Pago:              r.Pago.ptr(),
		Observacion:       r.Observacion,
		FechaCancelacion:  r.FechaCancelacion,
		Estado:            strings.TrimSpace(r.Estado),
	}
}

func (s *Server) ListFreights(c *gin.Context) {
	var query listFreightsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	desde, hasta, err := query.parse()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.freightSvc.List(c.Request.Context(), freightdomain.ListFreightRequest{
		Q:               strings.TrimSpace(query.Q),
		Estado:          strings.TrimSpace(query.Estado),
		TransportistaID: strings.TrimSpace(query.TransportistaID),
		Desde:           desde,
		Hasta:           hasta,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp)
}

func (s *Server) GetFreightByID(c *gin.Context) {
	resp, err := s.freightSvc.GetByID(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateFreight(c *gin.Context) {
	var req freightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.freightSvc.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "flete", opCreate, resp.ID.String(), map[string]any{
		"transportista_id": resp.TransportistaID.String(),
	})
	respondCreated(c, "Flete creado", resp.ID, resp)
}

func (s *Server) UpdateFreight(c *gin.Context) {
	var req freightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := param(c, "id")
	if _, err := s.freightSvc.Update(c.Request.Context(), freightdomain.UpdateFreightRequest{
		ID:             id,
		FreightRequest: req.toDomain(),
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "flete", opUpdate, id, nil)
	respondMessage(c, "Flete actualizado")
}

func (s *Server) DeleteFreight(c *gin.Context) {
	id := param(c, "id")
	if err := s.freightSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "flete", opDelete, id, nil)
	respondMessage(c, "Flete eliminado")
}
