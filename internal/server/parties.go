package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	carrierdomain "github.com/maderas/backend/internal/carrier/domain"
	clientdomain "github.com/maderas/backend/internal/client/domain"
	supplierdomain "github.com/maderas/backend/internal/supplier/domain"
)

type listPartyQuery struct {
	Q      string `form:"q"`
	Estado string `form:"estado"`
}

type clientRequest struct {
	RazonSocial string  `json:"razon_social"`
	RUC         *string `json:"ruc"`
	Contacto    *string `json:"contacto"`
	Estado      string  `json:"estado"`
}

func (r clientRequest) toDomain() clientdomain.ClientRequest {
	return clientdomain.ClientRequest{
		RazonSocial: strings.TrimSpace(r.RazonSocial),
		RUC:         r.RUC,
		Contacto:    r.Contacto,
		Estado:      strings.TrimSpace(r.Estado),
	}
}

// partyRequest is the body of proveedores and transportistas.
type partyRequest struct {
	Nombre   string  `json:"nombre"`
	RUC      *string `json:"ruc"`
	Contacto *string `json:"contacto"`
	Estado   string  `json:"estado"`
}

// -------- Clientes --------

func (s *Server) ListClients(c *gin.Context) {
	var query listPartyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.clientSvc.List(c.Request.Context(), clientdomain.ListClientRequest{
		Q:      strings.TrimSpace(query.Q),
		Estado: strings.TrimSpace(query.Estado),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp)
}

func (s *Server) GetClientByID(c *gin.Context) {
	resp, err := s.clientSvc.GetByID(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.clientSvc.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "cliente", opCreate, resp.ID.String(), map[string]any{
		"razon_social": resp.RazonSocial,
	})
	respondCreated(c, "Cliente creado correctamente", resp.ID, resp)
}

func (s *Server) UpdateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := param(c, "id")
	if _, err := s.clientSvc.Update(c.Request.Context(), clientdomain.UpdateClientRequest{
		ID:            id,
		ClientRequest: req.toDomain(),
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "cliente", opUpdate, id, nil)
	respondMessage(c, "Cliente actualizado")
}

func (s *Server) DeleteClient(c *gin.Context) {
	id := param(c, "id")
	if err := s.clientSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "cliente", opDelete, id, nil)
	respondMessage(c, "Cliente eliminado")
}

// -------- Proveedores --------

func (s *Server) ListSuppliers(c *gin.Context) {
	var query listPartyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.supplierSvc.List(c.Request.Context(), supplierdomain.ListSupplierRequest{
		Q:      strings.TrimSpace(query.Q),
		Estado: strings.TrimSpace(query.Estado),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp)
}

func (s *Server) GetSupplierByID(c *gin.Context) {
	resp, err := s.supplierSvc.GetByID(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateSupplier(c *gin.Context) {
	var req partyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.supplierSvc.Create(c.Request.Context(), supplierdomain.SupplierRequest{
		Nombre:   strings.TrimSpace(req.Nombre),
		RUC:      req.RUC,
		Contacto: req.Contacto,
		Estado:   strings.TrimSpace(req.Estado),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "proveedor", opCreate, resp.ID.String(), map[string]any{
		"nombre": resp.Nombre,
	})
	respondCreated(c, "Proveedor creado", resp.ID, resp)
}

func (s *Server) UpdateSupplier(c *gin.Context) {
	var req partyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := param(c, "id")
	if _, err := s.supplierSvc.Update(c.Request.Context(), supplierdomain.UpdateSupplierRequest{
		ID: id,
		SupplierRequest: supplierdomain.SupplierRequest{
			Nombre:   strings.TrimSpace(req.Nombre),
			RUC:      req.RUC,
			Contacto: req.Contacto,
			Estado:   strings.TrimSpace(req.Estado),
		},
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "proveedor", opUpdate, id, nil)
	respondMessage(c, "Proveedor actualizado")
}

func (s *Server) DeleteSupplier(c *gin.Context) {
	id := param(c, "id")
	if err := s.supplierSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "proveedor", opDelete, id, nil)
	respondMessage(c, "Proveedor eliminado")
}

// -------- Transportistas --------

func (s *Server) ListCarriers(c *gin.Context) {
	var query listPartyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.carrierSvc.List(c.Request.Context(), carrierdomain.ListCarrierRequest{
		Q:      strings.TrimSpace(query.Q),
		Estado: strings.TrimSpace(query.Estado),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp)
}

func (s *Server) GetCarrierByID(c *gin.Context) {
	resp, err := s.carrierSvc.GetByID(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateCarrier(c *gin.Context) {
	var req partyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.carrierSvc.Create(c.Request.Context(), carrierdomain.CarrierRequest{
		Nombre:   strings.TrimSpace(req.Nombre),
		RUC:      req.RUC,
		Contacto: req.Contacto,
		Estado:   strings.TrimSpace(req.Estado),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "transportista", opCreate, resp.ID.String(), map[string]any{
		"nombre": resp.Nombre,
	})
	respondCreated(c, "Transportista creado", resp.ID, resp)
}

func (s *Server) UpdateCarrier(c *gin.Context) {
	var req partyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := param(c, "id")
	if _, err := s.carrierSvc.Update(c.Request.Context(), carrierdomain.UpdateCarrierRequest{
		ID: id,
		CarrierRequest: carrierdomain.CarrierRequest{
			Nombre:   strings.TrimSpace(req.Nombre),
			RUC:      req.RUC,
			Contacto: req.Contacto,
			Estado:   strings.TrimSpace(req.Estado),
		},
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "transportista", opUpdate, id, nil)
	respondMessage(c, "Transportista actualizado")
}

func (s *Server) DeleteCarrier(c *gin.Context) {
	id := param(c, "id")
	if err := s.carrierSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordWrite(c, "transportista", opDelete, id, nil)
	respondMessage(c, "Transportista eliminado")
}
