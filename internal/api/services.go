package api

import (
	"net/http"

	"cobropos/m/domain"
)

const serviceNotFound = "EL SERVICIO NO EXISTE"

func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.store.ListServices(r.Context())
	if err != nil {
		h.fail(w, r, "listServices", serviceNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, services)
}

func (h *Handler) getService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	svc, err := h.store.GetService(r.Context(), id)
	if err != nil {
		h.fail(w, r, "getService", serviceNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, svc)
}

func (h *Handler) searchServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.store.SearchServices(r.Context(), pathString(r, "name"))
	if err != nil {
		h.fail(w, r, "searchServices", serviceNotFound, err)
		return
	}
	if len(services) == 0 {
		respondError(w, http.StatusNotFound, "No hay ningun Servicio con este nombre")
		return
	}
	respondJSON(w, http.StatusOK, services)
}

func (h *Handler) createService(w http.ResponseWriter, r *http.Request) {
	var in domain.ServiceInput
	if !h.decodeValid(w, r, &in) {
		return
	}
	if _, err := h.store.CreateService(r.Context(), in); err != nil {
		h.fail(w, r, "createService", serviceNotFound, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "SERVICIO CREADO CORRECTAMENTE"})
}

func (h *Handler) updateService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch domain.ServicePatch
	if !h.decodeValid(w, r, &patch) {
		return
	}
	svc, err := h.store.UpdateService(r.Context(), id, patch)
	if err != nil {
		h.fail(w, r, "updateService", serviceNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "SERVICIO ACTUALIZADO CORRECTAMENTE", "servicio": svc})
}

func (h *Handler) deleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteService(r.Context(), id); err != nil {
		h.fail(w, r, "deleteService", serviceNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "SERVICIO ELIMINADO CORRECTAMENTE"})
}

func (h *Handler) sellService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.sales.SellService(r.Context(), id)
	if err != nil {
		h.fail(w, r, "sellService", serviceNotFound, err)
		return
	}
	respondSale(w, res)
}
