package api

import (
	"net/http"

	"cobropos/m/domain"
)

const materialNotFound = "EL MATERIAL NO EXISTE"

func (h *Handler) listMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.store.ListMaterials(r.Context())
	if err != nil {
		h.fail(w, r, "listMaterials", materialNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, materials)
}

func (h *Handler) getMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	m, err := h.store.GetMaterial(r.Context(), id)
	if err != nil {
		h.fail(w, r, "getMaterial", materialNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (h *Handler) searchMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.store.SearchMaterials(r.Context(), pathString(r, "name"))
	if err != nil {
		h.fail(w, r, "searchMaterials", materialNotFound, err)
		return
	}
	if len(materials) == 0 {
		respondError(w, http.StatusNotFound, "No hay ningun Material con este nombre")
		return
	}
	respondJSON(w, http.StatusOK, materials)
}

func (h *Handler) createMaterial(w http.ResponseWriter, r *http.Request) {
	var in domain.MaterialInput
	if !h.decodeValid(w, r, &in) {
		return
	}
	if _, err := h.store.CreateMaterial(r.Context(), in); err != nil {
		h.fail(w, r, "createMaterial", materialNotFound, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "MATERIAL CREADO CORRECTAMENTE"})
}

func (h *Handler) updateMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch domain.MaterialPatch
	if !h.decodeValid(w, r, &patch) {
		return
	}
	m, err := h.store.UpdateMaterial(r.Context(), id, patch)
	if err != nil {
		h.fail(w, r, "updateMaterial", materialNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "MATERIAL ACTUALIZADO", "material": m})
}

func (h *Handler) deleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteMaterial(r.Context(), id); err != nil {
		h.fail(w, r, "deleteMaterial", materialNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "MATERIAL ELIMINADO CORRECTAMENTE"})
}
