package api

import (
	"math"
	"net/http"

	"cobropos/m/domain"
)

const productNotFound = "EL PRODUCTO NO EXISTE"

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		h.fail(w, r, "listProducts", productNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		h.fail(w, r, "getProduct", productNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) productByPLU(w http.ResponseWriter, r *http.Request) {
	plu, ok := pathInt(w, r, "plu", 0)
	if !ok {
		return
	}
	p, err := h.store.ProductByPLU(r.Context(), plu)
	if err != nil {
		h.fail(w, r, "productByPLU", "PLU NO ENCONTRADO", err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.SearchProducts(r.Context(), pathString(r, "name"))
	if err != nil {
		h.fail(w, r, "searchProducts", productNotFound, err)
		return
	}
	if len(products) == 0 {
		respondError(w, http.StatusNotFound, "No hay ningun Producto con este nombre")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if !h.decodeValid(w, r, &in) {
		return
	}
	if _, err := h.store.CreateProduct(r.Context(), in); err != nil {
		h.fail(w, r, "createProduct", productNotFound, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "Producto Insertado Correctamente"})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch domain.ProductPatch
	if !h.decodeValid(w, r, &patch) {
		return
	}
	p, err := h.store.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		h.fail(w, r, "updateProduct", productNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Producto actualizado", "Producto": p})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		h.fail(w, r, "deleteProduct", productNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Producto eliminado correctamente"})
}

func (h *Handler) sellProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	units, ok := pathInt(w, r, "units", math.MinInt64)
	if !ok {
		return
	}
	res, err := h.sales.SellProduct(r.Context(), id, units)
	if err != nil {
		h.fail(w, r, "sellProduct", productNotFound, err)
		return
	}
	respondSale(w, res)
}
