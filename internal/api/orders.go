package api

import (
	"net/http"

	"cobropos/m/domain"
)

const orderNotFound = "La orden no existe"

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		h.fail(w, r, "listOrders", orderNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) pendingOrders(w http.ResponseWriter, r *http.Request) {
	h.ordersByFinished(w, r, false)
}

func (h *Handler) finishedOrders(w http.ResponseWriter, r *http.Request) {
	h.ordersByFinished(w, r, true)
}

func (h *Handler) ordersByFinished(w http.ResponseWriter, r *http.Request, finished bool) {
	orders, err := h.store.ListOrdersByFinished(r.Context(), finished)
	if err != nil {
		h.fail(w, r, "ordersByFinished", orderNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	o, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		h.fail(w, r, "getOrder", orderNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *Handler) searchOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.SearchOrders(r.Context(), pathString(r, "name"))
	if err != nil {
		h.fail(w, r, "searchOrders", orderNotFound, err)
		return
	}
	if len(orders) == 0 {
		respondError(w, http.StatusNotFound, "No hay ninguna Orden con esta descripción")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in domain.OrderInput
	if !h.decodeValid(w, r, &in) {
		return
	}
	if _, err := h.store.CreateOrder(r.Context(), in); err != nil {
		h.fail(w, r, "createOrder", orderNotFound, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "ORDEN CREADA CORRECTAMENTE"})
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch domain.OrderPatch
	if !h.decodeValid(w, r, &patch) {
		return
	}
	o, err := h.store.UpdateOrder(r.Context(), id, patch)
	if err != nil {
		h.fail(w, r, "updateOrder", orderNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Orden Actualizada", "orden": o})
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	o, err := h.store.GetOrder(r.Context(), id)
	if err == nil {
		err = h.store.DeleteOrder(r.Context(), id)
	}
	if err != nil {
		h.fail(w, r, "deleteOrder", orderNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Orden : " + o.Description + " eliminada correctamente"})
}

func (h *Handler) finishOrder(w http.ResponseWriter, r *http.Request) {
	h.setOrderFinished(w, r, true)
}

func (h *Handler) unfinishOrder(w http.ResponseWriter, r *http.Request) {
	h.setOrderFinished(w, r, false)
}

func (h *Handler) setOrderFinished(w http.ResponseWriter, r *http.Request, finished bool) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	o, err := h.store.SetOrderFinished(r.Context(), id, finished)
	if err != nil {
		h.fail(w, r, "setOrderFinished", orderNotFound, err)
		return
	}
	state := "terminada"
	if !finished {
		state = "marcada como pendiente"
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Orden : " + o.Description + " " + state, "orden": o})
}

func (h *Handler) sellOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.sales.SellOrder(r.Context(), id)
	if err != nil {
		h.fail(w, r, "sellOrder", orderNotFound, err)
		return
	}
	respondSale(w, res)
}
