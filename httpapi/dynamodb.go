package httpapi

import (
	"net/http"

	"github.com/awsgate/awsgate/gateway"
)

type scanAllResponse struct {
	Items []gateway.Item `json:"items"`
	Count int            `json:"count"`
}

func (h *Handler) scanAll(w http.ResponseWriter, r *http.Request) {
	tableName, err := requiredQuery(r, "table_name")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	items, err := h.gw.ScanAll(r.Context(), tableName)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if items == nil {
		items = []gateway.Item{}
	}

	h.respondJSON(w, http.StatusOK, scanAllResponse{Items: items, Count: len(items)})
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	tableName, err := requiredQuery(r, "table_name")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	q := r.URL.Query()

	item, err := h.gw.GetItem(r.Context(), tableName, gateway.ItemKey{
		PartitionKeyName:  q.Get("partition_key_name"),
		PartitionKeyValue: q.Get("partition_key_value"),
		SortKeyName:       q.Get("sort_key_name"),
		SortKeyValue:      q.Get("sort_key_value"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, item)
}
