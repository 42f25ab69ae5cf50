package httpapi

import (
	"net/http"

	"github.com/awsgate/awsgate/gateway"
)

type sendRequest struct {
	Message      string                              `json:"message" validate:"required"`
	DelaySeconds *int32                              `json:"delay_seconds"`
	Attributes   map[string]gateway.MessageAttribute `json:"attributes" validate:"omitempty,dive"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	queueURL, err := h.queueURLFromQuery(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var req sendRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	id, err := h.gw.Send(r.Context(), queueURL, gateway.SendInput{
		Message:      req.Message,
		DelaySeconds: req.DelaySeconds,
		Attributes:   req.Attributes,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, sendResponse{MessageID: id})
}

type receiveResponse struct {
	Messages []gateway.QueueMessage `json:"messages"`
}

func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	queueURL, err := h.queueURLFromQuery(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	maxMessages, err := intQuery(r, "max_number")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	waitSeconds, err := intQuery(r, "wait_time_seconds")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	msgs, err := h.gw.Receive(r.Context(), queueURL, gateway.ReceiveInput{
		MaxMessages: maxMessages,
		WaitSeconds: waitSeconds,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if msgs == nil {
		msgs = []gateway.QueueMessage{}
	}

	h.respondJSON(w, http.StatusOK, receiveResponse{Messages: msgs})
}

func (h *Handler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	queueURL, err := h.queueURLFromQuery(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	receiptHandle, err := requiredQuery(r, "receipt_handle")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.gw.Delete(r.Context(), queueURL, receiptHandle); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) purge(w http.ResponseWriter, r *http.Request) {
	queueURL, err := h.queueURLFromQuery(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.gw.Purge(r.Context(), queueURL); err != nil {
		h.respondError(w, r, err)
		return
	}

	// The backend completes the purge asynchronously, up to 60 seconds
	// after accepting it.
	w.WriteHeader(http.StatusAccepted)
}

type listQueuesResponse struct {
	QueueURLs []string `json:"queue_urls"`
}

func (h *Handler) listQueues(w http.ResponseWriter, r *http.Request) {
	urls, err := h.gw.ListQueues(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if urls == nil {
		urls = []string{}
	}

	h.respondJSON(w, http.StatusOK, listQueuesResponse{QueueURLs: urls})
}

// queueURLFromQuery resolves the queue_name query parameter to its URL.
func (h *Handler) queueURLFromQuery(r *http.Request) (string, error) {
	queueName, err := requiredQuery(r, "queue_name")
	if err != nil {
		return "", err
	}

	return h.gw.Resolver().QueueURL(r.Context(), queueName)
}
