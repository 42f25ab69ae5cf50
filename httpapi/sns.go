package httpapi

import (
	"net/http"

	"github.com/awsgate/awsgate"
	"github.com/awsgate/awsgate/gateway"
)

type createTopicRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) createTopic(w http.ResponseWriter, r *http.Request) {
	var req createTopicRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	topic, err := h.gw.CreateTopic(r.Context(), req.Name)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, topic)
}

type listTopicsResponse struct {
	Topics []gateway.Topic `json:"topics"`
}

func (h *Handler) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.gw.ListTopics(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, listTopicsResponse{Topics: topics})
}

type publishRequest struct {
	Message    string                              `json:"message" validate:"required"`
	Subject    string                              `json:"subject"`
	Attributes map[string]gateway.MessageAttribute `json:"attributes" validate:"omitempty,dive"`
}

type publishResponse struct {
	MessageID string `json:"message_id"`
	TopicARN  string `json:"topic_arn"`
}

func (h *Handler) publish(w http.ResponseWriter, r *http.Request) {
	topicName, err := requiredQuery(r, "topic_name")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var req publishRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	// Publishing requires the topic to already exist; creation is a
	// separate, explicit operation.
	topicARN, err := h.gw.Resolver().TopicARN(r.Context(), topicName)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	id, err := h.gw.Publish(r.Context(), topicARN, gateway.PublishInput{
		Message:    req.Message,
		Subject:    req.Subject,
		Attributes: req.Attributes,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, publishResponse{MessageID: id, TopicARN: topicARN})
}

type subscribeRequest struct {
	TopicName string `json:"topic_name"`
	TopicARN  string `json:"topic_arn"`
	Type      string `json:"type" validate:"required"`
	QueueName string `json:"queue_name"`
	QueueARN  string `json:"queue_arn"`
	LambdaARN string `json:"lambda_arn"`
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	sub, err := h.gw.Subscribe(r.Context(), gateway.SubscriptionRequest{
		Topic:     awsgate.Ref{Name: req.TopicName, Native: req.TopicARN},
		Type:      gateway.DestinationType(req.Type),
		Queue:     awsgate.Ref{Name: req.QueueName, Native: req.QueueARN},
		LambdaARN: req.LambdaARN,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, sub)
}
