package queue

import (
	"encoding/json"

	"github.com/smiley-shop/smiley/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVerifyCodeEmail OTP delivery task
	TaskVerifyCodeEmail = constants.TaskVerifyCodeEmail
	// TaskWelcomeEmail post-confirmation welcome task
	TaskWelcomeEmail = constants.TaskWelcomeEmail
	// TaskOrderStatusEmail order lifecycle notification task
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskOrderTimeoutCancel pending-order expiry task
	TaskOrderTimeoutCancel = constants.TaskOrderTimeoutCancel
)

// VerifyCodeEmailPayload OTP delivery payload
type VerifyCodeEmailPayload struct {
	Email   string `json:"email"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
}

// WelcomeEmailPayload welcome email payload
type WelcomeEmailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OrderStatusEmailPayload order notification payload
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// OrderTimeoutCancelPayload pending-order expiry payload
type OrderTimeoutCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// NewVerifyCodeEmailTask builds the OTP delivery task
func NewVerifyCodeEmailTask(payload VerifyCodeEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVerifyCodeEmail, body), nil
}

// NewWelcomeEmailTask builds the welcome email task
func NewWelcomeEmailTask(payload WelcomeEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWelcomeEmail, body), nil
}

// NewOrderStatusEmailTask builds the order notification task
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewOrderTimeoutCancelTask builds the pending-order expiry task
func NewOrderTimeoutCancelTask(payload OrderTimeoutCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderTimeoutCancel, body), nil
}
