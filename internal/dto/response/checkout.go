package response

const (
	MessageSuccess           = "success"
	MessageAlreadyRegistered = "You already registered in this course."
)

type PhysicalCheckoutResponse struct {
	Message string  `json:"message"`
	UID     *string `json:"uid,omitempty"`
	Paid    *bool   `json:"paid,omitempty"`
}

type BkashCheckoutResponse struct {
	BkashURL string `json:"bkashURL"`
}

// CallbackStatus is the status query value sent to the frontend checkout page.
type CallbackStatus string

const (
	CallbackCanceled        CallbackStatus = "canceled"
	CallbackFailed          CallbackStatus = "failed"
	CallbackSuccessful      CallbackStatus = "successful"
	CallbackFailedToPersist CallbackStatus = "failed_to_post_in_db"
)

type CallbackResult struct {
	Status CallbackStatus
	UID    string
}
