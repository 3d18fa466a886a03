package submit_payment_reference

// SubmitReferenceRequest HTTP request model
type SubmitReferenceRequest struct {
	Reference string `json:"reference"`
}
