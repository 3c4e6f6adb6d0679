package dto

const (
	ActionGenerateSingle = "generate-single"
	ActionGenerateBatch  = "generate-batch"
)

type QRCodeRequest struct {
	Action  string `json:"action"`
	BagID   string `json:"bag_id"`
	Count   int    `json:"count"`
	BaseURL string `json:"base_url"`
}
