package broadcast

// Segments a broadcast can target
const (
	SegmentSubscribed = "subscribed"
	SegmentAll        = "all"
)

// SendBroadcastRequest represents a bulk email request from the back office
type SendBroadcastRequest struct {
	Subject string `json:"subject" binding:"required,min=1,max=200"`
	Body    string `json:"body" binding:"required"`
	Segment string `json:"segment" binding:"required,oneof=subscribed all"`
}

// BroadcastResult summarizes a completed (or interrupted) broadcast run
type BroadcastResult struct {
	Recipients int `json:"recipients"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
	Batches    int `json:"batches"`
}
