package upload

import (
	"io"
	"strconv"
)

// Ticket is a short-lived signed credential for a direct upload to the media
// host. The signing secret never leaves the API server.
type Ticket struct {
	CloudName string `json:"cloudName"`
	Host      string `json:"host,omitempty"`
	APIKey    string `json:"apiKey"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	Folder    string `json:"folder"`
}

// Fields are the multipart form values sent next to the file.
func (t Ticket) Fields() map[string]string {
	return map[string]string{
		"api_key":   t.APIKey,
		"timestamp": strconv.FormatInt(t.Timestamp, 10),
		"signature": t.Signature,
		"folder":    t.Folder,
	}
}

// Asset is an uploaded file as the console tracks it.
type Asset struct {
	URL     string `json:"url"`
	AssetID string `json:"assetId"`
}

// File is one binary picked by the operator.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

type DeleteAssetRequest struct {
	AssetID  string `json:"assetId"`
	PublicID string `json:"publicId"`
}
