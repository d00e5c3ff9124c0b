package files

// UploadResponse is the payload returned after a successful upload.
type UploadResponse struct {
	FileID      string `json:"fileId"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	TextPreview string `json:"textPreview"`
}
