package domain

// StoredObject describes one object in the attachment bucket.
type StoredObject struct {
	Key              string `json:"key"`
	OriginalFilename string `json:"original_filename"`
	Size             int64  `json:"size"`
	LastModified     string `json:"last_modified"`
	ETag             string `json:"etag"`
}

// UploadResult is returned after a successful object store write.
type UploadResult struct {
	Key              string `json:"file_key"`
	OriginalFilename string `json:"original_filename"`
	SizeBytes        int64  `json:"size_bytes"`
	ContentType      string `json:"content_type"`
	UploadedAt       string `json:"uploaded_at"`
}

// CSVPreview is a bounded peek into an uploaded CSV object.
type CSVPreview struct {
	Key         string     `json:"file_key"`
	Headers     []string   `json:"headers"`
	SampleRows  [][]string `json:"sample_rows"`
	PreviewRows int        `json:"preview_rows"`
	TotalRows   int        `json:"total_rows"`
}
