package credential

import "time"

// Record is the stored form of a credential. The secret exists on disk
// only as SecretCiphertext; the wire names match the blob layout
// (`password_<id>.json`).
type Record struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Username         string     `json:"username"`
	SecretCiphertext string     `json:"encryptedPassword"`
	URL              string     `json:"url"`
	Owner            string     `json:"owner"`
	Category         string     `json:"category"`
	Tags             []string   `json:"tags"`
	Icon             string     `json:"icon"`
	Images           []ImageRef `json:"images"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ImageRef describes one image attached to a record. The bytes live in
// the blob store under `images/<passwordId>/<imageId>`.
type ImageRef struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	MimeType  string    `json:"type"`
	SizeBytes int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}
