package credential

import "time"

// CreateRequest carries the fields of a new credential. Name, Username
// and Secret are required; the rest default like the stored record.
type CreateRequest struct {
	Name     string
	Username string
	Secret   string
	URL      string
	Owner    string
	Category string
	Tags     []string
	Icon     string
}

// UpdateRequest is a partial patch: nil fields keep their prior values.
type UpdateRequest struct {
	Name     *string
	Username *string
	Secret   *string
	URL      *string
	Owner    *string
	Category *string
	Tags     *[]string
	Icon     *string
}

// View is the caller-facing shape of a record: same metadata, secret in
// plaintext. It is produced only at response edges.
type View struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Secret    string     `json:"password"`
	URL       string     `json:"url"`
	Owner     string     `json:"owner"`
	Category  string     `json:"category"`
	Tags      []string   `json:"tags"`
	Icon      string     `json:"icon"`
	Images    []ImageRef `json:"images"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ListResult is the resolved listing. Missing counts index entries whose
// record blob could not be found; the listing degrades instead of
// failing, but the gap stays visible to the operator.
type ListResult struct {
	Credentials []View `json:"credentials"`
	Missing     int    `json:"missing,omitempty"`
}

func (r *Record) view(secret string) View {
	return View{
		ID:        r.ID,
		Name:      r.Name,
		Username:  r.Username,
		Secret:    secret,
		URL:       r.URL,
		Owner:     r.Owner,
		Category:  r.Category,
		Tags:      r.Tags,
		Icon:      r.Icon,
		Images:    r.Images,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
