package candidate

// MaxResumeBytes bounds an uploaded résumé
const MaxResumeBytes = 10 << 20

// SyncProfileRequest carries the identity fields refreshed on sign-in
type SyncProfileRequest struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

// UpdateProfileRequest - only the listed fields are editable
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	JobTitle  *string `json:"job_title,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

type UpdateSkillsRequest struct {
	Skills []string `json:"skills"`
}

type SkillsResponse struct {
	Skills []string `json:"skills"`
}

// UploadResumeRequest is one uploaded résumé file
type UploadResumeRequest struct {
	FileName    string
	ContentType string
	Data        []byte
}

type UploadResumeResponse struct {
	ResumeURL string   `json:"resume_url"`
	Skills    []string `json:"skills"`
}
