package ont

// CreateONTRequest carries the identity and metadata fields owned by
// the boundary. Dynamic fields start at OFF/0 until the first probe.
type CreateONTRequest struct {
	ExternalID string  `json:"external_id" validate:"required,max=100"`
	Name       string  `json:"name" validate:"required,min=1,max=100"`
	Location   string  `json:"location" validate:"omitempty,max=255"`
	Address    string  `json:"address" validate:"omitempty,ip|hostname"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type UpdateONTRequest struct {
	ExternalID *string  `json:"external_id" validate:"omitempty,max=100"`
	Name       *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Location   *string  `json:"location" validate:"omitempty,max=255"`
	Address    *string  `json:"address" validate:"omitempty,ip|hostname"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}
