package dto

// CreateAlertRequest carries an SOS trigger. Coordinates are pointers so a
// missing or null field fails binding instead of defaulting to zero.
type CreateAlertRequest struct {
	SenderName string   `json:"sender_name" binding:"required,max=100"`
	Latitude   *float64 `json:"latitude" binding:"required,latitude"`
	Longitude  *float64 `json:"longitude" binding:"required,longitude"`
}
