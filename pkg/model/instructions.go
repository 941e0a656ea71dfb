package model

// Instructions are the admin's pickup or dropoff directions for the renter
type Instructions struct {
	Address      string `json:"address" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Instructions string `json:"instructions"`
	ContactPhone string `json:"contactPhone"`
}

// MileageReport is submitted by the renter at pickup and at return
type MileageReport struct {
	Mileage   int     `json:"mileage" form:"mileage" binding:"required,min=0"`
	FuelLevel string  `json:"fuelLevel" form:"fuelLevel" binding:"required,oneof=empty 1/4 1/2 3/4 full"`
	Notes     string  `json:"notes,omitempty" form:"notes" binding:"max=2000"`
	PhotoPath string  `json:"photoPath,omitempty" form:"-"`
	Review    *Review `json:"review,omitempty" form:"-"`
}

// Review is left by the renter with the return mileage
type Review struct {
	Rating int    `json:"rating" form:"rating" binding:"min=1,max=5"`
	Text   string `json:"text" form:"review" binding:"max=4000"`
}

// SignedContract records the uploaded signed contract
type SignedContract struct {
	Path       string `json:"path"`
	FileName   string `json:"fileName"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploadedAt"`
}

// StepResponse is the generic answer of a link submission
type StepResponse struct {
	FolderID string `json:"folder_id"`
	Message  string `json:"message"`
}
